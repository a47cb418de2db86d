package matching

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/mmwithiga/tarumbeta/ai"
	"github.com/mmwithiga/tarumbeta/core"
	"github.com/mmwithiga/tarumbeta/features"
	"github.com/mmwithiga/tarumbeta/index"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Strategy names reported in responses.
const (
	StrategySemantic  = "semantic"
	StrategyRuleBased = "rule-based"
)

// Pool is a set of candidates a request is scored against. A pool with an
// Index is persistent and was vectorized offline; a pool without one is
// vectorized per request.
type Pool struct {
	Source     core.Source
	Candidates []*core.Candidate
	Index      index.Index
}

// Scored is a candidate with its similarity score. Identity and Proxy are
// set during resolution; Reasons is set by strategies that justify their
// own scores.
type Scored struct {
	Candidate *core.Candidate
	Score     float64
	Identity  core.LiveIdentity
	Proxy     bool
	Reasons   []string
}

// Strategy scores a pool against a learner profile.
type Strategy interface {
	Name() string
	// Score returns at most k candidates of pool, best first.
	Score(ctx context.Context, profile core.Profile, pool *Pool, k int) ([]Scored, error)
}

// SemanticStrategy ranks by inner product of blended vectors.
type SemanticStrategy struct {
	vectorizer *features.Vectorizer
}

var _ Strategy = (*SemanticStrategy)(nil)

// NewSemanticStrategy creates a strategy over vectorizer's feature space.
func NewSemanticStrategy(vectorizer *features.Vectorizer) (*SemanticStrategy, error) {
	if vectorizer == nil {
		return nil, ErrVectorizerRequired
	}
	return &SemanticStrategy{vectorizer: vectorizer}, nil
}

func (s *SemanticStrategy) Name() string { return StrategySemantic }

// Score embeds the profile and queries the pool's index. Pools without an
// index are vectorized into an ephemeral brute force index first.
func (s *SemanticStrategy) Score(ctx context.Context, profile core.Profile, pool *Pool, k int) ([]Scored, error) {
	if pool == nil || len(pool.Candidates) == 0 || k <= 0 {
		return nil, nil
	}

	q, err := s.vectorizer.VectorizeProfile(ctx, profile)
	if err != nil {
		return nil, err
	}

	idx := pool.Index
	if idx == nil {
		vecs, err := s.vectorizer.VectorizeCandidates(ctx, pool.Candidates)
		if err != nil {
			return nil, err
		}
		idx = &index.BruteForce{}
		if err := idx.Build(vecs); err != nil {
			return nil, err
		}
	}
	if idx.Len() != len(pool.Candidates) {
		return nil, fmt.Errorf("%w: index holds %d vectors for %d candidates", core.ErrConfiguration, idx.Len(), len(pool.Candidates))
	}

	hits, err := idx.Query(q, k)
	if err != nil {
		return nil, err
	}
	out := make([]Scored, len(hits))
	for i, h := range hits {
		out[i] = Scored{Candidate: pool.Candidates[h.Pos], Score: h.Score}
	}
	return out, nil
}

// Rule weights. They sum to 1.
const (
	ruleBudget     = 0.30
	ruleExperience = 0.20
	ruleRating     = 0.20
	ruleSkill      = 0.15
	ruleStudents   = 0.10
	ruleLocation   = 0.05
)

// RuleBasedStrategy scores candidates with fixed weighted rules on their
// raw attributes. It needs no embedder.
type RuleBasedStrategy struct{}

var _ Strategy = RuleBasedStrategy{}

func (RuleBasedStrategy) Name() string { return StrategyRuleBased }

// Score applies the rules to every candidate of the pool.
func (RuleBasedStrategy) Score(ctx context.Context, profile core.Profile, pool *Pool, k int) ([]Scored, error) {
	if pool == nil || k <= 0 {
		return nil, nil
	}
	out := make([]Scored, 0, len(pool.Candidates))
	for _, c := range pool.Candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		score, reasons := ruleScore(profile, c)
		out = append(out, Scored{Candidate: c, Score: score, Reasons: reasons})
	}
	slices.SortStableFunc(out, func(a, b Scored) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}

func ruleScore(p core.Profile, c *core.Candidate) (float64, []string) {
	var score float64
	var reasons []string

	switch {
	case c.HourlyRate <= p.Budget:
		score += ruleBudget
		reasons = append(reasons, fmt.Sprintf("Within budget (KES %s/hour)", formatNumber(c.HourlyRate)))
	case c.HourlyRate <= p.Budget*1.2:
		score += ruleBudget / 2
		reasons = append(reasons, fmt.Sprintf("Slightly above budget (KES %s/hour)", formatNumber(c.HourlyRate)))
	}

	switch {
	case c.YearsExperience >= 5:
		score += ruleExperience
		reasons = append(reasons, fmt.Sprintf("%s years of experience", formatNumber(c.YearsExperience)))
	case c.YearsExperience >= 2:
		score += ruleExperience / 2
	}

	switch {
	case c.Rating >= 4.5:
		score += ruleRating
		reasons = append(reasons, fmt.Sprintf("Highly rated (%s⭐)", formatNumber(c.Rating)))
	case c.Rating >= 3.5:
		score += ruleRating / 2
	}

	if c.SkillLevel != "" && features.CanonicalValue(p.SkillLevel) == features.CanonicalValue(c.SkillLevel) {
		score += ruleSkill
		reasons = append(reasons, fmt.Sprintf("%s level matches", titleCase(c.SkillLevel)))
	}

	if c.TotalStudents > 10 {
		score += ruleStudents
		reasons = append(reasons, fmt.Sprintf("Experienced with %d students", c.TotalStudents))
	}

	if isLocal(p.Location, c.Location) {
		score += ruleLocation
		reasons = append(reasons, "Local instructor")
	}

	// Sums of the weights above drift by an ulp; keep scores comparable.
	return math.Round(score*100) / 100, reasons
}

// isLocal reports whether the learner's location appears in the instructor's.
func isLocal(learner, instructor string) bool {
	learner = strings.ToLower(strings.TrimSpace(learner))
	instructor = strings.ToLower(strings.TrimSpace(instructor))
	return learner != "" && instructor != "" && strings.Contains(instructor, learner)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func titleCase(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}

// SelectStrategy pings the embedder once and returns semantic when it
// answers, rule otherwise.
func SelectStrategy(ctx context.Context, embedder ai.Embedder, semantic, rule Strategy, timeout time.Duration, logger *slog.Logger) Strategy {
	if logger == nil {
		logger = slog.Default()
	}
	if embedder == nil || semantic == nil {
		logger.Warn("semantic matching not configured, using rule-based strategy")
		return rule
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := embedder.Ping(ctx); err != nil {
		logger.Warn("embedder unavailable, using rule-based strategy", "err", err)
		return rule
	}
	logger.Info("embedder available, using semantic strategy")
	return semantic
}
