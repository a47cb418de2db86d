package matching

import (
	"fmt"
	"math"

	"github.com/mmwithiga/tarumbeta/core"
	"github.com/mmwithiga/tarumbeta/features"
)

// DefaultTopN is the number of results returned to the learner.
const DefaultTopN = 5

// Tiers are the minimum scores of each recommendation strength.
type Tiers struct {
	Excellent float64
	Great     float64
	Good      float64
	Fair      float64
}

// DefaultTiers returns the 0.90/0.80/0.70/0.60 thresholds.
func DefaultTiers() Tiers {
	return Tiers{Excellent: 0.90, Great: 0.80, Good: 0.70, Fair: 0.60}
}

// Validate checks the thresholds descend within [0, 1].
func (t Tiers) Validate() error {
	levels := []float64{1, t.Excellent, t.Great, t.Good, t.Fair, 0}
	for i := 1; i < len(levels); i++ {
		if math.IsNaN(levels[i]) || levels[i] > levels[i-1] {
			return fmt.Errorf("%w: %+v", ErrInvalidTiers, t)
		}
	}
	return nil
}

// Strength names the tier of score.
func (t Tiers) Strength(score float64) string {
	switch {
	case score >= t.Excellent:
		return "Excellent Match"
	case score >= t.Great:
		return "Great Match"
	case score >= t.Good:
		return "Good Match"
	case score >= t.Fair:
		return "Fair Match"
	}
	return "Possible Match"
}

// MatchScore converts a similarity into the 0-100 score shown to learners.
func MatchScore(score float64) int {
	if math.IsNaN(score) {
		return 0
	}
	return int(math.Round(min(max(score, 0), 1) * 100))
}

// Ranker turns resolved hits into the results shown to a learner.
type Ranker struct {
	topN  int
	tiers Tiers
}

// NewRanker creates a ranker returning at most topN results.
func NewRanker(topN int, tiers Tiers) (*Ranker, error) {
	if topN <= 0 {
		return nil, ErrInvalidTopN
	}
	if err := tiers.Validate(); err != nil {
		return nil, err
	}
	return &Ranker{topN: topN, tiers: tiers}, nil
}

// Rank truncates hits to the top N and formats them. Hits must already be
// in rank order.
func (r *Ranker) Rank(profile core.Profile, hits []Scored) []core.MatchResult {
	if len(hits) > r.topN {
		hits = hits[:r.topN]
	}
	out := make([]core.MatchResult, len(hits))
	for i, h := range hits {
		c := h.Candidate
		reasons := h.Reasons
		if reasons == nil {
			reasons = Reasons(profile, c, h.Score)
		}
		out[i] = core.MatchResult{
			Identity:        h.Identity,
			Name:            c.Name,
			Email:           c.Email,
			AvatarURL:       c.AvatarURL,
			Location:        c.Location,
			Instrument:      c.Instrument,
			SkillLevel:      c.SkillLevel,
			HourlyRate:      c.HourlyRate,
			Rating:          c.Rating,
			YearsExperience: c.YearsExperience,
			TotalStudents:   c.TotalStudents,
			Bio:             c.Bio,
			Score:           h.Score,
			MatchScore:      MatchScore(h.Score),
			Reasons:         reasons,
			Strength:        r.tiers.Strength(h.Score),
			Source:          c.Source,
			Proxy:           h.Proxy,
		}
	}
	return out
}

// Reasons explains a match from the instructor's raw attributes.
func Reasons(p core.Profile, c *core.Candidate, score float64) []string {
	reasons := []string{}
	if c.HourlyRate <= p.Budget {
		reasons = append(reasons, fmt.Sprintf("Within budget (KES %s/hour)", formatNumber(c.HourlyRate)))
	}
	if c.YearsExperience >= 5 {
		reasons = append(reasons, fmt.Sprintf("%s years of teaching experience", formatNumber(c.YearsExperience)))
	}
	if c.Rating >= 4.5 {
		reasons = append(reasons, fmt.Sprintf("Highly rated (%s⭐)", formatNumber(c.Rating)))
	}
	if c.TeachingStyle != "" && features.CanonicalValue(p.LearningStyle) == features.CanonicalValue(c.TeachingStyle) {
		reasons = append(reasons, fmt.Sprintf("%s teaching style matches your preference", titleCase(c.TeachingStyle)))
	}
	if isLocal(p.Location, c.Location) {
		reasons = append(reasons, "Local instructor in your area")
	}
	if c.TotalStudents > 10 {
		reasons = append(reasons, fmt.Sprintf("Experienced with %d students", c.TotalStudents))
	}
	if score >= 0.90 {
		reasons = append(reasons, "Perfect match for your learning goals")
	}
	return reasons
}
