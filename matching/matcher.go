// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package matching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmwithiga/tarumbeta/core"
	"github.com/mmwithiga/tarumbeta/storage"
)

// Defaults for a Matcher.
const (
	DefaultTimeout    = 10 * time.Second
	DefaultCandidateK = 50
)

// Response is the outcome of a match request.
type Response struct {
	Matches    []core.MatchResult
	TotalFound int
	Strategy   string
	Pool       core.Source
	Degraded   bool
	Message    string
}

// Matcher answers match requests and manages the match log.
type Matcher struct {
	candidates storage.CandidateRepository
	matchLogs  storage.MatchLogRepository
	strategy   Strategy
	fallback   Strategy
	persistent *Pool
	topN       int
	tiers      Tiers
	timeout    time.Duration
	candidateK int
	proxyID    string
	primary    core.Source
	degraded   bool
	logger     *slog.Logger

	ranker   *Ranker
	resolver *IdentityResolver
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithTopN sets the number of results returned.
// Default is 5.
func WithTopN(n int) Option {
	return func(m *Matcher) error {
		if n <= 0 {
			return ErrInvalidTopN
		}
		m.topN = n
		return nil
	}
}

// WithTiers sets the strength tier thresholds.
// Default is DefaultTiers().
func WithTiers(tiers Tiers) Option {
	return func(m *Matcher) error {
		if err := tiers.Validate(); err != nil {
			return err
		}
		m.tiers = tiers
		return nil
	}
}

// WithTimeout bounds the scoring stage of a request, which includes the
// embedding call. A non-positive timeout disables the bound.
// Default is 10 seconds.
func WithTimeout(d time.Duration) Option {
	return func(m *Matcher) error {
		m.timeout = d
		return nil
	}
}

// WithCandidateK sets how many hits are taken from the index before
// resolution and deduplication. It is raised to the top N when smaller.
// Default is 50.
func WithCandidateK(k int) Option {
	return func(m *Matcher) error {
		m.candidateK = k
		return nil
	}
}

// WithProxyIdentity sets the profile id of the live instructor that stands
// in for synthetic hits with no live counterpart.
func WithProxyIdentity(profileID string) Option {
	return func(m *Matcher) error {
		m.proxyID = profileID
		return nil
	}
}

// WithPrimarySource selects the pool tried first. With core.SourceLive
// (the default) the persistent pool is only used when no live instructor
// teaches the instrument. With core.SourceSynthetic the persistent pool is
// always used when loaded.
func WithPrimarySource(source core.Source) Option {
	return func(m *Matcher) error {
		if err := core.ValidateSource(source); err != nil {
			return err
		}
		m.primary = source
		return nil
	}
}

// WithPersistentPool sets the synthetic pool loaded from a bundle.
func WithPersistentPool(pool *Pool) Option {
	return func(m *Matcher) error {
		m.persistent = pool
		return nil
	}
}

// WithDegradedFallback answers with the rule-based strategy, flagged as
// degraded, when semantic scoring fails to embed.
func WithDegradedFallback(enabled bool) Option {
	return func(m *Matcher) error {
		m.degraded = enabled
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewMatcher creates a new matcher.
func NewMatcher(
	candidates storage.CandidateRepository,
	matchLogs storage.MatchLogRepository,
	strategy Strategy,
	opts ...Option,
) (*Matcher, error) {
	if candidates == nil {
		return nil, ErrCandidateRepositoryRequired
	}
	if matchLogs == nil {
		return nil, ErrMatchLogRepositoryRequired
	}
	if strategy == nil {
		return nil, ErrStrategyRequired
	}

	m := &Matcher{
		candidates: candidates,
		matchLogs:  matchLogs,
		strategy:   strategy,
		fallback:   RuleBasedStrategy{},
		topN:       DefaultTopN,
		tiers:      DefaultTiers(),
		timeout:    DefaultTimeout,
		candidateK: DefaultCandidateK,
		primary:    core.SourceLive,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	ranker, err := NewRanker(m.topN, m.tiers)
	if err != nil {
		return nil, err
	}
	m.ranker = ranker
	m.candidateK = max(m.candidateK, m.topN)
	m.logger = m.logger.With("component", "matcher")
	m.resolver = NewIdentityResolver(candidates, m.proxyID, m.logger)
	return m, nil
}

// Strategy returns the name of the strategy used for requests.
func (m *Matcher) Strategy() string { return m.strategy.Name() }

// Match ranks instructors for profile and logs the results as suggestions
// for learnerID. An empty learnerID skips logging.
func (m *Matcher) Match(ctx context.Context, learnerID string, profile core.Profile) (*Response, error) {
	return m.MatchWithMonitor(ctx, learnerID, profile, nil)
}

// MatchWithMonitor is Match with callbacks at each stage of the request.
func (m *Matcher) MatchWithMonitor(ctx context.Context, learnerID string, profile core.Profile, monitor MatchMonitor) (*Response, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	p := core.NormalizeProfile(profile)
	if err := core.ValidateProfile(&p); err != nil {
		return nil, err
	}
	monitor.Start(p)

	live, err := m.candidates.FindCandidates(ctx, storage.CandidateFilter{
		Instrument: p.Instrument,
		Source:     core.SourceLive,
	})
	if err != nil {
		m.logger.Error("error fetching live candidates", "instrument", p.Instrument, "err", err)
		return nil, err
	}

	pool := m.selectPool(live)
	if pool == nil {
		m.logger.Info("no instructors for instrument", "instrument", p.Instrument)
		monitor.Finish(nil)
		return &Response{
			Matches:  []core.MatchResult{},
			Strategy: m.strategy.Name(),
			Pool:     core.SourceLive,
			Message:  fmt.Sprintf("No instructors found for %s", p.Instrument),
		}, nil
	}
	monitor.PoolSelected(pool)

	resp := &Response{Strategy: m.strategy.Name(), Pool: pool.Source}
	hits, err := m.score(ctx, m.strategy, p, pool)
	if err != nil {
		if !m.degraded || !errors.Is(err, core.ErrEmbeddingFailure) || m.strategy.Name() == m.fallback.Name() {
			m.logger.Error("error scoring candidates", "strategy", m.strategy.Name(), "err", err)
			return nil, err
		}
		m.logger.Warn("semantic scoring failed, falling back to rules", "err", err)
		hits, err = m.fallback.Score(ctx, p, pool, m.candidateK)
		if err != nil {
			return nil, err
		}
		resp.Strategy = m.fallback.Name()
		resp.Degraded = true
		resp.Message = "Semantic matching is unavailable; showing rule-based matches"
	}
	monitor.AfterScoring(resp.Strategy, hits)

	resolved := m.resolver.Resolve(ctx, p.Instrument, hits, LiveMap(live))
	monitor.AfterResolution(resolved)

	deduped := Dedupe(resolved, func(s Scored) string { return s.Candidate.Name })
	monitor.AfterDedupe(deduped)

	resp.TotalFound = len(deduped)
	resp.Matches = m.ranker.Rank(p, deduped)
	if len(resp.Matches) == 0 && resp.Message == "" {
		resp.Message = fmt.Sprintf("No instructors found for %s", p.Instrument)
	}
	monitor.Finish(resp.Matches)

	m.logSuggestions(ctx, learnerID, resp.Matches)
	return resp, nil
}

func (m *Matcher) selectPool(live []*core.Candidate) *Pool {
	if m.primary == core.SourceSynthetic && m.persistent != nil {
		return m.persistent
	}
	if len(live) > 0 {
		return &Pool{Source: core.SourceLive, Candidates: live}
	}
	return m.persistent
}

// score runs strategy under the request timeout. A timeout is reported as
// an embedding failure.
func (m *Matcher) score(ctx context.Context, strategy Strategy, p core.Profile, pool *Pool) ([]Scored, error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	hits, err := strategy.Score(ctx, p, pool, m.candidateK)
	if err != nil && errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, core.ErrEmbeddingFailure) {
		err = fmt.Errorf("%w: %w", core.ErrEmbeddingFailure, err)
	}
	return hits, err
}

func (m *Matcher) logSuggestions(ctx context.Context, learnerID string, results []core.MatchResult) {
	if learnerID == "" || len(results) == 0 {
		return
	}
	// Proxied results share one instructor; log it once, at its best rank.
	entries := make([]*core.MatchLogEntry, 0, len(results))
	logged := make(map[string]struct{}, len(results))
	for _, r := range results {
		if r.Identity.ProfileID == "" {
			continue
		}
		if _, ok := logged[r.Identity.ProfileID]; ok {
			continue
		}
		logged[r.Identity.ProfileID] = struct{}{}
		entries = append(entries, &core.MatchLogEntry{
			LearnerID:    learnerID,
			CandidateRef: r.Identity.ProfileID,
			Score:        r.MatchScore,
			Status:       core.MatchStatusSuggested,
		})
	}
	if len(entries) == 0 {
		return
	}
	if _, err := m.matchLogs.AddMatchLogs(ctx, entries...); err != nil {
		m.logger.Warn("error logging suggestions", "learnerID", learnerID, "err", err)
	}
}

// History lists a learner's logged matches, newest first.
func (m *Matcher) History(ctx context.Context, learnerID string) ([]*core.MatchLogEntry, error) {
	if learnerID == "" {
		return nil, ErrLearnerRequired
	}
	return m.matchLogs.ListMatchLogs(ctx, learnerID, 0)
}

// Accept marks a logged match as accepted by its learner.
func (m *Matcher) Accept(ctx context.Context, learnerID string, matchID core.ID) (*core.MatchLogEntry, error) {
	return m.setStatus(ctx, learnerID, matchID, core.MatchStatusAccepted)
}

// Decline marks a logged match as declined by its learner.
func (m *Matcher) Decline(ctx context.Context, learnerID string, matchID core.ID) (*core.MatchLogEntry, error) {
	return m.setStatus(ctx, learnerID, matchID, core.MatchStatusDeclined)
}

func (m *Matcher) setStatus(ctx context.Context, learnerID string, matchID core.ID, status core.MatchStatus) (*core.MatchLogEntry, error) {
	if learnerID == "" {
		return nil, ErrLearnerRequired
	}
	entry, err := m.matchLogs.GetMatchLog(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if entry.LearnerID != learnerID {
		m.logger.Warn("match status change refused", "matchID", matchID, "learnerID", learnerID)
		return nil, fmt.Errorf("%w: match %d", core.ErrUnauthorized, matchID)
	}
	return m.matchLogs.UpdateMatchStatus(ctx, matchID, status)
}
