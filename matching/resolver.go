package matching

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmwithiga/tarumbeta/core"
	"github.com/mmwithiga/tarumbeta/features"
	"github.com/mmwithiga/tarumbeta/storage"
)

// LiveMap indexes live candidates by exact display name. The first
// candidate with a name wins.
func LiveMap(live []*core.Candidate) map[string]*core.Candidate {
	m := make(map[string]*core.Candidate, len(live))
	for _, c := range live {
		if _, ok := m[c.Name]; !ok {
			m[c.Name] = c
		}
	}
	return m
}

// IdentityResolver maps synthetic hits onto bookable live instructors.
type IdentityResolver struct {
	candidates storage.CandidateRepository
	proxyID    string
	logger     *slog.Logger
}

// NewIdentityResolver creates a resolver that falls back to candidates for
// names missing from the per-query live map and substitutes the live
// instructor with proxyID when a name is unknown. An empty proxyID drops
// unknown names instead.
func NewIdentityResolver(candidates storage.CandidateRepository, proxyID string, logger *slog.Logger) *IdentityResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &IdentityResolver{candidates: candidates, proxyID: proxyID, logger: logger}
}

// Resolve assigns a live identity to every hit, in order. Live hits keep
// their own identity. A synthetic hit resolved by name takes the live
// record's attributes; one resolved to the proxy keeps its own attributes
// and is flagged. Hits that cannot be resolved are dropped.
//
// Names resolve by exact match. live must hold the live candidates for
// instrument; a store record only resolves a name when it teaches
// instrument.
func (r *IdentityResolver) Resolve(ctx context.Context, instrument string, hits []Scored, live map[string]*core.Candidate) []Scored {
	out := make([]Scored, 0, len(hits))
	var (
		proxy       *core.Candidate
		proxyLoaded bool
	)

	for _, h := range hits {
		switch id := h.Candidate.Identity().(type) {
		case core.LiveIdentity:
			h.Identity = id
			out = append(out, h)

		case core.SyntheticIdentity:
			if c := r.lookup(ctx, id.Name, instrument, live); c != nil {
				h.Candidate = c
				h.Identity = core.LiveIdentity{ProfileID: c.ProfileID, Name: c.Name}
				out = append(out, h)
				continue
			}
			if !proxyLoaded {
				proxy, proxyLoaded = r.loadProxy(ctx), true
			}
			if proxy == nil {
				r.logger.Debug("dropping unresolved candidate", "name", id.Name)
				continue
			}
			h.Identity = core.LiveIdentity{ProfileID: proxy.ProfileID, Name: proxy.Name}
			h.Proxy = true
			out = append(out, h)
		}
	}
	return out
}

func (r *IdentityResolver) lookup(ctx context.Context, name, instrument string, live map[string]*core.Candidate) *core.Candidate {
	if c, ok := live[name]; ok {
		return c
	}
	if r.candidates == nil {
		return nil
	}
	c, err := r.candidates.FindCandidateByName(ctx, name)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.logger.Warn("name lookup failed", "name", name, "err", err)
		}
		return nil
	}
	if c.Name != name || features.CanonicalValue(c.Instrument) != features.CanonicalValue(instrument) {
		r.logger.Debug("store record does not match synthetic candidate",
			"name", name, "stored", c.Name, "instrument", c.Instrument)
		return nil
	}
	return c
}

func (r *IdentityResolver) loadProxy(ctx context.Context) *core.Candidate {
	if r.proxyID == "" || r.candidates == nil {
		return nil
	}
	c, err := r.candidates.GetCandidateByProfileID(ctx, r.proxyID)
	if err != nil {
		r.logger.Warn("proxy instructor unavailable", "profileID", r.proxyID, "err", err)
		return nil
	}
	return c
}
