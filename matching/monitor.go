package matching

import "github.com/mmwithiga/tarumbeta/core"

// MatchMonitor provides hooks to observe a match request.
// Implement this interface to trace intermediate results.
type MatchMonitor interface {
	Start(profile core.Profile)
	PoolSelected(pool *Pool)
	AfterScoring(strategy string, hits []Scored)
	AfterResolution(hits []Scored)
	AfterDedupe(hits []Scored)
	Finish(results []core.MatchResult)
}

// noopMonitor is a no-op implementation of MatchMonitor
type noopMonitor struct{}

var _ MatchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ core.Profile)              {}
func (n *noopMonitor) PoolSelected(_ *Pool)              {}
func (n *noopMonitor) AfterScoring(_ string, _ []Scored) {}
func (n *noopMonitor) AfterResolution(_ []Scored)        {}
func (n *noopMonitor) AfterDedupe(_ []Scored)            {}
func (n *noopMonitor) Finish(_ []core.MatchResult)       {}
