package storage

import (
	"context"

	"github.com/mmwithiga/tarumbeta/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the repository and releases resources.
	Close() error
}

// CandidateFilter narrows FindCandidates. Empty fields match everything;
// string fields compare case-insensitively.
type CandidateFilter struct {
	Instrument string
	SkillLevel string
	Location   string
	Source     core.Source
	Limit      int
}

// CandidateRepository stores instructor records.
type CandidateRepository interface {
	Repository

	// AddCandidates stores new candidates, assigning IDs from a sequence
	// and setting InsertedAt. Live candidates are indexed by name and
	// profile id.
	AddCandidates(ctx context.Context, candidates ...*core.Candidate) ([]*core.Candidate, error)

	// GetCandidate retrieves a candidate by ID.
	// Returns ErrNotFound if the candidate doesn't exist.
	GetCandidate(ctx context.Context, id core.ID) (*core.Candidate, error)

	// GetCandidateByProfileID retrieves a live candidate by its profile id.
	// Returns ErrNotFound if no such candidate exists.
	GetCandidateByProfileID(ctx context.Context, profileID string) (*core.Candidate, error)

	// FindCandidates returns candidates matching filter in insertion order.
	FindCandidates(ctx context.Context, filter CandidateFilter) ([]*core.Candidate, error)

	// FindCandidateByName finds a live candidate by display name, ignoring
	// case and surrounding whitespace. The earliest inserted match wins.
	// Returns ErrNotFound if none exists.
	FindCandidateByName(ctx context.Context, name string) (*core.Candidate, error)
}

// MatchLogRepository records suggestions made to learners.
type MatchLogRepository interface {
	Repository

	// AddMatchLogs stores new entries, assigning IDs and timestamps.
	AddMatchLogs(ctx context.Context, entries ...*core.MatchLogEntry) ([]*core.MatchLogEntry, error)

	// GetMatchLog retrieves an entry by ID.
	// Returns ErrNotFound if the entry doesn't exist.
	GetMatchLog(ctx context.Context, id core.ID) (*core.MatchLogEntry, error)

	// ListMatchLogs returns a learner's entries, newest first.
	// A limit <= 0 returns every entry.
	ListMatchLogs(ctx context.Context, learnerID string, limit int) ([]*core.MatchLogEntry, error)

	// UpdateMatchStatus sets the status of an entry and its UpdatedAt time.
	// Returns ErrNotFound if the entry doesn't exist.
	UpdateMatchStatus(ctx context.Context, id core.ID, status core.MatchStatus) (*core.MatchLogEntry, error)
}

// ArtifactRepository stores versioned serving bundles.
type ArtifactRepository interface {
	Repository

	// SaveBundle stores a bundle under its version, replacing any bundle
	// with the same version. When makeCurrent is true the bundle becomes
	// the one LoadCurrentBundle returns.
	SaveBundle(ctx context.Context, bundle *core.Bundle, makeCurrent bool) error

	// LoadBundle retrieves a bundle by version.
	// Returns ErrNotFound if it doesn't exist.
	LoadBundle(ctx context.Context, version string) (*core.Bundle, error)

	// LoadCurrentBundle retrieves the bundle marked current.
	// Returns ErrNotFound if no bundle has been made current.
	LoadCurrentBundle(ctx context.Context) (*core.Bundle, error)

	// ListBundleVersions returns the stored versions in key order.
	ListBundleVersions(ctx context.Context) ([]string, error)
}
