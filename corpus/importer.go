package corpus

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mmwithiga/tarumbeta/core"
	"github.com/mmwithiga/tarumbeta/storage"
)

// Importer loads instructor records into the record store.
type Importer struct {
	candidates storage.CandidateRepository
	batchSize  int
	logger     *slog.Logger
}

// ImporterOption configures an Importer.
type ImporterOption func(*Importer) error

// WithImportBatchSize sets how many records are written per transaction.
// Default is 500.
func WithImportBatchSize(size int) ImporterOption {
	return func(i *Importer) error {
		if size < 1 {
			size = 1
		}
		i.batchSize = size
		return nil
	}
}

// WithImportLogger sets a custom logger.
// Default is slog.Default().
func WithImportLogger(logger *slog.Logger) ImporterOption {
	return func(i *Importer) error {
		if logger == nil {
			logger = slog.Default()
		}
		i.logger = logger
		return nil
	}
}

// NewImporter creates a new importer writing to candidates.
func NewImporter(candidates storage.CandidateRepository, opts ...ImporterOption) (*Importer, error) {
	if candidates == nil {
		return nil, ErrRepositoryRequired
	}
	i := &Importer{
		candidates: candidates,
		batchSize:  500,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}
	i.logger = i.logger.With("component", "importer")
	return i, nil
}

// Skipped describes a record that was not imported.
type Skipped struct {
	Index int
	Name  string
	Err   error
}

// ImportResult summarizes an import.
type ImportResult struct {
	Added   []*core.Candidate
	Skipped []Skipped
}

// Import validates and stores candidates. Live candidates without a profile
// id are given one; live candidates whose profile id is already stored are
// skipped. Invalid records are skipped and reported, never fatal.
func (i *Importer) Import(ctx context.Context, candidates []core.Candidate) (*ImportResult, error) {
	result := &ImportResult{}
	seen := make(map[string]struct{})
	pending := make([]*core.Candidate, 0, i.batchSize)

	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		added, err := i.candidates.AddCandidates(ctx, pending...)
		if err != nil {
			return err
		}
		result.Added = append(result.Added, added...)
		pending = make([]*core.Candidate, 0, i.batchSize)
		return nil
	}

	for idx := range candidates {
		c := candidates[idx]
		if err := core.ValidateCandidate(&c); err != nil {
			i.logger.Warn("skipping invalid candidate", "index", idx, "name", c.Name, "err", err)
			result.Skipped = append(result.Skipped, Skipped{Index: idx, Name: c.Name, Err: err})
			continue
		}

		if c.Source == core.SourceLive {
			if c.ProfileID == "" {
				c.ProfileID = uuid.New().String()
			}
			if dup, err := i.isDuplicate(ctx, c.ProfileID, seen); err != nil {
				return result, err
			} else if dup {
				i.logger.Debug("skipping already imported candidate", "profileID", c.ProfileID)
				result.Skipped = append(result.Skipped, Skipped{Index: idx, Name: c.Name, Err: storage.ErrDuplicateKey})
				continue
			}
			seen[c.ProfileID] = struct{}{}
		}

		pending = append(pending, &c)
		if len(pending) >= i.batchSize {
			if err := flush(); err != nil {
				return result, err
			}
		}
	}

	if err := flush(); err != nil {
		return result, err
	}
	i.logger.Info("import complete", "added", len(result.Added), "skipped", len(result.Skipped))
	return result, nil
}

func (i *Importer) isDuplicate(ctx context.Context, profileID string, seen map[string]struct{}) (bool, error) {
	if _, ok := seen[profileID]; ok {
		return true, nil
	}
	_, err := i.candidates.GetCandidateByProfileID(ctx, profileID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, storage.ErrNotFound):
		return false, nil
	}
	return false, err
}
