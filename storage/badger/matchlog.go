package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mmwithiga/tarumbeta/core"
	"github.com/mmwithiga/tarumbeta/storage"
)

// MatchLogRepository implements storage.MatchLogRepository for BadgerDB.
type MatchLogRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.MatchLogRepository = (*MatchLogRepository)(nil)

// NewMatchLogRepository creates a new MatchLogRepository.
func NewMatchLogRepository(backend *Backend) (*MatchLogRepository, error) {
	idSeq, err := backend.GetSequence(matchLogIDSeq)
	if err != nil {
		return nil, err
	}
	return &MatchLogRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *MatchLogRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *MatchLogRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddMatchLogs adds one or more entries to storage.
func (r *MatchLogRepository) AddMatchLogs(ctx context.Context, entries ...*core.MatchLogEntry) ([]*core.MatchLogEntry, error) {
	for _, e := range entries {
		if e.Status == "" {
			e.Status = core.MatchStatusSuggested
		}
		if err := core.ValidateMatchStatus(e.Status); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, e := range entries {
			id, err := nextID(r.idSeq)
			if err != nil {
				return err
			}
			e.Id = id
			e.CreatedAt = time.Now().UTC()
			e.UpdatedAt = e.CreatedAt

			if err := tx.Set(makeMatchLogKey(e.Id), storage.MarshalMatchLogEntry(e)); err != nil {
				return err
			}
			learnerKey := makeMatchLogLearnerKey(e.LearnerID, e.CreatedAt, e.Id)
			if err := tx.Set(learnerKey, storage.MarshalID(e.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return entries, err
}

// GetMatchLog retrieves a single entry by ID.
func (r *MatchLogRepository) GetMatchLog(ctx context.Context, id core.ID) (*core.MatchLogEntry, error) {
	var result *core.MatchLogEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readEntry(tx, id)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListMatchLogs retrieves a learner's entries, most recent first.
func (r *MatchLogRepository) ListMatchLogs(ctx context.Context, learnerID string, limit int) ([]*core.MatchLogEntry, error) {
	var results []*core.MatchLogEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Use reverse iterator to get most recent entries first
		prefix := makePartialLearnerKey(learnerID)
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = prefix
		opts.PrefetchValues = false

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(prefixEnd(prefix)); iter.Valid(); iter.Next() {
			if limit > 0 && len(results) >= limit {
				break
			}
			id, err := readID(iter.Item())
			if err != nil {
				return err
			}
			entry, err := r.readEntry(tx, id)
			if err != nil {
				return err
			}
			if entry != nil {
				results = append(results, entry)
			}
		}
		return nil
	}, false)
	return results, err
}

// UpdateMatchStatus sets the status of an existing entry.
func (r *MatchLogRepository) UpdateMatchStatus(ctx context.Context, id core.ID, status core.MatchStatus) (*core.MatchLogEntry, error) {
	if err := core.ValidateMatchStatus(status); err != nil {
		return nil, err
	}

	var result *core.MatchLogEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		entry, err := r.readEntry(tx, id)
		if err != nil {
			return err
		}
		if entry == nil {
			return storage.ErrNotFound
		}
		entry.Status = status
		entry.UpdatedAt = time.Now().UTC()
		if err := tx.Set(makeMatchLogKey(id), storage.MarshalMatchLogEntry(entry)); err != nil {
			return err
		}
		result = entry
		return tx.Commit()
	}, true)
	return result, err
}

// readEntry reads an entry within a transaction.
// Returns nil if the entry doesn't exist.
func (r *MatchLogRepository) readEntry(tx *badger.Txn, id core.ID) (*core.MatchLogEntry, error) {
	val, err := getValue(tx, makeMatchLogKey(id))
	if err != nil || val == nil {
		return nil, err
	}
	return storage.UnmarshalMatchLogEntry(val)
}
