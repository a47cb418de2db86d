package badger

import (
	"context"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mmwithiga/tarumbeta/core"
	"github.com/mmwithiga/tarumbeta/storage"
)

// CandidateRepository implements storage.CandidateRepository for BadgerDB.
type CandidateRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.CandidateRepository = (*CandidateRepository)(nil)

// NewCandidateRepository creates a new CandidateRepository.
func NewCandidateRepository(backend *Backend) (*CandidateRepository, error) {
	idSeq, err := backend.GetSequence(candidateIDSeq)
	if err != nil {
		return nil, err
	}
	return &CandidateRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *CandidateRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *CandidateRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddCandidates adds one or more candidates to storage.
func (r *CandidateRepository) AddCandidates(ctx context.Context, candidates ...*core.Candidate) ([]*core.Candidate, error) {
	for _, c := range candidates {
		if err := core.ValidateCandidate(c); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, c := range candidates {
			id, err := nextID(r.idSeq)
			if err != nil {
				return err
			}
			c.Id = id
			c.InsertedAt = time.Now().UTC()

			if err := tx.Set(makeCandidateKey(c.Id), storage.MarshalCandidate(c)); err != nil {
				return err
			}
			idValue := storage.MarshalID(c.Id)
			if err := tx.Set(makeCandidateInstrumentKey(c.Instrument, c.Id), idValue); err != nil {
				return err
			}
			if c.Source != core.SourceLive {
				continue
			}
			if err := tx.Set(makeCandidateNameKey(c.Name, c.Id), idValue); err != nil {
				return err
			}
			if c.ProfileID != "" {
				if err := tx.Set(makeCandidateProfileKey(c.ProfileID), idValue); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return candidates, err
}

// GetCandidate retrieves a single candidate by ID.
func (r *CandidateRepository) GetCandidate(ctx context.Context, id core.ID) (*core.Candidate, error) {
	var result *core.Candidate
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readCandidate(tx, id)
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

// GetCandidateByProfileID retrieves a live candidate by its profile id.
func (r *CandidateRepository) GetCandidateByProfileID(ctx context.Context, profileID string) (*core.Candidate, error) {
	var result *core.Candidate
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCandidateProfileKey(profileID))
		if err == badger.ErrKeyNotFound {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		id, err := readID(item)
		if err != nil {
			return err
		}
		result, err = r.readCandidate(tx, id)
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

// FindCandidates returns candidates matching filter. An instrument filter is
// served from the instrument index; otherwise every candidate is scanned.
func (r *CandidateRepository) FindCandidates(ctx context.Context, filter storage.CandidateFilter) ([]*core.Candidate, error) {
	var results []*core.Candidate
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		byInstrument := strings.TrimSpace(filter.Instrument) != ""
		if byInstrument {
			opts.Prefix = makePartialInstrumentKey(filter.Instrument)
			opts.PrefetchValues = false
		} else {
			opts.Prefix = []byte(candidatePrefix)
		}
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var candidate *core.Candidate
			if byInstrument {
				id, err := readID(iter.Item())
				if err != nil {
					return err
				}
				if candidate, err = r.readCandidate(tx, id); err != nil {
					return err
				}
			} else {
				err := iter.Item().Value(func(val []byte) error {
					var err error
					candidate, err = storage.UnmarshalCandidate(val)
					return err
				})
				if err != nil {
					return err
				}
			}

			if candidate == nil || !matchesFilter(candidate, filter) {
				continue
			}
			results = append(results, candidate)
			if filter.Limit > 0 && len(results) >= filter.Limit {
				break
			}
		}
		return nil
	}, false)
	return results, err
}

// FindCandidateByName finds the earliest inserted live candidate with name.
func (r *CandidateRepository) FindCandidateByName(ctx context.Context, name string) (*core.Candidate, error) {
	if strings.TrimSpace(name) == "" {
		return nil, storage.ErrNotFound
	}

	var result *core.Candidate
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialNameKey(name)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			id, err := readID(iter.Item())
			if err != nil {
				return err
			}
			candidate, err := r.readCandidate(tx, id)
			if err != nil {
				return err
			}
			if candidate != nil {
				result = candidate
				return nil
			}
		}
		return storage.ErrNotFound
	}, false)
	return result, err
}

// readCandidate reads a candidate within a transaction.
// Returns nil if the candidate doesn't exist.
func (r *CandidateRepository) readCandidate(tx *badger.Txn, id core.ID) (*core.Candidate, error) {
	val, err := getValue(tx, makeCandidateKey(id))
	if err != nil || val == nil {
		return nil, err
	}
	return storage.UnmarshalCandidate(val)
}

func matchesFilter(c *core.Candidate, f storage.CandidateFilter) bool {
	if f.Source != 0 && c.Source != f.Source {
		return false
	}
	if f.Instrument != "" && foldKey(c.Instrument) != foldKey(f.Instrument) {
		return false
	}
	if f.SkillLevel != "" && foldKey(c.SkillLevel) != foldKey(f.SkillLevel) {
		return false
	}
	if f.Location != "" && foldKey(c.Location) != foldKey(f.Location) {
		return false
	}
	return true
}
