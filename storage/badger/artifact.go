package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mmwithiga/tarumbeta/core"
	"github.com/mmwithiga/tarumbeta/storage"
)

// ArtifactRepository implements storage.ArtifactRepository for BadgerDB.
type ArtifactRepository struct {
	backend *Backend
}

var _ storage.ArtifactRepository = (*ArtifactRepository)(nil)

// NewArtifactRepository creates a new ArtifactRepository.
func NewArtifactRepository(backend *Backend) (*ArtifactRepository, error) {
	return &ArtifactRepository{backend: backend}, nil
}

// Close releases resources. ArtifactRepository has no resources to release.
func (r *ArtifactRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ArtifactRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// SaveBundle stores bundle under its version.
func (r *ArtifactRepository) SaveBundle(ctx context.Context, bundle *core.Bundle, makeCurrent bool) error {
	if bundle.Version == "" {
		return fmt.Errorf("%w: bundle version is required", storage.ErrInvalidQuery)
	}
	if bundle.CreatedAt.IsZero() {
		bundle.CreatedAt = time.Now().UTC()
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeBundleKey(bundle.Version), storage.MarshalBundle(bundle)); err != nil {
			return err
		}
		if makeCurrent {
			if err := tx.Set([]byte(currentBundleKey), []byte(bundle.Version)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// LoadBundle retrieves a bundle by version.
func (r *ArtifactRepository) LoadBundle(ctx context.Context, version string) (*core.Bundle, error) {
	var result *core.Bundle
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readBundle(tx, version)
		return err
	}, false)
	return result, err
}

// LoadCurrentBundle retrieves the bundle marked current.
func (r *ArtifactRepository) LoadCurrentBundle(ctx context.Context) (*core.Bundle, error) {
	var result *core.Bundle
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		version, err := getValue(tx, []byte(currentBundleKey))
		if err != nil {
			return err
		}
		if version == nil {
			return storage.ErrNotFound
		}
		result, err = r.readBundle(tx, string(version))
		return err
	}, false)
	return result, err
}

// ListBundleVersions returns every stored bundle version.
func (r *ArtifactRepository) ListBundleVersions(ctx context.Context) ([]string, error) {
	var versions []string
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(bundlePrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			versions = append(versions, string(key[len(bundlePrefix):]))
		}
		return nil
	}, false)
	return versions, err
}

func (r *ArtifactRepository) readBundle(tx *badger.Txn, version string) (*core.Bundle, error) {
	val, err := getValue(tx, makeBundleKey(version))
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, storage.ErrNotFound
	}
	bundle, err := storage.UnmarshalBundle(val)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return bundle, nil
}
