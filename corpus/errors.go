package corpus

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrRepositoryRequired is returned when a nil repository is passed to a constructor.
	ErrRepositoryRequired = errors.New("repository is required")

	// ErrEmbedderRequired is returned when a nil embedder is passed to a constructor.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrEmptyPool is returned when a bundle is built from no candidates.
	ErrEmptyPool = errors.New("candidate pool is empty")

	// ErrUnsupportedFormat is returned for record files that are neither JSON nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported record file format")
)
