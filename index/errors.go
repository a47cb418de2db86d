package index

import "errors"

var (
	// ErrUnknownKind is returned for an unrecognized index kind.
	ErrUnknownKind = errors.New("unknown index kind")

	// ErrInconsistentDims is returned when Build receives vectors of different lengths.
	ErrInconsistentDims = errors.New("index vectors have inconsistent dimensions")

	// ErrNotNormalized is returned when a stored vector has norm above one.
	ErrNotNormalized = errors.New("index vector norm exceeds 1")

	// ErrCorrupt is returned when serialized index data cannot be decoded.
	ErrCorrupt = errors.New("corrupt index data")
)
