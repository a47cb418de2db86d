package index

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Encoded layout: kind, dimension, vectors. Every kind shares it, so an index
// can be rebuilt as a different kind from the same bytes.
var vectorsMUS = ord.NewSliceSer[[]float32](ord.NewSliceSer[float32](raw.Float32))

func marshal(kind Kind, s *store) []byte {
	size := ord.String.Size(string(kind)) + varint.Int.Size(s.dim) + vectorsMUS.Size(s.vecs)
	bs := make([]byte, size)
	n := ord.String.Marshal(string(kind), bs)
	n += varint.Int.Marshal(s.dim, bs[n:])
	vectorsMUS.Marshal(s.vecs, bs[n:])
	return bs
}

func peekKind(data []byte) (Kind, error) {
	kind, _, err := ord.String.Unmarshal(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return Kind(kind), nil
}

func unmarshal(want Kind, data []byte, s *store) error {
	kind, n, err := ord.String.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if Kind(kind) != want {
		return fmt.Errorf("%w: encoded kind %q, expected %q", ErrCorrupt, kind, want)
	}
	dim, n1, err := varint.Int.Unmarshal(data[n:])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	n += n1
	vecs, _, err := vectorsMUS.Unmarshal(data[n:])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	for i, v := range vecs {
		if len(v) != dim {
			return fmt.Errorf("%w: vector %d has %d dimensions, header says %d", ErrCorrupt, i, len(v), dim)
		}
	}
	return s.build(vecs)
}
