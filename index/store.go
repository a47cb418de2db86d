package index

import (
	"fmt"
	"slices"

	"github.com/mmwithiga/tarumbeta/core"
	"github.com/mmwithiga/tarumbeta/vector"
)

// normSlack tolerates float32 rounding in vectors that were normalized upstream.
const normSlack = 1e-3

// store holds the vectors shared by every index kind.
type store struct {
	vecs [][]float32
	dim  int
}

func (s *store) build(vectors [][]float32) error {
	s.vecs, s.dim = nil, 0
	if len(vectors) == 0 {
		return nil
	}
	dim := len(vectors[0])
	vecs := make([][]float32, len(vectors))
	for i, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("%w: vector %d has %d dimensions, expected %d", ErrInconsistentDims, i, len(v), dim)
		}
		if n := vector.Norm(v); n > 1+normSlack {
			return fmt.Errorf("%w: vector %d has norm %.4f", ErrNotNormalized, i, n)
		}
		vecs[i] = slices.Clone(v)
	}
	s.vecs, s.dim = vecs, dim
	return nil
}

// checkQuery validates q and reports whether the query can produce hits.
func (s *store) checkQuery(q []float32, k int) (bool, error) {
	if len(s.vecs) == 0 || k <= 0 {
		return false, nil
	}
	if len(q) != s.dim {
		return false, fmt.Errorf("%w: query has %d dimensions, index has %d", core.ErrDimensionMismatch, len(q), s.dim)
	}
	return true, nil
}

func (s *store) Len() int { return len(s.vecs) }

func (s *store) Dim() int { return s.dim }

// better orders hits by descending score, then ascending position.
func better(a, b Hit) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Pos < b.Pos
}

func compareHits(a, b Hit) int {
	switch {
	case better(a, b):
		return -1
	case better(b, a):
		return 1
	}
	return 0
}
