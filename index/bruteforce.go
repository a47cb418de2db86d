package index

import (
	"slices"

	"github.com/mmwithiga/tarumbeta/vector"
)

// BruteForce scores every stored vector against the query. It is exact and
// the reference the pruned index is tested against.
type BruteForce struct {
	store
}

var _ Index = (*BruteForce)(nil)

// Build replaces the stored vectors.
func (b *BruteForce) Build(vectors [][]float32) error {
	return b.build(vectors)
}

// Query returns the min(k, Len()) best hits.
func (b *BruteForce) Query(q []float32, k int) ([]Hit, error) {
	ok, err := b.checkQuery(q, k)
	if err != nil || !ok {
		return []Hit{}, err
	}
	hits := make([]Hit, len(b.vecs))
	for i, v := range b.vecs {
		hits[i] = Hit{Pos: i, Score: vector.Dot(q, v)}
	}
	slices.SortStableFunc(hits, compareHits)
	return hits[:min(k, len(hits))], nil
}

// Kind returns KindBruteForce.
func (b *BruteForce) Kind() Kind { return KindBruteForce }

// MarshalBinary encodes the stored vectors.
func (b *BruteForce) MarshalBinary() ([]byte, error) {
	return marshal(KindBruteForce, &b.store), nil
}

// UnmarshalBinary restores vectors written by MarshalBinary.
func (b *BruteForce) UnmarshalBinary(data []byte) error {
	return unmarshal(KindBruteForce, data, &b.store)
}
