package index

import (
	"math"
	"slices"

	"github.com/mmwithiga/tarumbeta/vector"
	"github.com/viant/vec/search"
)

const (
	// tauSlack absorbs float32 rounding in the tree's Euclidean distances.
	tauSlack = 1e-2
	// maxNorm2 is the largest squared norm Build admits.
	maxNorm2 = (1 + normSlack) * (1 + normSlack)
)

// VPTree is a vantage-point tree over Euclidean distance. For vectors with
// norm at most one, a better inner product than the current k-th hit implies
// a bounded Euclidean distance to the query, so pruning never drops a result
// that the brute-force index would return.
type VPTree struct {
	store
	root *vpNode
}

var _ Index = (*VPTree)(nil)

type vpNode struct {
	pos   int
	thr   float64
	left  *vpNode
	right *vpNode
}

// Build stores the vectors and constructs the tree.
func (t *VPTree) Build(vectors [][]float32) error {
	t.root = nil
	if err := t.build(vectors); err != nil {
		return err
	}
	t.index()
	return nil
}

func (t *VPTree) index() {
	positions := make([]int, len(t.vecs))
	for i := range positions {
		positions[i] = i
	}
	t.root = t.buildNode(positions)
}

func (t *VPTree) distance(a, b []float32) float64 {
	return float64(search.Float32s(a).EuclideanDistance(b))
}

func (t *VPTree) buildNode(positions []int) *vpNode {
	if len(positions) == 0 {
		return nil
	}
	// The last position is the vantage point; no randomness keeps builds reproducible.
	vp := positions[len(positions)-1]
	rest := positions[:len(positions)-1]
	if len(rest) == 0 {
		return &vpNode{pos: vp}
	}

	type ranked struct {
		pos  int
		dist float64
	}
	order := make([]ranked, len(rest))
	for i, p := range rest {
		order[i] = ranked{pos: p, dist: t.distance(t.vecs[vp], t.vecs[p])}
	}
	slices.SortStableFunc(order, func(a, b ranked) int {
		switch {
		case a.dist < b.dist:
			return -1
		case a.dist > b.dist:
			return 1
		}
		return a.pos - b.pos
	})

	mid := len(order) / 2
	left := make([]int, 0, mid+1)
	right := make([]int, 0, len(order)-mid-1)
	for rank, r := range order {
		if rank <= mid {
			left = append(left, r.pos)
		} else {
			right = append(right, r.pos)
		}
	}
	return &vpNode{
		pos:   vp,
		thr:   order[mid].dist,
		left:  t.buildNode(left),
		right: t.buildNode(right),
	}
}

// topK keeps the k best hits seen so far.
type topK struct {
	k    int
	hits []Hit
	// worst indexes the lowest ranked hit once the set is full.
	worst int
}

func (h *topK) full() bool { return len(h.hits) == h.k }

func (h *topK) offer(hit Hit) {
	if !h.full() {
		h.hits = append(h.hits, hit)
		if h.full() {
			h.findWorst()
		}
		return
	}
	if better(hit, h.hits[h.worst]) {
		h.hits[h.worst] = hit
		h.findWorst()
	}
}

func (h *topK) findWorst() {
	h.worst = 0
	for i := 1; i < len(h.hits); i++ {
		if better(h.hits[h.worst], h.hits[i]) {
			h.worst = i
		}
	}
}

// Query returns the min(k, Len()) best hits.
func (t *VPTree) Query(q []float32, k int) ([]Hit, error) {
	ok, err := t.checkQuery(q, k)
	if err != nil || !ok {
		return []Hit{}, err
	}

	k = min(k, len(t.vecs))
	qn2 := vector.Dot(q, q)
	top := &topK{k: k, hits: make([]Hit, 0, k)}

	// radius bounds the distance of any vector that could still enter top.
	radius := func() float64 {
		if !top.full() {
			return math.Inf(1)
		}
		worst := top.hits[top.worst].Score
		return math.Sqrt(math.Max(0, qn2+maxNorm2-2*worst)) + tauSlack
	}

	var visit func(n *vpNode)
	visit = func(n *vpNode) {
		if n == nil {
			return
		}
		v := t.vecs[n.pos]
		top.offer(Hit{Pos: n.pos, Score: vector.Dot(q, v)})
		if n.left == nil && n.right == nil {
			return
		}

		d := t.distance(q, v)
		if d < n.thr {
			if d-radius() <= n.thr {
				visit(n.left)
			}
			if d+radius() >= n.thr {
				visit(n.right)
			}
		} else {
			if d+radius() >= n.thr {
				visit(n.right)
			}
			if d-radius() <= n.thr {
				visit(n.left)
			}
		}
	}
	visit(t.root)

	slices.SortFunc(top.hits, compareHits)
	return top.hits, nil
}

// Kind returns KindVPTree.
func (t *VPTree) Kind() Kind { return KindVPTree }

// MarshalBinary encodes the stored vectors; the tree is rebuilt on load.
func (t *VPTree) MarshalBinary() ([]byte, error) {
	return marshal(KindVPTree, &t.store), nil
}

// UnmarshalBinary restores vectors written by MarshalBinary and rebuilds the tree.
func (t *VPTree) UnmarshalBinary(data []byte) error {
	t.root = nil
	if err := unmarshal(KindVPTree, data, &t.store); err != nil {
		return err
	}
	t.index()
	return nil
}
