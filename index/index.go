// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package index

import (
	"encoding"
	"fmt"
	"strings"
)

// Kind names an index implementation.
type Kind string

const (
	// KindBruteForce scores every stored vector.
	KindBruteForce Kind = "bruteforce"
	// KindVPTree prunes the search with a vantage-point tree.
	KindVPTree Kind = "vptree"
)

// ParseKind converts a configuration string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindBruteForce, "":
		return KindBruteForce, nil
	case KindVPTree:
		return KindVPTree, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Hit is one query result: the position of the stored vector in the slice
// given to Build and its inner-product score.
type Hit struct {
	Pos   int
	Score float64
}

// Index answers top-k inner-product queries over a fixed set of vectors.
// Results are ordered by descending score; equal scores are ordered by
// ascending position. Build must be called before Query and is not safe
// to call concurrently with it. Queries may run concurrently.
type Index interface {
	Build(vectors [][]float32) error
	Query(q []float32, k int) ([]Hit, error)
	Len() int
	Dim() int
	Kind() Kind
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

// New returns an empty index of the given kind.
func New(kind Kind) (Index, error) {
	switch kind {
	case KindBruteForce:
		return &BruteForce{}, nil
	case KindVPTree:
		return &VPTree{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// Load decodes an index written by MarshalBinary, whatever its kind.
func Load(data []byte) (Index, error) {
	kind, err := peekKind(data)
	if err != nil {
		return nil, err
	}
	idx, err := New(kind)
	if err != nil {
		return nil, err
	}
	if err := idx.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return idx, nil
}
