package features

import (
	"fmt"

	"github.com/mmwithiga/tarumbeta/core"
	"github.com/mmwithiga/tarumbeta/vector"
)

// Block weights. Categorical agreement dominates; price, quality and
// free-text similarity refine the ordering within it.
const (
	WeightCategorical = 0.80
	WeightNumeric     = 0.10
	WeightText        = 0.10
)

// BlendBlocks normalizes each block, applies its weight, concatenates them and
// normalizes the result. Zero blocks stay zero; an all-zero input produces an
// all-zero vector.
func BlendBlocks(categorical, numeric, text []float32) []float32 {
	out := make([]float32, 0, len(categorical)+len(numeric)+len(text))
	out = append(out, weighted(categorical, WeightCategorical)...)
	out = append(out, weighted(numeric, WeightNumeric)...)
	out = append(out, weighted(text, WeightText)...)
	return vector.Normalize(out)
}

func weighted(block []float32, w float64) []float32 {
	v := vector.Normalize(block)
	vector.Scale(v, w)
	return v
}

// Blend encodes r in s, using text as its embedding block. A nil text
// embedding means the row had no text and yields a zero block.
func (s *Space) Blend(r Row, text []float32) ([]float32, []string, error) {
	if text == nil {
		text = make([]float32, s.embeddingDim)
	}
	if len(text) != s.embeddingDim {
		return nil, nil, fmt.Errorf("%w: embedding has %d dimensions, space expects %d",
			core.ErrDimensionMismatch, len(text), s.embeddingDim)
	}
	cat, unknown := s.vocab.Transform(r)
	num := s.scaler.Transform(r.Numeric)
	return BlendBlocks(cat, num, text), unknown, nil
}
