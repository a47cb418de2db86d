package features

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmwithiga/tarumbeta/ai"
	"github.com/mmwithiga/tarumbeta/core"
)

// Vectorizer turns learner profiles and instructor records into blended
// vectors of a single Space.
type Vectorizer struct {
	space    *Space
	embedder ai.Embedder
	logger   *slog.Logger
}

// VectorizerOption configures a Vectorizer.
type VectorizerOption func(*Vectorizer)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) VectorizerOption {
	return func(v *Vectorizer) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// NewVectorizer binds a fitted space to an embedder. The embedder's
// dimension, when already known, must match the space.
func NewVectorizer(space *Space, embedder ai.Embedder, opts ...VectorizerOption) (*Vectorizer, error) {
	if space == nil {
		return nil, fmt.Errorf("%w: feature space is required", core.ErrConfiguration)
	}
	if embedder == nil {
		return nil, fmt.Errorf("%w: embedder is required", core.ErrConfiguration)
	}
	if d := embedder.Dimension(); d != 0 && d != space.EmbeddingDim() {
		return nil, fmt.Errorf("%w: embedder produces %d dimensions, space was fitted with %d",
			core.ErrConfiguration, d, space.EmbeddingDim())
	}
	v := &Vectorizer{
		space:    space,
		embedder: embedder,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.logger = v.logger.With("component", "vectorizer", "space", space.Version())
	return v, nil
}

// Space returns the space vectors are produced in.
func (v *Vectorizer) Space() *Space { return v.space }

// Embedder returns the text embedder.
func (v *Vectorizer) Embedder() ai.Embedder { return v.embedder }

// VectorizeProfile produces the query vector for a learner.
func (v *Vectorizer) VectorizeProfile(ctx context.Context, p core.Profile) ([]float32, error) {
	vecs, err := v.VectorizeRows(ctx, []Row{v.space.ProfileRow(p)})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// VectorizeCandidates produces one vector per instructor, in input order.
func (v *Vectorizer) VectorizeCandidates(ctx context.Context, candidates []*core.Candidate) ([][]float32, error) {
	rows := make([]Row, len(candidates))
	for i, c := range candidates {
		rows[i] = CandidateRow(c)
	}
	return v.VectorizeRows(ctx, rows)
}

// VectorizeRows embeds the non-empty texts of rows in one batch and blends
// every row. Rows with empty text get a zero text block without an
// embedder call.
func (v *Vectorizer) VectorizeRows(ctx context.Context, rows []Row) ([][]float32, error) {
	texts := make([]string, 0, len(rows))
	textIdx := make([]int, 0, len(rows))
	for i, r := range rows {
		if r.Text == "" {
			continue
		}
		texts = append(texts, r.Text)
		textIdx = append(textIdx, i)
	}

	embeddings := make([][]float32, len(rows))
	if len(texts) > 0 {
		vecs, err := v.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrEmbeddingFailure, err)
		}
		if len(vecs) != len(texts) {
			return nil, fmt.Errorf("%w: expected %d embeddings, got %d",
				core.ErrEmbeddingFailure, len(texts), len(vecs))
		}
		for j, vec := range vecs {
			embeddings[textIdx[j]] = vec
		}
	}

	out := make([][]float32, len(rows))
	for i, r := range rows {
		vec, unknown, err := v.space.Blend(r, embeddings[i])
		if err != nil {
			return nil, err
		}
		if len(unknown) > 0 {
			v.logger.Debug("unknown category values encoded as zero", "columns", unknown)
		}
		out[i] = vec
	}
	return out, nil
}
