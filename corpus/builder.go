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

package corpus

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/mmwithiga/tarumbeta/ai"
	"github.com/mmwithiga/tarumbeta/core"
	"github.com/mmwithiga/tarumbeta/features"
	"github.com/mmwithiga/tarumbeta/index"
	"github.com/mmwithiga/tarumbeta/storage"
	"github.com/panjf2000/ants/v2"
	"golang.org/x/time/rate"
)

// Builder fits a feature space over a synthetic pool, vectorizes the pool
// and stores the resulting serving bundle.
type Builder struct {
	artifacts      storage.ArtifactRepository
	embedder       ai.Embedder
	pool           *ants.Pool
	batchSize      int
	limiter        *rate.Limiter
	backoff        Backoff
	indexKind      index.Kind
	progress       io.Writer
	reportInterval int
	logger         *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithPoolSize sets the number of concurrent vectorization workers.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if b.pool != nil {
			b.pool.Release()
		}
		b.pool = pool
		return nil
	}
}

// WithBatchSize sets the number of candidates embedded per request.
// Default is 64.
func WithBatchSize(size int) Option {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}
		b.batchSize = size
		return nil
	}
}

// WithRateLimit caps embedding requests per second. A non-positive rate
// disables the limit.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(b *Builder) error {
		if requestsPerSecond <= 0 {
			b.limiter = rate.NewLimiter(rate.Inf, 1)
			return nil
		}
		b.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), max(burst, 1))
		return nil
	}
}

// WithRetry sets the attempts and base delay for failed embedding batches.
// Default is 3 attempts starting at one second.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(b *Builder) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		b.backoff = Backoff{MaxAttempts: maxAttempts, BaseDelay: baseDelay, MaxDelay: 30 * time.Second}
		return nil
	}
}

// WithIndexKind selects the similarity index stored in the bundle.
// Default is index.KindVPTree.
func WithIndexKind(kind index.Kind) Option {
	return func(b *Builder) error {
		if _, err := index.New(kind); err != nil {
			return err
		}
		b.indexKind = kind
		return nil
	}
}

// WithProgress reports vectorization progress to w every interval candidates.
func WithProgress(w io.Writer, interval int) Option {
	return func(b *Builder) error {
		b.progress = w
		b.reportInterval = interval
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates a new bundle builder.
func NewBuilder(artifacts storage.ArtifactRepository, embedder ai.Embedder, opts ...Option) (*Builder, error) {
	if artifacts == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	b := &Builder{
		artifacts:      artifacts,
		embedder:       embedder,
		batchSize:      64,
		limiter:        rate.NewLimiter(rate.Inf, 1),
		backoff:        Backoff{MaxAttempts: 3, BaseDelay: time.Second, MaxDelay: 30 * time.Second},
		indexKind:      index.KindVPTree,
		reportInterval: 100,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			b.Release()
			return nil, err
		}
	}
	if b.pool == nil {
		pool, err := ants.NewPool(max(runtime.NumCPU()/2, 1))
		if err != nil {
			return nil, err
		}
		b.pool = pool
	}
	b.logger = b.logger.With("component", "bundle-builder")
	return b, nil
}

// Release stops the worker pool.
func (b *Builder) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}

// Build fits the feature space over learners and pool, vectorizes and
// indexes pool and saves the bundle. Invalid pool records are skipped.
func (b *Builder) Build(ctx context.Context, learners []core.Profile, pool []core.Candidate, makeCurrent bool) (*core.Bundle, error) {
	candidates := make([]core.Candidate, 0, len(pool))
	for i, c := range pool {
		if c.Source == 0 {
			c.Source = core.SourceSynthetic
		}
		if err := core.ValidateCandidate(&c); err != nil {
			b.logger.Warn("skipping invalid pool record", "index", i, "name", c.Name, "err", err)
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return nil, ErrEmptyPool
	}

	dim, err := b.embeddingDim(ctx)
	if err != nil {
		return nil, err
	}

	space, err := features.Fit(learners, candidates, dim)
	if err != nil {
		return nil, err
	}
	vectorizer, err := features.NewVectorizer(space, b.embedder, features.WithLogger(b.logger))
	if err != nil {
		return nil, err
	}
	b.logger.Info("feature space fitted", "space", space.Version(), "dim", space.Dim(),
		"categorical", space.Vocabulary().Dim(), "embedding", dim)

	ptrs := make([]*core.Candidate, len(candidates))
	for i := range candidates {
		ptrs[i] = &candidates[i]
	}
	tracker := NewProgressTracker(b.progress, len(ptrs), b.reportInterval)
	tracker.Start()
	batches := NewBatchVectorizer(vectorizer, b.pool, b.limiter, b.backoff, b.batchSize, b.logger)
	vectors, err := batches.Vectorize(ctx, ptrs, tracker)
	if err != nil {
		return nil, err
	}
	tracker.Finish()

	idx, err := index.New(b.indexKind)
	if err != nil {
		return nil, err
	}
	if err := idx.Build(vectors); err != nil {
		return nil, err
	}
	indexData, err := idx.MarshalBinary()
	if err != nil {
		return nil, err
	}
	spaceData, err := space.MarshalBinary()
	if err != nil {
		return nil, err
	}

	bundle := &core.Bundle{
		Version:      BundleVersion(spaceData, b.indexKind, indexData),
		SpaceVersion: space.Version(),
		EmbeddingDim: dim,
		IndexKind:    string(b.indexKind),
		Space:        spaceData,
		Index:        indexData,
		Candidates:   candidates,
		CreatedAt:    time.Now().UTC(),
	}
	if err := b.artifacts.SaveBundle(ctx, bundle, makeCurrent); err != nil {
		return nil, fmt.Errorf("save bundle: %w", err)
	}

	b.logger.Info("bundle saved", "version", bundle.Version, "candidates", len(candidates),
		"index", b.indexKind, "current", makeCurrent, "elapsed", tracker.Elapsed().Round(time.Millisecond))
	return bundle, nil
}

// embeddingDim asks the embedder for its dimension, probing it once when
// the dimension is only learned from a response.
func (b *Builder) embeddingDim(ctx context.Context) (int, error) {
	if dim := b.embedder.Dimension(); dim > 0 {
		return dim, nil
	}
	if err := b.embedder.Ping(ctx); err != nil {
		return 0, fmt.Errorf("%w: %w", core.ErrEmbeddingFailure, err)
	}
	if dim := b.embedder.Dimension(); dim > 0 {
		return dim, nil
	}
	return 0, fmt.Errorf("%w: embedder did not report a dimension", core.ErrConfiguration)
}

// BundleVersion fingerprints the encoded space, index kind and index.
func BundleVersion(space []byte, kind index.Kind, idx []byte) string {
	content := make([]byte, 0, len(space)+len(kind)+len(idx))
	content = append(content, space...)
	content = append(content, kind...)
	content = append(content, idx...)
	return fmt.Sprintf("%016x", uint64(core.IDFromContent(string(content))))
}
