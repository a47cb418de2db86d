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

package tarumbeta

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmwithiga/tarumbeta/ai"
	"github.com/mmwithiga/tarumbeta/ai/openai"
	"github.com/mmwithiga/tarumbeta/core"
	"github.com/mmwithiga/tarumbeta/corpus"
	"github.com/mmwithiga/tarumbeta/features"
	"github.com/mmwithiga/tarumbeta/index"
	"github.com/mmwithiga/tarumbeta/matching"
	"github.com/mmwithiga/tarumbeta/storage"
	"github.com/mmwithiga/tarumbeta/storage/badger"
)

// Engine owns the record store, the embedder and the serving artifacts
// loaded at startup. The loaded bundle is immutable; a newer bundle is
// adopted by opening a new Engine.
type Engine struct {
	repos    *badger.Repositories
	provider ai.AIProvider
	embedder ai.Embedder

	bundle     *core.Bundle
	vectorizer *features.Vectorizer
	pool       *matching.Pool

	pingTimeout  time.Duration
	strategyOnce sync.Once
	strategy     matching.Strategy
	logger       *slog.Logger
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	aiConfig    *ai.Config
	provider    ai.AIProvider
	embedder    ai.Embedder
	inMemory    bool
	pingTimeout time.Duration
	logger      *slog.Logger
}

// WithAIConfig sets the embedding service configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(cfg *ai.Config) Option {
	return func(o *options) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithProvider uses provider instead of creating an OpenAI-compatible one.
// The engine closes it.
func WithProvider(provider ai.AIProvider) Option {
	return func(o *options) {
		o.provider = provider
	}
}

// WithEmbedder uses embedder instead of creating an OpenAI-compatible one.
func WithEmbedder(embedder ai.Embedder) Option {
	return func(o *options) {
		o.embedder = embedder
	}
}

// WithInMemory keeps the record store in memory. The path is ignored.
func WithInMemory() Option {
	return func(o *options) {
		o.inMemory = true
	}
}

// WithPingTimeout bounds the startup embedder check.
// Default is 5 seconds.
func WithPingTimeout(d time.Duration) Option {
	return func(o *options) {
		o.pingTimeout = d
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Open opens the record store at path and loads the current bundle, if
// one has been built. A bundle that does not match its own feature space
// or the embedder fails with core.ErrConfiguration.
func Open(ctx context.Context, path string, opts ...Option) (*Engine, error) {
	o := &options{
		aiConfig:    ai.DefaultConfig(),
		pingTimeout: 5 * time.Second,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	repos, err := badger.OpenRepositories(path, o.inMemory)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		repos:       repos,
		provider:    o.provider,
		embedder:    o.embedder,
		pingTimeout: o.pingTimeout,
		logger:      o.logger.With("component", "engine"),
	}
	if e.embedder == nil && e.provider != nil {
		e.embedder = e.provider.Embedder()
	}
	if e.embedder == nil {
		provider, err := openai.NewProvider(o.aiConfig)
		if err != nil {
			repos.Close()
			return nil, fmt.Errorf("%w: %w", core.ErrConfiguration, err)
		}
		e.provider = provider
		e.embedder = provider.Embedder()
	}

	if err := e.loadBundle(ctx); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

func (e *Engine) loadBundle(ctx context.Context) error {
	bundle, err := e.repos.Artifacts.LoadCurrentBundle(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		e.logger.Info("no current bundle, serving is disabled until one is built")
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: load bundle: %w", core.ErrConfiguration, err)
	}

	if v := corpus.BundleVersion(bundle.Space, index.Kind(bundle.IndexKind), bundle.Index); v != bundle.Version {
		return fmt.Errorf("%w: bundle %s content fingerprints as %s",
			core.ErrConfiguration, bundle.Version, v)
	}
	space, err := features.UnmarshalSpace(bundle.Space)
	if err != nil {
		return err
	}
	if space.Version() != bundle.SpaceVersion {
		return fmt.Errorf("%w: bundle %s was encoded with space %s, stored space is %s",
			core.ErrConfiguration, bundle.Version, bundle.SpaceVersion, space.Version())
	}
	if space.EmbeddingDim() != bundle.EmbeddingDim {
		return fmt.Errorf("%w: bundle %s records embedding dimension %d, its space has %d",
			core.ErrConfiguration, bundle.Version, bundle.EmbeddingDim, space.EmbeddingDim())
	}
	idx, err := index.Load(bundle.Index)
	if err != nil {
		return fmt.Errorf("%w: bundle %s index: %w", core.ErrConfiguration, bundle.Version, err)
	}
	if string(idx.Kind()) != bundle.IndexKind {
		return fmt.Errorf("%w: bundle %s records index kind %q, index is %q",
			core.ErrConfiguration, bundle.Version, bundle.IndexKind, idx.Kind())
	}
	if idx.Len() != len(bundle.Candidates) {
		return fmt.Errorf("%w: bundle %s indexes %d vectors for %d candidates",
			core.ErrConfiguration, bundle.Version, idx.Len(), len(bundle.Candidates))
	}
	if idx.Len() > 0 && idx.Dim() != space.Dim() {
		return fmt.Errorf("%w: bundle %s index has %d dimensions, space has %d",
			core.ErrConfiguration, bundle.Version, idx.Dim(), space.Dim())
	}
	vectorizer, err := features.NewVectorizer(space, e.embedder, features.WithLogger(e.logger))
	if err != nil {
		return err
	}

	candidates := make([]*core.Candidate, len(bundle.Candidates))
	for i := range bundle.Candidates {
		candidates[i] = &bundle.Candidates[i]
	}
	e.bundle = bundle
	e.vectorizer = vectorizer
	e.pool = &matching.Pool{Source: core.SourceSynthetic, Candidates: candidates, Index: idx}
	e.logger.Info("bundle loaded", "version", bundle.Version, "space", space.Version(),
		"candidates", len(candidates), "index", idx.Kind(), "dim", space.Dim())
	return nil
}

// Close releases the embedder and the record store.
func (e *Engine) Close() error {
	if e.provider != nil {
		if err := e.provider.Close(); err != nil {
			e.logger.Error("error closing AI provider", "err", err)
		}
	}
	if err := e.repos.Close(); err != nil {
		e.logger.Error("error closing record store", "err", err)
		return err
	}
	return nil
}

// Bundle returns the loaded bundle, or nil when none was current at Open.
func (e *Engine) Bundle() *core.Bundle { return e.bundle }

func (e *Engine) Candidates() storage.CandidateRepository { return e.repos.Candidates }

func (e *Engine) MatchLogs() storage.MatchLogRepository { return e.repos.MatchLogs }

func (e *Engine) Artifacts() storage.ArtifactRepository { return e.repos.Artifacts }

func (e *Engine) Embedder() ai.Embedder { return e.embedder }

// NewImporter creates an importer writing to the candidate store.
func (e *Engine) NewImporter(opts ...corpus.ImporterOption) (*corpus.Importer, error) {
	opts = append([]corpus.ImporterOption{corpus.WithImportLogger(e.logger)}, opts...)
	return corpus.NewImporter(e.repos.Candidates, opts...)
}

// NewBuilder creates a bundle builder using the engine's embedder. The
// caller must Release it.
func (e *Engine) NewBuilder(opts ...corpus.Option) (*corpus.Builder, error) {
	opts = append([]corpus.Option{corpus.WithLogger(e.logger)}, opts...)
	return corpus.NewBuilder(e.repos.Artifacts, e.embedder, opts...)
}

// Strategy returns the matching strategy, checking the embedder on the
// first call. The check is bounded by the ping timeout only; cancelling ctx
// does not cut it short.
func (e *Engine) Strategy(ctx context.Context) matching.Strategy {
	e.strategyOnce.Do(func() {
		var semantic matching.Strategy
		if e.vectorizer != nil {
			s, err := matching.NewSemanticStrategy(e.vectorizer)
			if err == nil {
				semantic = s
			}
		}
		e.strategy = matching.SelectStrategy(context.WithoutCancel(ctx), e.embedder, semantic, matching.RuleBasedStrategy{}, e.pingTimeout, e.logger)
	})
	return e.strategy
}

// NewMatcher creates a matcher over the loaded bundle. It fails with
// core.ErrConfiguration when no bundle was loaded.
func (e *Engine) NewMatcher(ctx context.Context, opts ...matching.Option) (*matching.Matcher, error) {
	if e.bundle == nil {
		return nil, fmt.Errorf("%w: no bundle has been built", core.ErrConfiguration)
	}
	opts = append([]matching.Option{
		matching.WithPersistentPool(e.pool),
		matching.WithLogger(e.logger),
	}, opts...)
	return matching.NewMatcher(e.repos.Candidates, e.repos.MatchLogs, e.Strategy(ctx), opts...)
}
