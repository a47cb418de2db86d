// Package config loads the tarumbeta configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mmwithiga/tarumbeta/ai"
	"github.com/mmwithiga/tarumbeta/core"
	"github.com/mmwithiga/tarumbeta/corpus"
	"github.com/mmwithiga/tarumbeta/index"
	"github.com/mmwithiga/tarumbeta/matching"
	"gopkg.in/yaml.v3"
)

// Config is the file form of every tunable of the engine.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Matching  MatchingConfig  `yaml:"matching"`
	Build     BuildConfig     `yaml:"build"`
}

// DatabaseConfig locates the record store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// EmbeddingConfig configures the OpenAI-compatible embedding service.
type EmbeddingConfig struct {
	Host      string `yaml:"host"`
	Model     string `yaml:"model"`
	Token     string `yaml:"token"`
	Dimension int    `yaml:"dimension"`
	CacheSize int    `yaml:"cache_size"`
}

// MatchingConfig configures request serving.
type MatchingConfig struct {
	TopN             int         `yaml:"top_n"`
	CandidateK       int         `yaml:"candidate_k"`
	Timeout          string      `yaml:"timeout"`
	PrimarySource    string      `yaml:"primary_source"`
	ProxyProfileID   string      `yaml:"proxy_profile_id"`
	DegradedFallback bool        `yaml:"degraded_fallback"`
	Tiers            TiersConfig `yaml:"tiers"`
}

// TiersConfig holds strength thresholds.
type TiersConfig struct {
	Excellent float64 `yaml:"excellent"`
	Great     float64 `yaml:"great"`
	Good      float64 `yaml:"good"`
	Fair      float64 `yaml:"fair"`
}

// BuildConfig configures offline bundle builds.
type BuildConfig struct {
	IndexKind   string  `yaml:"index_kind"`
	Workers     int     `yaml:"workers"`
	BatchSize   int     `yaml:"batch_size"`
	RateLimit   float64 `yaml:"rate_limit"`
	MaxAttempts int     `yaml:"max_attempts"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	aiDefaults := ai.DefaultConfig()
	tiers := matching.DefaultTiers()
	return &Config{
		Database: DatabaseConfig{Path: "~/.tarumbeta/db"},
		Embedding: EmbeddingConfig{
			Host:      aiDefaults.EmbeddingHost,
			Model:     aiDefaults.EmbeddingModel,
			Token:     aiDefaults.Token,
			Dimension: aiDefaults.Dimension,
			CacheSize: aiDefaults.CacheSize,
		},
		Matching: MatchingConfig{
			TopN:          matching.DefaultTopN,
			CandidateK:    matching.DefaultCandidateK,
			Timeout:       matching.DefaultTimeout.String(),
			PrimarySource: core.SourceLive.String(),
			Tiers: TiersConfig{
				Excellent: tiers.Excellent,
				Great:     tiers.Great,
				Good:      tiers.Good,
				Fair:      tiers.Fair,
			},
		},
		Build: BuildConfig{
			IndexKind:   string(index.KindVPTree),
			BatchSize:   64,
			MaxAttempts: 3,
		},
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads the YAML file at path over the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", core.ErrConfiguration, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that the typed accessors would otherwise reject
// later.
func (c *Config) Validate() error {
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if _, err := c.PrimarySource(); err != nil {
		return err
	}
	if _, err := c.IndexKind(); err != nil {
		return fmt.Errorf("%w: %w", core.ErrConfiguration, err)
	}
	if err := c.Tiers().Validate(); err != nil {
		return fmt.Errorf("%w: %w", core.ErrConfiguration, err)
	}
	return nil
}

// DatabasePath returns the expanded database path.
func (c *Config) DatabasePath() (string, error) {
	return ExpandPath(c.Database.Path)
}

// AI returns the embedding service configuration.
func (c *Config) AI() *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(c.Embedding.Host),
		ai.WithEmbeddingModel(c.Embedding.Model),
		ai.WithToken(c.Embedding.Token),
		ai.WithDimension(c.Embedding.Dimension),
		ai.WithCacheSize(c.Embedding.CacheSize),
	)
}

// Timeout parses the request timeout.
func (c *Config) Timeout() (time.Duration, error) {
	if c.Matching.Timeout == "" {
		return matching.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Matching.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: matching.timeout: %w", core.ErrConfiguration, err)
	}
	return d, nil
}

// PrimarySource parses the pool tried first.
func (c *Config) PrimarySource() (core.Source, error) {
	if c.Matching.PrimarySource == "" {
		return core.SourceLive, nil
	}
	s, err := core.ParseSource(c.Matching.PrimarySource)
	if err != nil {
		return 0, fmt.Errorf("%w: matching.primary_source %q", core.ErrConfiguration, c.Matching.PrimarySource)
	}
	return s, nil
}

// IndexKind parses the index kind used by builds.
func (c *Config) IndexKind() (index.Kind, error) {
	return index.ParseKind(c.Build.IndexKind)
}

// Tiers returns the strength thresholds.
func (c *Config) Tiers() matching.Tiers {
	return matching.Tiers{
		Excellent: c.Matching.Tiers.Excellent,
		Great:     c.Matching.Tiers.Great,
		Good:      c.Matching.Tiers.Good,
		Fair:      c.Matching.Tiers.Fair,
	}
}

// MatcherOptions maps the matching section onto matcher options.
func (c *Config) MatcherOptions() ([]matching.Option, error) {
	timeout, err := c.Timeout()
	if err != nil {
		return nil, err
	}
	primary, err := c.PrimarySource()
	if err != nil {
		return nil, err
	}
	opts := []matching.Option{
		matching.WithTiers(c.Tiers()),
		matching.WithTimeout(timeout),
		matching.WithPrimarySource(primary),
		matching.WithDegradedFallback(c.Matching.DegradedFallback),
	}
	if c.Matching.TopN > 0 {
		opts = append(opts, matching.WithTopN(c.Matching.TopN))
	}
	if c.Matching.CandidateK > 0 {
		opts = append(opts, matching.WithCandidateK(c.Matching.CandidateK))
	}
	if c.Matching.ProxyProfileID != "" {
		opts = append(opts, matching.WithProxyIdentity(c.Matching.ProxyProfileID))
	}
	return opts, nil
}

// BuilderOptions maps the build section onto bundle builder options.
func (c *Config) BuilderOptions() ([]corpus.Option, error) {
	kind, err := c.IndexKind()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrConfiguration, err)
	}
	opts := []corpus.Option{corpus.WithIndexKind(kind)}
	if c.Build.Workers > 0 {
		opts = append(opts, corpus.WithPoolSize(c.Build.Workers))
	}
	if c.Build.BatchSize > 0 {
		opts = append(opts, corpus.WithBatchSize(c.Build.BatchSize))
	}
	if c.Build.RateLimit > 0 {
		opts = append(opts, corpus.WithRateLimit(c.Build.RateLimit, 1))
	}
	if c.Build.MaxAttempts > 0 {
		opts = append(opts, corpus.WithRetry(c.Build.MaxAttempts, time.Second))
	}
	return opts, nil
}
