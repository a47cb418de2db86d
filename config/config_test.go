package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmwithiga/tarumbeta/core"
	"github.com/mmwithiga/tarumbeta/index"
	"github.com/mmwithiga/tarumbeta/matching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"tilde only", "~", home},
		{"tilde slash", "~/foo/bar", filepath.Join(home, "foo", "bar")},
		{"absolute", "/tmp/foo", "/tmp/foo"},
		{"relative", "foo/bar", "foo/bar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	timeout, err := cfg.Timeout()
	require.NoError(t, err)
	assert.Equal(t, matching.DefaultTimeout, timeout)

	kind, err := cfg.IndexKind()
	require.NoError(t, err)
	assert.Equal(t, index.KindVPTree, kind)
	assert.Equal(t, matching.DefaultTiers(), cfg.Tiers())
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tarumbeta.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  path: /var/lib/tarumbeta
embedding:
  host: http://embeddings:8080
  model: all-MiniLM-L6-v2
matching:
  top_n: 3
  timeout: 2s
  primary_source: synthetic
  proxy_profile_id: p-studio
  degraded_fallback: true
build:
  index_kind: bruteforce
  workers: 2
  rate_limit: 5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	dbPath, err := cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/tarumbeta", dbPath)

	aiCfg := cfg.AI()
	require.NoError(t, aiCfg.Validate())
	assert.Equal(t, "http://embeddings:8080/v1", aiCfg.EmbeddingHost)
	assert.Equal(t, "all-MiniLM-L6-v2", aiCfg.EmbeddingModel)
	assert.Equal(t, 384, aiCfg.Dimension, "unset keys keep defaults")

	timeout, err := cfg.Timeout()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, timeout)

	source, err := cfg.PrimarySource()
	require.NoError(t, err)
	assert.Equal(t, core.SourceSynthetic, source)

	opts, err := cfg.MatcherOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 7)

	buildOpts, err := cfg.BuilderOptions()
	require.NoError(t, err)
	assert.Len(t, buildOpts, 5)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "matching: [\n"},
		{"bad timeout", "matching:\n  timeout: soon\n"},
		{"bad source", "matching:\n  primary_source: imaginary\n"},
		{"bad index", "build:\n  index_kind: kdtree\n"},
		{"bad tiers", "matching:\n  tiers:\n    excellent: 0.5\n    great: 0.9\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tarumbeta.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := Load(path)
			assert.ErrorIs(t, err, core.ErrConfiguration)
		})
	}
}
