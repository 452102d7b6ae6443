package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rocrate/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Read.Validate)
	assert.Equal(t, -1, cfg.Write.Compression)
	assert.Equal(t, "  ", cfg.Write.Indent)
	assert.Equal(t, "127.0.0.1:8080", cfg.Serve.Addr)
	assert.Equal(t, 32, cfg.Serve.MaxCrates)
	assert.True(t, cfg.Serve.Metrics)
	assert.NoError(t, cfg.Validate())
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
[read]
ignore = [".git/**", "**/*.tmp"]
validate = false

[write]
format = "zip"
compression = 9
include_untracked = true

[cache]
ttl = "2h"

[serve]
max_crates = 4
`))
	require.NoError(t, err)

	assert.Equal(t, []string{".git/**", "**/*.tmp"}, cfg.Read.Ignore)
	assert.False(t, cfg.Read.Validate)
	assert.Equal(t, "zip", cfg.Write.Format)
	assert.Equal(t, 9, cfg.Write.Compression)
	assert.True(t, cfg.Write.IncludeUntracked)
	assert.Equal(t, "  ", cfg.Write.Indent, "unset keys keep defaults")
	assert.Equal(t, 2*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 4, cfg.Serve.MaxCrates)
	assert.Equal(t, "127.0.0.1:8080", cfg.Serve.Addr)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"syntax", "[read\n"},
		{"unknown key", "[write]\nlevel = 3\n"},
		{"bad format", "[write]\nformat = \"tar\"\n"},
		{"bad compression", "[write]\ncompression = 12\n"},
		{"bad glob", "[read]\nignore = [\"[a-\"]\n"},
		{"bad max crates", "[serve]\nmax_crates = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
		})
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv(EnvPath, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, path, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOrder(t *testing.T) {
	xdg := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "rocrate"), 0o755))
	xdgFile := filepath.Join(xdg, "rocrate", "rocrate.toml")
	require.NoError(t, os.WriteFile(xdgFile, []byte("[serve]\nmax_crates = 1\n"), 0o644))

	envFile := filepath.Join(t.TempDir(), "env.toml")
	require.NoError(t, os.WriteFile(envFile, []byte("[serve]\nmax_crates = 2\n"), 0o644))

	flagFile := filepath.Join(t.TempDir(), "flag.toml")
	require.NoError(t, os.WriteFile(flagFile, []byte("[serve]\nmax_crates = 3\n"), 0o644))

	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv(EnvPath, "")
	cfg, path, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, xdgFile, path)
	assert.Equal(t, 1, cfg.Serve.MaxCrates)

	t.Setenv(EnvPath, envFile)
	cfg, path, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, envFile, path)
	assert.Equal(t, 2, cfg.Serve.MaxCrates)

	cfg, path, err = Load(flagFile)
	require.NoError(t, err)
	assert.Equal(t, flagFile, path)
	assert.Equal(t, 3, cfg.Serve.MaxCrates)
}

func TestLoadExplicitMissing(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeIO))
}

func TestLoadInvalidKeepsCode(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(p, []byte("[write]\nformat = \"tar\"\n"), 0o644))
	_, _, err := Load(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	assert.Contains(t, err.Error(), p)
}

func TestCacheDir(t *testing.T) {
	cfg := Default()
	cfg.Cache.Dir = "/tmp/custom"
	dir, err := cfg.CacheDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom", dir)

	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	dir, err = Default().CacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "rocrate"), dir)
}
