// Package config loads rocrate.toml.
//
// The file is looked up in this order: an explicit path (the --config
// flag), $ROCRATE_CONFIG, then $XDG_CONFIG_HOME/rocrate/rocrate.toml
// (falling back to ~/.config). Only the last location may be absent; a
// missing file there yields [Default].
//
// Example file:
//
//	[read]
//	ignore = [".git/**", "**/*.tmp"]
//	validate = true
//
//	[write]
//	format = "zip"
//	compression = 9
//
//	[cache]
//	ttl = "24h"
//
//	[serve]
//	addr = "127.0.0.1:8080"
//	max_crates = 32
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/matzehuels/rocrate/pkg/errors"
)

const (
	appName  = "rocrate"
	fileName = "rocrate.toml"

	// EnvPath names the environment variable holding a config file path.
	EnvPath = "ROCRATE_CONFIG"
)

// Config is the decoded configuration file.
type Config struct {
	Read  Read  `toml:"read"`
	Write Write `toml:"write"`
	Cache Cache `toml:"cache"`
	Serve Serve `toml:"serve"`
}

// Read configures crate loading.
type Read struct {
	// Ignore lists doublestar globs excluded from the untracked listing.
	Ignore   []string `toml:"ignore"`
	Validate bool     `toml:"validate"`
}

// Write configures crate persistence.
type Write struct {
	// Format is "folder", "zip" or empty to infer from the destination.
	Format           string `toml:"format"`
	Compression      int    `toml:"compression"`
	IncludeUntracked bool   `toml:"include_untracked"`
	Indent           string `toml:"indent"`
}

// Cache configures the rendered diagram cache.
type Cache struct {
	Dir      string        `toml:"dir"`
	Disabled bool          `toml:"disabled"`
	TTL      time.Duration `toml:"ttl"`
}

// Serve configures the HTTP browser.
type Serve struct {
	Addr      string `toml:"addr"`
	MaxCrates int    `toml:"max_crates"`
	// Metrics exposes Prometheus metrics at /metrics.
	Metrics bool `toml:"metrics"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Read:  Read{Validate: true},
		Write: Write{Compression: -1, Indent: "  "},
		Cache: Cache{TTL: 7 * 24 * time.Hour},
		Serve: Serve{Addr: "127.0.0.1:8080", MaxCrates: 32, Metrics: true},
	}
}

// Parse decodes data over the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	switch c.Write.Format {
	case "", "folder", "zip":
	default:
		errs = append(errs, errors.New(errors.ErrCodeInvalidInput, "write.format %q is not folder or zip", c.Write.Format))
	}
	if c.Write.Compression < -2 || c.Write.Compression > 9 {
		errs = append(errs, errors.New(errors.ErrCodeInvalidInput, "write.compression %d out of range -2..9", c.Write.Compression))
	}
	for _, p := range c.Read.Ignore {
		if !doublestar.ValidatePattern(p) {
			errs = append(errs, errors.New(errors.ErrCodeInvalidInput, "read.ignore pattern %q is malformed", p))
		}
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, errors.New(errors.ErrCodeInvalidInput, "cache.ttl must not be negative"))
	}
	if c.Serve.MaxCrates < 1 {
		errs = append(errs, errors.New(errors.ErrCodeInvalidInput, "serve.max_crates must be at least 1"))
	}
	return errors.Join(errors.ErrCodeInvalidInput, "invalid config", errs...)
}

// Load resolves and reads the configuration file. It returns the path that
// was read, or "" when defaults were used.
func Load(explicit string) (Config, string, error) {
	path, required := explicit, true
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return Default(), "", nil
		}
		path, required = filepath.Join(dir, fileName), false
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !required {
		return Default(), "", nil
	}
	if err != nil {
		return Config{}, "", errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, "", errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return cfg, path, nil
}

// CacheDir returns Cache.Dir or $XDG_CACHE_HOME/rocrate (~/.cache/rocrate).
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
