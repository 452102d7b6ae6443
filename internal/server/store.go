package server

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/matzehuels/rocrate/pkg/crate"
	"github.com/matzehuels/rocrate/pkg/errors"
	"github.com/matzehuels/rocrate/pkg/metadata"
	"github.com/matzehuels/rocrate/pkg/observability"
	"github.com/matzehuels/rocrate/pkg/reader"
	"github.com/matzehuels/rocrate/pkg/validation"
)

const keyType = "crate"

// OpenFunc loads the crate at an absolute location.
type OpenFunc func(ctx context.Context, location string) (*crate.Crate, io.Closer, error)

// loaded is one cached crate. stamp is the modification time of the file
// the crate was read from; a newer file reloads the entry.
type loaded struct {
	crate  *crate.Crate
	closer io.Closer
	stamp  time.Time
}

// Store keeps the most recently used crates under a base directory in
// memory. Evicted zip crates have their extraction directories removed.
type Store struct {
	base   string
	open   OpenFunc
	logger *log.Logger

	mu     sync.Mutex
	crates *lru.Cache[string, *loaded]
}

// NewStore returns a store serving crates below base, keeping at most size
// of them loaded. Crates are read without validation so that invalid
// packages can still be inspected; a nil open uses [reader.Open] that way.
func NewStore(base string, size int, open OpenFunc, logger *log.Logger) (*Store, error) {
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "resolve %s", base)
	}
	if logger == nil {
		logger = log.Default()
	}
	if open == nil {
		open = func(ctx context.Context, location string) (*crate.Crate, io.Closer, error) {
			return reader.Open(ctx, location,
				reader.WithValidator(validation.Nop{}),
				reader.WithLogger(logger))
		}
	}
	crates, err := lru.NewWithEvict(size, func(location string, l *loaded) {
		if err := l.closer.Close(); err != nil {
			logger.Warn("release crate", "location", location, "err", err)
		}
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "crate cache")
	}
	return &Store{base: abs, open: open, logger: logger, crates: crates}, nil
}

// Base returns the absolute directory the store serves.
func (s *Store) Base() string { return s.base }

// Resolve maps a slash-separated path relative to the base directory to an
// absolute location, rejecting anything that would leave it.
func (s *Store) Resolve(rel string) (string, error) {
	rel = strings.TrimSuffix(rel, "/")
	if rel == "" || rel == "." {
		return s.base, nil
	}
	if err := errors.ValidatePath(rel); err != nil {
		return "", err
	}
	return filepath.Join(s.base, filepath.FromSlash(rel)), nil
}

// Get returns the crate at rel, loading it when it is not cached or has
// changed on disk since it was loaded.
func (s *Store) Get(ctx context.Context, rel string) (*crate.Crate, error) {
	location, err := s.Resolve(rel)
	if err != nil {
		return nil, err
	}
	stamp, err := modTime(location)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hooks := observability.Cache()
	if l, ok := s.crates.Get(location); ok {
		if l.stamp.Equal(stamp) {
			hooks.OnCacheHit(ctx, keyType)
			return l.crate, nil
		}
		s.crates.Remove(location)
	}
	hooks.OnCacheMiss(ctx, keyType)

	c, closer, err := s.open(ctx, location)
	if err != nil {
		return nil, err
	}
	s.crates.Add(location, &loaded{crate: c, closer: closer, stamp: stamp})
	hooks.OnCacheSet(ctx, keyType, c.Len())
	s.logger.Debug("loaded crate", "location", location, "entities", c.Len())
	return c, nil
}

// Len returns the number of loaded crates.
func (s *Store) Len() int { return s.crates.Len() }

// Close releases every loaded crate.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.crates.Purge()
	return nil
}

// List walks the base directory for crate folders and zip archives and
// returns their slash-separated paths relative to the base. The walk does
// not descend into crate folders.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var out []string
	err := filepath.WalkDir(s.base, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, _ := filepath.Rel(s.base, p)
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if p != s.base && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if _, err := os.Stat(filepath.Join(p, metadata.FileName)); err == nil {
				out = append(out, rel)
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(p), ".zip") {
			out = append(out, rel)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "scan %s", s.base)
	}
	return out, nil
}

func modTime(location string) (time.Time, error) {
	info, err := os.Stat(location)
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, errors.Wrap(errors.ErrCodeNotFound, err, "no crate at %s", location)
		}
		return time.Time{}, errors.Wrap(errors.ErrCodeIO, err, "stat %s", location)
	}
	if !info.IsDir() {
		return info.ModTime(), nil
	}
	info, err = os.Stat(filepath.Join(location, metadata.FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, errors.Wrap(errors.ErrCodeNotFound, err, "no crate at %s", location)
		}
		return time.Time{}, errors.Wrap(errors.ErrCodeIO, err, "stat %s", location)
	}
	return info.ModTime(), nil
}
