package reader

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zip"

	"github.com/matzehuels/rocrate/pkg/errors"
	"github.com/matzehuels/rocrate/pkg/metadata"
	"github.com/matzehuels/rocrate/pkg/value"
)

// ZipStrategy reads packages stored as zip archives. Each archive is
// extracted once into its own temporary directory; data entity sources
// point into that directory until Close removes it.
type ZipStrategy struct {
	Codec value.Codec
	// TempDir is the parent of extraction directories. Empty means
	// os.TempDir().
	TempDir string

	mu        sync.Mutex
	extracted map[string]string
}

// NewZipStrategy returns a zip strategy with the default codec.
func NewZipStrategy() *ZipStrategy {
	return &ZipStrategy{}
}

// ReadMetadata decodes ro-crate-metadata.json at the archive root.
func (s *ZipStrategy) ReadMetadata(ctx context.Context, location string) (*value.Value, error) {
	dir, err := s.extract(ctx, location)
	if err != nil {
		return nil, err
	}
	return readMetadataFile(filepath.Join(dir, metadata.FileName), s.Codec)
}

// ReadContent returns the extraction directory of the archive.
func (s *ZipStrategy) ReadContent(ctx context.Context, location string) (string, error) {
	return s.extract(ctx, location)
}

// Close removes every extraction directory.
func (s *ZipStrategy) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	for loc, dir := range s.extracted {
		if err := os.RemoveAll(dir); err != nil {
			errs = append(errs, err)
		}
		delete(s.extracted, loc)
	}
	return errors.Join(errors.ErrCodeIO, "remove extracted archives", errs...)
}

func (s *ZipStrategy) extract(ctx context.Context, location string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dir, ok := s.extracted[location]; ok {
		return dir, nil
	}

	parent := s.TempDir
	if parent == "" {
		parent = os.TempDir()
	}
	dir := filepath.Join(parent, "rocrate-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "create %s", dir)
	}
	if err := unzip(ctx, location, dir); err != nil {
		os.RemoveAll(dir)
		return "", err
	}

	if s.extracted == nil {
		s.extracted = make(map[string]string)
	}
	s.extracted[location] = dir
	return dir, nil
}

func unzip(ctx context.Context, archive, dest string) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "open archive %s", archive)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := errors.ValidatePath(f.Name); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "archive entry %q", f.Name)
		}
		target := filepath.Join(dest, filepath.FromSlash(strings.TrimSuffix(f.Name, "/")))
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return errors.Wrap(errors.ErrCodeIO, err, "create %s", target)
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", filepath.Dir(target))
	}
	rc, err := f.Open()
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "open archive entry %s", f.Name)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", target)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "extract %s", f.Name)
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", target)
	}
	return nil
}
