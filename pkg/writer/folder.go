package writer

import (
	"bufio"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matzehuels/rocrate/pkg/crate"
	"github.com/matzehuels/rocrate/pkg/errors"
	"github.com/matzehuels/rocrate/pkg/metadata"
	"github.com/matzehuels/rocrate/pkg/value"
)

// FolderStrategy writes a crate into a directory.
type FolderStrategy struct {
	Codec value.Codec
	// IncludeUntracked also copies the crate's untracked entries.
	IncludeUntracked bool
}

// NewFolderStrategy returns a folder strategy writing indented metadata.
func NewFolderStrategy() *FolderStrategy {
	return &FolderStrategy{Codec: value.Codec{Indent: "  "}}
}

// Save writes c into destination, creating it when needed. Content already
// in place (a crate saved over itself) is left untouched.
func (s *FolderStrategy) Save(ctx context.Context, c *crate.Crate, destination string) error {
	items, err := plan(c, s.IncludeUntracked)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(destination, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", destination)
	}
	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		target := filepath.Join(destination, filepath.FromSlash(it.name))
		if samePath(it.source, target) {
			continue
		}
		if err := copyTree(it.source, target); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "copy %s", it.name)
		}
	}
	return writeMetadataAtomic(filepath.Join(destination, metadata.FileName), s.Codec, c.Document())
}

// writeMetadataAtomic writes the document next to path and renames it into
// place, so readers never observe a partial file.
func writeMetadataAtomic(path string, codec value.Codec, doc *metadata.Document) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".ro-crate-metadata-*.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create temp file")
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if err := metadata.WriteDocument(w, codec, doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIO, err, "write metadata")
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIO, err, "flush metadata")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIO, err, "sync metadata")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIO, err, "close metadata")
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIO, err, "rename metadata")
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// copyTree copies a file, or a directory recursively, from src to dst.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
