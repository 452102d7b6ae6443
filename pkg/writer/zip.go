package writer

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"

	"github.com/matzehuels/rocrate/pkg/crate"
	"github.com/matzehuels/rocrate/pkg/errors"
	"github.com/matzehuels/rocrate/pkg/metadata"
	"github.com/matzehuels/rocrate/pkg/value"
)

// ZipStrategy writes a crate as a zip archive.
type ZipStrategy struct {
	Codec value.Codec
	// Level is the deflate level, from flate.HuffmanOnly (-2) to
	// flate.BestCompression (9).
	Level int
	// IncludeUntracked also archives the crate's untracked entries.
	IncludeUntracked bool
}

// NewZipStrategy returns a zip strategy with indented metadata and the
// default compression level.
func NewZipStrategy() *ZipStrategy {
	return &ZipStrategy{Codec: value.Codec{Indent: "  "}, Level: flate.DefaultCompression}
}

// Save writes the archive to destination. The archive is assembled in a
// temporary file next to destination and renamed into place on success.
func (s *ZipStrategy) Save(ctx context.Context, c *crate.Crate, destination string) error {
	if s.Level < flate.HuffmanOnly || s.Level > flate.BestCompression {
		return errors.New(errors.ErrCodeInvalidInput, "compression level %d out of range", s.Level)
	}
	items, err := plan(c, s.IncludeUntracked)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", filepath.Dir(destination))
	}
	tmp, err := os.CreateTemp(filepath.Dir(destination), ".rocrate-*.zip.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create temp archive")
	}
	tmpName := tmp.Name()

	if err := s.writeArchive(ctx, tmp, c, items); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIO, err, "close archive")
	}
	if err := os.Rename(tmpName, destination); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIO, err, "rename archive")
	}
	return nil
}

func (s *ZipStrategy) writeArchive(ctx context.Context, out io.Writer, c *crate.Crate, items []item) error {
	zw := zip.NewWriter(out)
	level := s.Level
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, level)
	})

	meta, err := zw.Create(metadata.FileName)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "add %s", metadata.FileName)
	}
	if err := metadata.WriteDocument(meta, s.Codec, c.Document()); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write metadata")
	}

	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := addTree(zw, it.source, it.name); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "archive %s", it.name)
		}
	}
	if err := zw.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "finish archive")
	}
	return nil
}

// addTree adds a file, or a directory recursively, under name.
func addTree(zw *zip.Writer, src, name string) error {
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		entry := path.Join(name, filepath.ToSlash(rel))
		if d.IsDir() {
			_, err := zw.Create(entry + "/")
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		hdr.Name = entry
		hdr.Method = zip.Deflate
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return err
		}
		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})
}
