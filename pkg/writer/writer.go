package writer

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rocrate/pkg/crate"
	"github.com/matzehuels/rocrate/pkg/errors"
	"github.com/matzehuels/rocrate/pkg/observability"
	"github.com/matzehuels/rocrate/pkg/validation"
	"github.com/matzehuels/rocrate/pkg/value"
)

// PersistenceStrategy saves a crate to a destination.
type PersistenceStrategy interface {
	Save(ctx context.Context, c *crate.Crate, destination string) error
}

// Writer persists crates through a strategy.
type Writer struct {
	strategy  PersistenceStrategy
	validator validation.Validator
	logger    *log.Logger
}

// Option configures a Writer.
type Option func(*Writer)

// WithValidator checks crates before anything is written. By default no
// validation is performed.
func WithValidator(v validation.Validator) Option {
	return func(w *Writer) {
		if v != nil {
			w.validator = v
		}
	}
}

// WithLogger sets the logger. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}

// New returns a writer saving through s.
func New(s PersistenceStrategy, opts ...Option) *Writer {
	w := &Writer{
		strategy:  s,
		validator: validation.Nop{},
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write saves c to destination. Every data entity must be listed in the
// root's hasPart; otherwise Write fails with a STRUCTURAL error before
// anything is written. Failures from the strategy are returned unchanged
// and never retried.
func (w *Writer) Write(ctx context.Context, c *crate.Crate, destination string) (err error) {
	start := time.Now()
	observability.Crate().OnWriteStart(ctx, destination, c.Len())
	files := 0
	defer func() {
		observability.Crate().OnWriteComplete(ctx, destination, files, time.Since(start), err)
	}()

	if err := w.validator.Validate(c); err != nil {
		return err
	}
	for _, e := range c.DataEntities() {
		if !c.Root().HasInHasPart(e.ID()) {
			return errors.New(errors.ErrCodeStructural,
				"data entity %q is not in the hasPart of root %q and would be read back as contextual", e.ID(), c.Root().ID())
		}
		if e.HasSource() {
			files++
		}
	}
	if err := w.strategy.Save(ctx, c, destination); err != nil {
		return err
	}

	w.logger.Info("wrote crate",
		"destination", destination,
		"entities", c.Len(),
		"files", files,
		"duration", time.Since(start).Round(time.Millisecond))
	return nil
}

// Format selects a persistence strategy.
type Format string

const (
	FormatFolder Format = "folder"
	FormatZip    Format = "zip"
)

// Settings configure [ForFormat].
type Settings struct {
	Format           Format
	Compression      int
	IncludeUntracked bool
	Indent           string
}

// ForFormat returns the strategy for s.Format. An empty format is inferred
// from the destination: a .zip suffix selects zip, anything else a folder.
func ForFormat(s Settings, destination string) PersistenceStrategy {
	format := s.Format
	if format == "" {
		format = FormatFolder
		if strings.EqualFold(filepath.Ext(destination), ".zip") {
			format = FormatZip
		}
	}
	codec := value.Codec{Indent: s.Indent}
	if format == FormatZip {
		return &ZipStrategy{Codec: codec, Level: s.Compression, IncludeUntracked: s.IncludeUntracked}
	}
	return &FolderStrategy{Codec: codec, IncludeUntracked: s.IncludeUntracked}
}
