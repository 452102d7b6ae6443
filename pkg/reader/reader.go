package reader

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/rocrate/pkg/classify"
	"github.com/matzehuels/rocrate/pkg/crate"
	"github.com/matzehuels/rocrate/pkg/entity"
	"github.com/matzehuels/rocrate/pkg/errors"
	"github.com/matzehuels/rocrate/pkg/metadata"
	"github.com/matzehuels/rocrate/pkg/observability"
	"github.com/matzehuels/rocrate/pkg/validation"
	"github.com/matzehuels/rocrate/pkg/value"
)

// Reader assembles crates from a metadata source and a content source.
type Reader struct {
	meta      MetadataSource
	content   ContentSource
	validator validation.Validator
	logger    *log.Logger
	ignore    []string
	prefix    string
}

// Option configures a Reader.
type Option func(*Reader)

// WithValidator replaces the default validator. Pass validation.Nop{} to
// skip validation.
func WithValidator(v validation.Validator) Option {
	return func(r *Reader) {
		if v != nil {
			r.validator = v
		}
	}
}

// WithLogger sets the logger. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(r *Reader) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithIgnore adds doublestar globs matched against top-level entry names;
// matching entries are never reported as untracked.
func WithIgnore(globs ...string) Option {
	return func(r *Reader) { r.ignore = append(r.ignore, globs...) }
}

// WithDescriptorPrefix overrides the conformsTo prefix that identifies the
// descriptor.
func WithDescriptorPrefix(prefix string) Option {
	return func(r *Reader) { r.prefix = prefix }
}

// New returns a reader using s for both metadata and content.
func New(s Strategy, opts ...Option) *Reader {
	return NewWithSources(s, s, opts...)
}

// NewWithSources returns a reader with separate metadata and content
// sources.
func NewWithSources(meta MetadataSource, content ContentSource, opts ...Option) *Reader {
	r := &Reader{
		meta:      meta,
		content:   content,
		validator: validation.Default(),
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read assembles the crate stored at location.
//
// Read fails with a STRUCTURAL error when the document cannot be shaped
// into a crate, an IO error when a source fails, and the validator's error
// (VALIDATION) when the assembled crate is rejected. No crate is returned
// on failure.
func (r *Reader) Read(ctx context.Context, location string) (c *crate.Crate, err error) {
	start := time.Now()
	observability.Crate().OnReadStart(ctx, location)
	defer func() {
		n := 0
		if c != nil {
			n = c.Len()
		}
		observability.Crate().OnReadComplete(ctx, location, n, time.Since(start), err)
	}()

	raw, err := r.meta.ReadMetadata(ctx, location)
	if err != nil {
		return nil, err
	}
	doc, err := metadata.Decode(raw)
	if err != nil {
		return nil, err
	}
	res, err := classify.Classify(doc.Graph, classify.Options{Prefix: r.prefix})
	if err != nil {
		return nil, err
	}

	root, err := entity.NewRootDataEntityBuilder().SetAll(res.Root).Build()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStructural, err, "build root")
	}
	desc, err := entity.NewDescriptorBuilder().SetAll(res.Descriptor).Build()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStructural, err, "build descriptor")
	}
	c, err = crate.Assemble(doc.Context, desc, root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStructural, err, "assemble crate")
	}

	contentRoot, err := r.content.ReadContent(ctx, location)
	if err != nil {
		return nil, err
	}

	used := make(map[string]bool)
	for _, node := range res.Data {
		e, err := buildData(node, contentRoot, used)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStructural, err, "build data entity")
		}
		if err := c.AddDataEntity(e, false); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStructural, err, "register data entity")
		}
		r.logger.Debug("data entity", "id", e.ID(), "types", e.Types(), "source", e.Source())
	}
	for _, node := range res.Contextual {
		e, err := entity.NewContextualEntityBuilder().SetAll(node).Build()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStructural, err, "build contextual entity")
		}
		if err := c.AddContextualEntity(e); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStructural, err, "register contextual entity")
		}
		r.logger.Debug("contextual entity", "id", e.ID(), "types", e.Types())
	}

	untracked, err := r.untracked(contentRoot, used)
	if err != nil {
		return nil, err
	}
	c.SetUntracked(untracked)

	if err := r.validator.Validate(c); err != nil {
		return nil, err
	}

	r.logger.Info("read crate",
		"location", location,
		"data", len(res.Data),
		"contextual", len(res.Contextual),
		"untracked", len(untracked),
		"duration", time.Since(start).Round(time.Millisecond))
	return c, nil
}

// buildData builds a data node, as a dataset when it is typed Dataset, and
// resolves its source under contentRoot.
func buildData(node *value.Object, contentRoot string, used map[string]bool) (entity.Data, error) {
	id, _ := node.GetString(entity.KeyID)
	source := resolve(contentRoot, id)
	if name, ok := topLevelName(id); ok && source != "" {
		used[name] = true
	}

	var types []string
	if t, ok := node.Get(entity.KeyType); ok {
		types = value.StringsOf(t)
	}
	for _, t := range types {
		if t == entity.TypeDataset {
			return entity.NewDataSetBuilder().SetAll(node).SetSource(source).Build()
		}
	}
	return entity.NewDataEntityBuilder().SetAll(node).SetSource(source).Build()
}

// resolve returns the path of id under root, or "" when id is not a safe
// relative path or nothing exists there. Percent-encoded identifiers are
// tried decoded as well.
func resolve(root, id string) string {
	candidates := []string{id}
	if dec, err := url.PathUnescape(id); err == nil && dec != id {
		candidates = append(candidates, dec)
	}
	for _, cand := range candidates {
		if errors.ValidatePath(cand) != nil {
			continue
		}
		rel := strings.TrimPrefix(strings.TrimSuffix(cand, "/"), "./")
		if rel == "" || rel == "." {
			continue
		}
		p := filepath.Join(root, filepath.FromSlash(rel))
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// topLevelName returns the entry name when id names a top-level entry of
// the content root, with or without a trailing slash. Deeper ids describe
// only part of their directory and do not account for it.
func topLevelName(id string) (string, bool) {
	if dec, err := url.PathUnescape(id); err == nil {
		id = dec
	}
	id = strings.TrimSuffix(strings.TrimPrefix(id, "./"), "/")
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

func (r *Reader) untracked(contentRoot string, used map[string]bool) ([]crate.UntrackedFile, error) {
	entries, err := os.ReadDir(contentRoot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "list %s", contentRoot)
	}
	var out []crate.UntrackedFile
	for _, e := range entries {
		name := e.Name()
		if used[name] || metadata.Reserved(name) || r.ignored(name) {
			continue
		}
		out = append(out, crate.UntrackedFile{
			Name: name,
			Path: filepath.Join(contentRoot, name),
			Dir:  e.IsDir(),
		})
	}
	return out, nil
}

// Scan lists the top-level entries of dir as untracked files, applying
// the reserved names and any WithIgnore globs from opts. It reads no
// metadata and is used to describe a directory before it becomes a crate.
func Scan(dir string, opts ...Option) ([]crate.UntrackedFile, error) {
	r := NewWithSources(nil, nil, opts...)
	return r.untracked(dir, nil)
}

func (r *Reader) ignored(name string) bool {
	for _, pattern := range r.ignore {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// Open reads the crate at location, using a zip strategy for files ending
// in .zip and a folder strategy otherwise. The returned closer releases
// the strategy's resources; sources of data entities stay valid until it
// is called. On error nothing needs closing.
func Open(ctx context.Context, location string, opts ...Option) (*crate.Crate, io.Closer, error) {
	if strings.EqualFold(filepath.Ext(location), ".zip") {
		zs := NewZipStrategy()
		c, err := New(zs, opts...).Read(ctx, location)
		if err != nil {
			zs.Close()
			return nil, nil, err
		}
		return c, zs, nil
	}
	c, err := New(NewFolderStrategy(), opts...).Read(ctx, location)
	if err != nil {
		return nil, nil, err
	}
	return c, nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
