package metadata

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/rocrate/pkg/errors"
	"github.com/matzehuels/rocrate/pkg/value"
)

// Reserved filesystem entries of a package.
const (
	FileName    = "ro-crate-metadata.json"
	PreviewFile = "ro-crate-preview.html"
	PreviewDir  = "ro-crate-preview_files"
)

// Format identifiers.
const (
	// SpecBaseURL prefixes every versioned conformsTo identifier. A node
	// conforming to any version is recognized as the descriptor.
	SpecBaseURL = "https://w3id.org/ro/crate/"

	SpecVersion   = "1.1"
	ConformsToURL = SpecBaseURL + SpecVersion
	ContextURL    = SpecBaseURL + SpecVersion + "/context"
)

// Document member names.
const (
	KeyContext = "@context"
	KeyGraph   = "@graph"
)

// Reserved reports whether name is one of the conventional entries that are
// never tracked as content.
func Reserved(name string) bool {
	switch name {
	case FileName, PreviewFile, PreviewDir:
		return true
	}
	return false
}

// Document is a decoded metadata document.
type Document struct {
	// Context is the opaque @context value. It is nil when the document
	// has none.
	Context *value.Value
	// Graph holds the @graph nodes in document order.
	Graph []*value.Object
}

// Decode splits a parsed document into its context and node array.
//
// Decode returns a STRUCTURAL error if doc is not an object, if @graph is
// missing or not an array, or if any @graph element is not an object.
func Decode(doc *value.Value) (*Document, error) {
	obj, ok := doc.AsObject()
	if !ok {
		return nil, errors.New(errors.ErrCodeStructural, "metadata document must be an object, got %s", doc.Kind())
	}
	graph, ok := obj.Get(KeyGraph)
	if !ok {
		return nil, errors.New(errors.ErrCodeStructural, "metadata document has no %s", KeyGraph)
	}
	elems, ok := graph.AsArray()
	if !ok {
		return nil, errors.New(errors.ErrCodeStructural, "%s must be an array, got %s", KeyGraph, graph.Kind())
	}

	d := &Document{Graph: make([]*value.Object, 0, len(elems))}
	if ctx, ok := obj.Get(KeyContext); ok {
		d.Context = ctx.Clone()
	}
	for i, e := range elems {
		node, ok := e.AsObject()
		if !ok {
			return nil, errors.New(errors.ErrCodeStructural, "%s[%d] must be an object, got %s", KeyGraph, i, e.Kind())
		}
		d.Graph = append(d.Graph, node)
	}
	return d, nil
}

// Value assembles the document as {"@context": ..., "@graph": [...]}.
// A nil context is omitted, so a document read without @context is
// written back without one.
func (d *Document) Value() *value.Value {
	nodes := make([]*value.Value, len(d.Graph))
	for i, n := range d.Graph {
		nodes[i] = value.FromObject(n)
	}
	obj := value.NewObject()
	if d.Context != nil {
		obj.Set(KeyContext, d.Context)
	}
	return value.FromObject(obj.Set(KeyGraph, value.Array(nodes...)))
}

// ReadDocument decodes a metadata document from r. ReadDocument does not
// close r.
func ReadDocument(r io.Reader, codec value.Codec) (*Document, error) {
	v, err := codec.Decode(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStructural, err, "parse metadata")
	}
	return Decode(v)
}

// ImportDocument reads the metadata document at path.
func ImportDocument(path string, codec value.Codec) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	return ReadDocument(f, codec)
}

// WriteDocument encodes d to w.
func WriteDocument(w io.Writer, codec value.Codec, d *Document) error {
	if err := codec.Encode(w, d.Value()); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

// ExportDocument writes d to path, replacing any existing file.
func ExportDocument(path string, codec value.Codec, d *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	if err := WriteDocument(f, codec, d); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	return nil
}
