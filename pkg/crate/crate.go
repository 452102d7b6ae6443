package crate

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/matzehuels/rocrate/pkg/entity"
	"github.com/matzehuels/rocrate/pkg/metadata"
	"github.com/matzehuels/rocrate/pkg/value"
)

var (
	// ErrDuplicateID is returned when an entity's identifier is already
	// used by the root, the descriptor or another entity.
	ErrDuplicateID = errors.New("duplicate entity ID")

	// ErrNotFound is returned by [Crate.DeleteEntity] for unknown
	// identifiers.
	ErrNotFound = errors.New("entity not found")

	// ErrReservedID is returned when deleting the root or the descriptor.
	ErrReservedID = errors.New("root and descriptor cannot be removed")

	// ErrNilEntity is returned when a nil entity is added.
	ErrNilEntity = errors.New("entity must not be nil")
)

// UntrackedFile is a filesystem entry present in the package but not the
// source of any data entity.
type UntrackedFile struct {
	// Name is the entry name relative to the content root.
	Name string
	// Path is the entry's location on disk.
	Path string
	// Dir reports whether the entry is a directory.
	Dir bool
}

// Crate is the assembled entity graph of a package.
//
// Data and contextual entities are kept in insertion order so a crate
// writes its nodes back in the order they were read or added.
type Crate struct {
	context    *value.Value
	descriptor *entity.DescriptorEntity
	root       *entity.RootDataEntity

	data       map[string]entity.Data
	dataIDs    []string
	contextual map[string]*entity.ContextualEntity
	ctxIDs     []string

	untracked []UntrackedFile
}

// New returns a crate with the default versioned context, a descriptor
// conforming to it and an empty root dataset "./".
func New() *Crate {
	root, _ := entity.NewRootDataEntityBuilder().Build()
	desc, _ := entity.NewDescriptorBuilder().SetAbout(root.ID()).Build()
	desc.AddConformsTo(metadata.ConformsToURL)
	c, _ := Assemble(value.String(metadata.ContextURL), desc, root)
	return c
}

// Assemble returns a crate from its fixed parts. The descriptor's about is
// not checked against the root; validators do that.
func Assemble(context *value.Value, desc *entity.DescriptorEntity, root *entity.RootDataEntity) (*Crate, error) {
	if desc == nil || root == nil {
		return nil, ErrNilEntity
	}
	if desc.ID() == root.ID() {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, root.ID())
	}
	return &Crate{
		context:    context,
		descriptor: desc,
		root:       root,
		data:       make(map[string]entity.Data),
		contextual: make(map[string]*entity.ContextualEntity),
	}, nil
}

// Context returns the opaque @context value.
func (c *Crate) Context() *value.Value { return c.context }

// SetContext replaces the @context value.
func (c *Crate) SetContext(v *value.Value) { c.context = v }

// Descriptor returns the metadata descriptor.
func (c *Crate) Descriptor() *entity.DescriptorEntity { return c.descriptor }

// Root returns the root dataset.
func (c *Crate) Root() *entity.RootDataEntity { return c.root }

// Has reports whether id is used by any entity of the crate.
func (c *Crate) Has(id string) bool {
	if id == c.root.ID() || id == c.descriptor.ID() {
		return true
	}
	if _, ok := c.data[id]; ok {
		return true
	}
	_, ok := c.contextual[id]
	return ok
}

// AddDataEntity registers a data entity. When toRoot is set, the entity is
// also listed in the root's hasPart.
func (c *Crate) AddDataEntity(e entity.Data, toRoot bool) error {
	if e == nil {
		return ErrNilEntity
	}
	if c.Has(e.ID()) {
		return fmt.Errorf("%w: %s", ErrDuplicateID, e.ID())
	}
	c.data[e.ID()] = e
	c.dataIDs = append(c.dataIDs, e.ID())
	if toRoot {
		c.root.AddToHasPart(e.ID())
	}
	return nil
}

// AddContextualEntity registers a contextual entity.
func (c *Crate) AddContextualEntity(e *entity.ContextualEntity) error {
	if e == nil {
		return ErrNilEntity
	}
	if c.Has(e.ID()) {
		return fmt.Errorf("%w: %s", ErrDuplicateID, e.ID())
	}
	c.contextual[e.ID()] = e
	c.ctxIDs = append(c.ctxIDs, e.ID())
	return nil
}

// DeleteEntity removes a data or contextual entity. Its identifier is also
// dropped from every dataset's hasPart and from {"@id": id} references held
// by the remaining entities.
func (c *Crate) DeleteEntity(id string) error {
	if id == c.root.ID() || id == c.descriptor.ID() {
		return fmt.Errorf("%w: %s", ErrReservedID, id)
	}
	switch {
	case c.data[id] != nil:
		delete(c.data, id)
		c.dataIDs = slices.DeleteFunc(c.dataIDs, func(s string) bool { return s == id })
	case c.contextual[id] != nil:
		delete(c.contextual, id)
		c.ctxIDs = slices.DeleteFunc(c.ctxIDs, func(s string) bool { return s == id })
	default:
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	c.root.RemoveFromHasPart(id)
	c.root.RemoveReference(id)
	for _, e := range c.DataEntities() {
		if ds, ok := e.(*entity.DataSetEntity); ok {
			ds.RemoveFromHasPart(id)
		}
		e.RemoveReference(id)
	}
	for _, e := range c.ContextualEntities() {
		e.RemoveReference(id)
	}
	return nil
}

// Entity returns the entity with the given identifier, including the root
// and the descriptor.
func (c *Crate) Entity(id string) (entity.Entity, bool) {
	switch id {
	case c.root.ID():
		return c.root, true
	case c.descriptor.ID():
		return c.descriptor, true
	}
	if e, ok := c.data[id]; ok {
		return e, true
	}
	if e, ok := c.contextual[id]; ok {
		return e, true
	}
	return nil, false
}

// DataEntity returns the data entity with the given identifier.
func (c *Crate) DataEntity(id string) (entity.Data, bool) {
	e, ok := c.data[id]
	return e, ok
}

// ContextualEntity returns the contextual entity with the given identifier.
func (c *Crate) ContextualEntity(id string) (*entity.ContextualEntity, bool) {
	e, ok := c.contextual[id]
	return e, ok
}

// DataEntities returns the data entities in insertion order.
func (c *Crate) DataEntities() []entity.Data {
	out := make([]entity.Data, len(c.dataIDs))
	for i, id := range c.dataIDs {
		out[i] = c.data[id]
	}
	return out
}

// ContextualEntities returns the contextual entities in insertion order.
func (c *Crate) ContextualEntities() []*entity.ContextualEntity {
	out := make([]*entity.ContextualEntity, len(c.ctxIDs))
	for i, id := range c.ctxIDs {
		out[i] = c.contextual[id]
	}
	return out
}

// IDs returns every identifier in the crate: descriptor, root, data
// entities, then contextual entities.
func (c *Crate) IDs() []string {
	ids := make([]string, 0, 2+len(c.dataIDs)+len(c.ctxIDs))
	ids = append(ids, c.descriptor.ID(), c.root.ID())
	ids = append(ids, c.dataIDs...)
	return append(ids, c.ctxIDs...)
}

// Len returns the number of entities, root and descriptor included.
func (c *Crate) Len() int { return 2 + len(c.dataIDs) + len(c.ctxIDs) }

// Untracked returns the untracked entries, sorted by name.
func (c *Crate) Untracked() []UntrackedFile { return slices.Clone(c.untracked) }

// SetUntracked replaces the untracked entries.
func (c *Crate) SetUntracked(files []UntrackedFile) {
	c.untracked = slices.Clone(files)
	slices.SortFunc(c.untracked, func(a, b UntrackedFile) int {
		return strings.Compare(a.Name, b.Name)
	})
}

// TrackUntracked describes every untracked entry as a data entity listed
// in the root's hasPart: directories become datasets with an id ending in
// "/", files plain data entities. Names are percent-encoded into ids. The
// added ids are returned and the untracked list is cleared. Entries whose
// id is already taken are left untracked.
func (c *Crate) TrackUntracked() ([]string, error) {
	var added []string
	var remaining []UntrackedFile
	for _, u := range c.untracked {
		id := url.PathEscape(u.Name)
		var (
			e   entity.Data
			err error
		)
		if u.Dir {
			id += "/"
			e, err = entity.NewDataSetBuilder().SetID(id).SetSource(u.Path).Build()
		} else {
			e, err = entity.NewDataEntityBuilder().SetID(id).SetSource(u.Path).Build()
		}
		if err != nil {
			return added, err
		}
		if c.Has(id) {
			remaining = append(remaining, u)
			continue
		}
		if err := c.AddDataEntity(e, true); err != nil {
			return added, err
		}
		added = append(added, id)
	}
	c.untracked = remaining
	return added, nil
}

// Document renders the crate as a metadata document: descriptor, root,
// data entities and contextual entities, in that order.
func (c *Crate) Document() *metadata.Document {
	graph := make([]*value.Object, 0, c.Len())
	graph = append(graph, c.descriptor.Node(), c.root.Node())
	for _, e := range c.DataEntities() {
		graph = append(graph, e.Node())
	}
	for _, e := range c.ContextualEntities() {
		graph = append(graph, e.Node())
	}
	var ctx *value.Value
	if c.context != nil {
		ctx = c.context.Clone()
	}
	return &metadata.Document{Context: ctx, Graph: graph}
}
