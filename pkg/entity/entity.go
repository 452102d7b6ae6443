package entity

import (
	"errors"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/rocrate/pkg/value"
)

// JSON-LD member names with structural meaning.
const (
	KeyID      = "@id"
	KeyType    = "@type"
	KeyHasPart = "hasPart"
)

// Canonical types seeded by the builders.
const (
	TypeDataset      = "Dataset"
	TypeFile         = "File"
	TypeThing        = "Thing"
	TypeCreativeWork = "CreativeWork"
)

var (
	// ErrEmptyID is returned when an entity would be built with an empty
	// identifier.
	ErrEmptyID = errors.New("entity ID must not be empty")

	// ErrReservedProperty is returned by SetProperty for @id and @type,
	// which are structural and not part of the property bag.
	ErrReservedProperty = errors.New("reserved property name")
)

// Entity is the behavior shared by every node variant.
type Entity interface {
	ID() string
	Types() []string
	HasType(t string) bool
	Properties() *value.Object
	Property(key string) (*value.Value, bool)
	SetProperty(key string, v *value.Value) error
	// Node renders the entity as a JSON-LD node: @id, @type, then the bag.
	Node() *value.Object
	RemoveReference(id string) bool
}

// Data is implemented by entities that describe package content.
type Data interface {
	Entity
	Source() string
	HasSource() bool
}

// Base holds the identifier, type set and property bag of an entity.
type Base struct {
	id    string
	types []string
	props *value.Object
}

// ID returns the entity identifier.
func (b *Base) ID() string { return b.id }

// Types returns a copy of the type set in insertion order.
func (b *Base) Types() []string { return slices.Clone(b.types) }

// HasType reports whether t is in the type set.
func (b *Base) HasType(t string) bool { return slices.Contains(b.types, t) }

// AddType adds t to the type set. Adding an existing type is a no-op.
func (b *Base) AddType(t string) {
	if t != "" && !b.HasType(t) {
		b.types = append(b.types, t)
	}
}

// Properties returns the property bag. The object is shared with the
// entity; changes made through it are visible on the entity.
func (b *Base) Properties() *value.Object { return b.props }

// Property returns the value stored under key.
func (b *Base) Property(key string) (*value.Value, bool) { return b.props.Get(key) }

// SetProperty stores v under key. Setting @id or @type fails with
// ErrReservedProperty.
func (b *Base) SetProperty(key string, v *value.Value) error {
	if key == KeyID || key == KeyType {
		return ErrReservedProperty
	}
	b.props.Set(key, v)
	return nil
}

// RemoveProperty deletes key from the bag and reports whether it existed.
func (b *Base) RemoveProperty(key string) bool { return b.props.Delete(key) }

// Node renders the entity as a JSON-LD node. The property bag is deep-copied.
func (b *Base) Node() *value.Object {
	node := value.NewObject()
	node.SetString(KeyID, b.id)
	if len(b.types) == 1 {
		node.SetString(KeyType, b.types[0])
	} else {
		node.Set(KeyType, value.Strings(b.types...))
	}
	for k, v := range b.props.All() {
		node.Set(k, v.Clone())
	}
	return node
}

// NewLocalID returns a fresh crate-local identifier of the form "#<uuid>".
func NewLocalID() string {
	return "#" + uuid.NewString()
}

// RemoveReference deletes every {"@id": id} reference from the property bag,
// whether held directly or inside an array. Properties left with no value
// are removed. It reports whether anything changed.
func (b *Base) RemoveReference(id string) bool {
	changed := false
	for _, key := range b.props.Keys() {
		v, _ := b.props.Get(key)
		if ref, ok := value.RefID(v); ok && ref == id {
			b.props.Delete(key)
			changed = true
			continue
		}
		arr, ok := v.AsArray()
		if !ok {
			continue
		}
		kept := make([]*value.Value, 0, len(arr))
		for _, e := range arr {
			if ref, ok := value.RefID(e); ok && ref == id {
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) == len(arr) {
			continue
		}
		changed = true
		if len(kept) == 0 {
			b.props.Delete(key)
		} else {
			b.props.Set(key, value.Array(kept...))
		}
	}
	return changed
}
