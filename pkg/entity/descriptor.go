package entity

import (
	"strings"

	"github.com/matzehuels/rocrate/pkg/value"
)

// DescriptorID is the conventional identifier of the metadata descriptor.
const DescriptorID = "ro-crate-metadata.json"

// Descriptor property names.
const (
	KeyConformsTo = "conformsTo"
	KeyAbout      = "about"
)

// DescriptorEntity is the crate's self-describing node. It states which
// version of the format the document conforms to and points at the root
// dataset through about.
type DescriptorEntity struct {
	Base
}

// About returns the identifier referenced by about, or "" when unset.
func (d *DescriptorEntity) About() string {
	v, ok := d.props.Get(KeyAbout)
	if !ok {
		return ""
	}
	id, _ := value.RefID(v)
	return id
}

// SetAbout points about at the given identifier.
func (d *DescriptorEntity) SetAbout(id string) {
	d.props.Set(KeyAbout, value.Ref(id))
}

// ConformsTo returns the identifiers listed in conformsTo, in either shape.
func (d *DescriptorEntity) ConformsTo() []string {
	v, ok := d.props.Get(KeyConformsTo)
	if !ok {
		return nil
	}
	return value.RefIDs(v)
}

// AddConformsTo adds a profile or specification URL to conformsTo. A single
// existing reference is kept as a single object until a second one is added.
func (d *DescriptorEntity) AddConformsTo(url string) {
	v, ok := d.props.Get(KeyConformsTo)
	switch {
	case !ok:
		d.props.Set(KeyConformsTo, value.Ref(url))
	case v.IsArray():
		v.Append(value.Ref(url))
	default:
		d.props.Set(KeyConformsTo, value.Array(v, value.Ref(url)))
	}
}

// ConformsToPrefix reports whether node carries a conformsTo reference whose
// identifier starts with prefix. Object and array forms are both accepted.
func ConformsToPrefix(node *value.Object, prefix string) bool {
	v, ok := node.Get(KeyConformsTo)
	if !ok {
		return false
	}
	for _, id := range value.RefIDs(v) {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	return false
}

// DescriptorBuilder builds a [DescriptorEntity].
type DescriptorBuilder struct {
	b builder
}

// NewDescriptorBuilder returns a builder whose identifier defaults to
// "ro-crate-metadata.json".
func NewDescriptorBuilder() *DescriptorBuilder {
	return &DescriptorBuilder{b: newBuilder()}
}

func (db *DescriptorBuilder) SetID(id string) *DescriptorBuilder {
	db.b.setID(id)
	return db
}

func (db *DescriptorBuilder) SetAll(node *value.Object) *DescriptorBuilder {
	db.b.setAll(node)
	return db
}

func (db *DescriptorBuilder) AddProperty(key string, v *value.Value) *DescriptorBuilder {
	db.b.addProperty(key, v)
	return db
}

// SetAbout points about at the root identifier.
func (db *DescriptorBuilder) SetAbout(id string) *DescriptorBuilder {
	db.b.addProperty(KeyAbout, value.Ref(id))
	return db
}

// Build returns the descriptor. An empty type set becomes CreativeWork.
func (db *DescriptorBuilder) Build() (*DescriptorEntity, error) {
	base, err := db.b.base(func() string { return DescriptorID }, TypeCreativeWork)
	if err != nil {
		return nil, err
	}
	return &DescriptorEntity{Base: base}, nil
}
