package entity

import (
	"slices"

	"github.com/matzehuels/rocrate/pkg/value"
)

// DataSetEntity is a data entity that contains other entities through its
// hasPart property.
type DataSetEntity struct {
	DataEntity
}

// HasPart returns the identifiers listed in hasPart, in order. Both the
// single-object and the array form are understood.
func (e *DataSetEntity) HasPart() []string {
	v, ok := e.props.Get(KeyHasPart)
	if !ok {
		return nil
	}
	return value.RefIDs(v)
}

// HasInHasPart reports whether id is listed in hasPart.
func (e *DataSetEntity) HasInHasPart(id string) bool {
	v, ok := e.props.Get(KeyHasPart)
	if !ok {
		return false
	}
	if ref, ok := value.RefID(v); ok {
		return ref == id
	}
	arr, ok := v.AsArray()
	if !ok {
		return false
	}
	for _, elem := range arr {
		if ref, ok := value.RefID(elem); ok && ref == id {
			return true
		}
	}
	return false
}

// AddToHasPart appends id to hasPart. A single-object hasPart is first turned
// into an array so the property keeps its normalized shape. Adding an id
// that is already listed is a no-op.
func (e *DataSetEntity) AddToHasPart(id string) {
	if e.HasInHasPart(id) {
		return
	}
	v, ok := e.props.Get(KeyHasPart)
	switch {
	case !ok:
		e.props.Set(KeyHasPart, value.Array(value.Ref(id)))
	case v.IsArray():
		v.Append(value.Ref(id))
	default:
		e.props.Set(KeyHasPart, value.Array(v, value.Ref(id)))
	}
}

// SetProperty stores v under key. hasPart is rewritten into its normalized
// array form; entries that are not references are dropped.
func (e *DataSetEntity) SetProperty(key string, v *value.Value) error {
	if key != KeyHasPart {
		return e.DataEntity.SetProperty(key, v)
	}
	setHasPart(e.props, value.RefIDs(v))
	return nil
}

// Node renders the entity as a JSON-LD node with hasPart in array form,
// even when the property bag was edited directly.
func (e *DataSetEntity) Node() *value.Object {
	node := e.DataEntity.Node()
	if v, ok := node.Get(KeyHasPart); ok && !v.IsArray() {
		node.Set(KeyHasPart, value.Array(v))
	}
	return node
}

// RemoveFromHasPart drops id from hasPart and reports whether it was listed.
// The property is removed once empty.
func (e *DataSetEntity) RemoveFromHasPart(id string) bool {
	if !e.HasInHasPart(id) {
		return false
	}
	parts := slices.DeleteFunc(e.HasPart(), func(p string) bool { return p == id })
	setHasPart(e.props, parts)
	return true
}

// setHasPart materializes ids into props in normalized array form, or
// removes hasPart when ids is empty.
func setHasPart(props *value.Object, ids []string) {
	if len(ids) == 0 {
		props.Delete(KeyHasPart)
		return
	}
	refs := make([]*value.Value, len(ids))
	for i, id := range ids {
		refs[i] = value.Ref(id)
	}
	props.Set(KeyHasPart, value.Array(refs...))
}

// hasPartSet is an insertion-ordered set of identifiers.
type hasPartSet struct {
	ids []string
}

func (s *hasPartSet) add(id string) {
	if id != "" && !slices.Contains(s.ids, id) {
		s.ids = append(s.ids, id)
	}
}

// DataSetBuilder builds a [DataSetEntity].
type DataSetBuilder struct {
	b       builder
	source  string
	hasPart hasPartSet
}

// NewDataSetBuilder returns an empty builder.
func NewDataSetBuilder() *DataSetBuilder {
	return &DataSetBuilder{b: newBuilder()}
}

func (db *DataSetBuilder) SetID(id string) *DataSetBuilder {
	db.b.setID(id)
	return db
}

func (db *DataSetBuilder) AddType(t string) *DataSetBuilder {
	db.b.addType(t)
	return db
}

// SetAll copies identifier, types and properties from a raw node. A hasPart
// member, in either shape, is moved into the builder's part set.
func (db *DataSetBuilder) SetAll(node *value.Object) *DataSetBuilder {
	db.b.setAll(node)
	if v, ok := db.b.props.Get(KeyHasPart); ok {
		for _, id := range value.RefIDs(v) {
			db.hasPart.add(id)
		}
		db.b.props.Delete(KeyHasPart)
	}
	return db
}

func (db *DataSetBuilder) AddProperty(key string, v *value.Value) *DataSetBuilder {
	if key == KeyHasPart {
		for _, id := range value.RefIDs(v) {
			db.hasPart.add(id)
		}
		return db
	}
	db.b.addProperty(key, v)
	return db
}

func (db *DataSetBuilder) SetSource(path string) *DataSetBuilder {
	db.source = path
	return db
}

// SetHasPart replaces the part set.
func (db *DataSetBuilder) SetHasPart(ids []string) *DataSetBuilder {
	db.hasPart = hasPartSet{}
	for _, id := range ids {
		db.hasPart.add(id)
	}
	return db
}

// AddToHasPart adds id to the part set. Adding it twice has no effect.
func (db *DataSetBuilder) AddToHasPart(id string) *DataSetBuilder {
	db.hasPart.add(id)
	return db
}

// Build returns the entity. Its type set always contains Dataset, and a
// non-empty part set is materialized into hasPart.
func (db *DataSetBuilder) Build() (*DataSetEntity, error) {
	return buildDataSet(&db.b, db.source, db.hasPart.ids, NewLocalID)
}

func buildDataSet(b *builder, source string, parts []string, fallbackID func() string) (*DataSetEntity, error) {
	b.addType(TypeDataset)
	base, err := b.base(fallbackID, TypeDataset)
	if err != nil {
		return nil, err
	}
	setHasPart(base.props, parts)
	return &DataSetEntity{DataEntity: DataEntity{Base: base, source: source}}, nil
}
