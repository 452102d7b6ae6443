package entity

import (
	"github.com/matzehuels/rocrate/pkg/value"
)

// DataEntity describes content inside the package. Its source, when set, is
// the filesystem path holding that content.
type DataEntity struct {
	Base
	source string
}

// Source returns the filesystem path of the entity's content, or "".
func (e *DataEntity) Source() string { return e.source }

// HasSource reports whether the entity is backed by content.
func (e *DataEntity) HasSource() bool { return e.source != "" }

// SetSource replaces the content path. An empty path detaches the content.
func (e *DataEntity) SetSource(path string) { e.source = path }

// DataEntityBuilder builds a [DataEntity].
type DataEntityBuilder struct {
	b      builder
	source string
}

// NewDataEntityBuilder returns an empty builder.
func NewDataEntityBuilder() *DataEntityBuilder {
	return &DataEntityBuilder{b: newBuilder()}
}

func (db *DataEntityBuilder) SetID(id string) *DataEntityBuilder {
	db.b.setID(id)
	return db
}

func (db *DataEntityBuilder) AddType(t string) *DataEntityBuilder {
	db.b.addType(t)
	return db
}

// SetAll copies identifier, types and properties from a raw node.
func (db *DataEntityBuilder) SetAll(node *value.Object) *DataEntityBuilder {
	db.b.setAll(node)
	return db
}

func (db *DataEntityBuilder) AddProperty(key string, v *value.Value) *DataEntityBuilder {
	db.b.addProperty(key, v)
	return db
}

// SetSource sets the filesystem path of the content.
func (db *DataEntityBuilder) SetSource(path string) *DataEntityBuilder {
	db.source = path
	return db
}

// Build returns the entity. With no types given it is typed File.
func (db *DataEntityBuilder) Build() (*DataEntity, error) {
	base, err := db.b.base(NewLocalID, TypeFile)
	if err != nil {
		return nil, err
	}
	return &DataEntity{Base: base, source: db.source}, nil
}
