package entity

import (
	"github.com/matzehuels/rocrate/pkg/value"
)

// RootID is the conventional identifier of the root dataset.
const RootID = "./"

// RootDataEntity is the dataset describing the package as a whole. Every data
// entity of a crate is listed in its hasPart.
type RootDataEntity struct {
	DataSetEntity
}

// RootDataEntityBuilder builds a [RootDataEntity].
type RootDataEntityBuilder struct {
	DataSetBuilder
}

// NewRootDataEntityBuilder returns a builder whose identifier defaults to "./".
func NewRootDataEntityBuilder() *RootDataEntityBuilder {
	return &RootDataEntityBuilder{DataSetBuilder: DataSetBuilder{b: newBuilder()}}
}

func (rb *RootDataEntityBuilder) SetID(id string) *RootDataEntityBuilder {
	rb.b.setID(id)
	return rb
}

func (rb *RootDataEntityBuilder) AddType(t string) *RootDataEntityBuilder {
	rb.b.addType(t)
	return rb
}

func (rb *RootDataEntityBuilder) SetAll(node *value.Object) *RootDataEntityBuilder {
	rb.DataSetBuilder.SetAll(node)
	return rb
}

func (rb *RootDataEntityBuilder) AddProperty(key string, v *value.Value) *RootDataEntityBuilder {
	rb.DataSetBuilder.AddProperty(key, v)
	return rb
}

func (rb *RootDataEntityBuilder) SetHasPart(ids []string) *RootDataEntityBuilder {
	rb.DataSetBuilder.SetHasPart(ids)
	return rb
}

func (rb *RootDataEntityBuilder) AddToHasPart(id string) *RootDataEntityBuilder {
	rb.DataSetBuilder.AddToHasPart(id)
	return rb
}

// Build returns the root dataset.
func (rb *RootDataEntityBuilder) Build() (*RootDataEntity, error) {
	ds, err := buildDataSet(&rb.b, rb.source, rb.hasPart.ids, func() string { return RootID })
	if err != nil {
		return nil, err
	}
	return &RootDataEntity{DataSetEntity: *ds}, nil
}

// SetName sets the schema.org name of the package.
func (r *RootDataEntity) SetName(name string) {
	r.props.SetString("name", name)
}

// SetDescription sets the schema.org description of the package.
func (r *RootDataEntity) SetDescription(desc string) {
	r.props.SetString("description", desc)
}

// SetDatePublished sets datePublished, typically an ISO 8601 date.
func (r *RootDataEntity) SetDatePublished(date string) {
	r.props.SetString("datePublished", date)
}

// SetLicense points license at the entity with the given identifier.
func (r *RootDataEntity) SetLicense(id string) {
	r.props.Set("license", value.Ref(id))
}
