package entity

import (
	"github.com/matzehuels/rocrate/pkg/value"
)

// ContextualEntity is a metadata-only node: a person, an organization, a
// license and so on. It has no content and no hasPart.
type ContextualEntity struct {
	Base
}

// ContextualEntityBuilder builds a [ContextualEntity].
type ContextualEntityBuilder struct {
	b builder
}

// NewContextualEntityBuilder returns an empty builder.
func NewContextualEntityBuilder() *ContextualEntityBuilder {
	return &ContextualEntityBuilder{b: newBuilder()}
}

func (cb *ContextualEntityBuilder) SetID(id string) *ContextualEntityBuilder {
	cb.b.setID(id)
	return cb
}

func (cb *ContextualEntityBuilder) AddType(t string) *ContextualEntityBuilder {
	cb.b.addType(t)
	return cb
}

func (cb *ContextualEntityBuilder) SetAll(node *value.Object) *ContextualEntityBuilder {
	cb.b.setAll(node)
	return cb
}

func (cb *ContextualEntityBuilder) AddProperty(key string, v *value.Value) *ContextualEntityBuilder {
	cb.b.addProperty(key, v)
	return cb
}

// Build returns the entity. With no types given it is typed Thing.
func (cb *ContextualEntityBuilder) Build() (*ContextualEntity, error) {
	base, err := cb.b.base(NewLocalID, TypeThing)
	if err != nil {
		return nil, err
	}
	return &ContextualEntity{Base: base}, nil
}
