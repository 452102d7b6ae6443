package entity

import (
	"github.com/matzehuels/rocrate/pkg/value"
)

// builder collects the fields shared by all variant builders.
type builder struct {
	id    string
	idSet bool
	types []string
	props *value.Object
}

func newBuilder() builder {
	return builder{props: value.NewObject()}
}

func (b *builder) setID(id string) {
	b.id = id
	b.idSet = true
}

func (b *builder) addType(t string) {
	if t == "" {
		return
	}
	for _, existing := range b.types {
		if existing == t {
			return
		}
	}
	b.types = append(b.types, t)
}

// setAll copies a raw node: @id and @type go to the structural fields,
// everything else into the property bag. The node itself is not retained.
func (b *builder) setAll(node *value.Object) {
	for k, v := range node.All() {
		switch k {
		case KeyID:
			id, _ := v.AsString()
			b.setID(id)
		case KeyType:
			for _, t := range value.StringsOf(v) {
				b.addType(t)
			}
		default:
			b.props.Set(k, v.Clone())
		}
	}
}

func (b *builder) addProperty(key string, v *value.Value) {
	if key == KeyID || key == KeyType {
		return
	}
	b.props.Set(key, v)
}

// base finalizes the shared fields. fallbackID is used when no identifier
// was set; fallbackType when the type set is still empty. An identifier
// explicitly set to "" is rejected.
func (b *builder) base(fallbackID func() string, fallbackType string) (Base, error) {
	id := b.id
	if !b.idSet {
		id = fallbackID()
	}
	if id == "" {
		return Base{}, ErrEmptyID
	}
	types := append([]string(nil), b.types...)
	if len(types) == 0 {
		types = []string{fallbackType}
	}
	return Base{id: id, types: types, props: b.props.Clone()}, nil
}
