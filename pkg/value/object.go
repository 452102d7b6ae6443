package value

import (
	"iter"
	"slices"
)

// Object is an insertion-ordered mapping from member name to value.
// The zero value is not usable; use [NewObject].
type Object struct {
	keys    []string
	members map[string]*Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{members: make(map[string]*Value)}
}

// Len returns the number of members. A nil object has none.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (*Value, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.members[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// GetString returns the string stored under key, if present and a string.
func (o *Object) GetString(key string) (string, bool) {
	v, ok := o.Get(key)
	if !ok {
		return "", false
	}
	return v.AsString()
}

// Set stores val under key. New keys are appended; existing keys keep their
// position. A nil val is stored as JSON null.
func (o *Object) Set(key string, val *Value) *Object {
	if val == nil {
		val = Null()
	}
	if _, exists := o.members[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.members[key] = val
	return o
}

// SetString is shorthand for Set(key, String(s)).
func (o *Object) SetString(key, s string) *Object {
	return o.Set(key, String(s))
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	if _, ok := o.members[key]; !ok {
		return false
	}
	delete(o.members, key)
	o.keys = slices.DeleteFunc(o.keys, func(k string) bool { return k == key })
	return true
}

// Keys returns a copy of the member names in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return slices.Clone(o.keys)
}

// All iterates members in insertion order.
func (o *Object) All() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		if o == nil {
			return
		}
		for _, k := range o.keys {
			if !yield(k, o.members[k]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of o.
func (o *Object) Clone() *Object {
	cp := NewObject()
	for k, v := range o.All() {
		cp.Set(k, v.Clone())
	}
	return cp
}

// Equal reports whether o and other hold the same members, ignoring order.
func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	for k, v := range o.All() {
		ov, ok := other.Get(k)
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes o as compact JSON in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	return Codec{}.Marshal(FromObject(o))
}

// UnmarshalJSON decodes a JSON object into o.
func (o *Object) UnmarshalJSON(data []byte) error {
	v, err := Codec{}.Unmarshal(data)
	if err != nil {
		return err
	}
	obj, ok := v.AsObject()
	if !ok {
		return &KindError{Want: KindObject, Got: v.Kind()}
	}
	*o = *obj
	return nil
}
