package value

import (
	"encoding/json"
	"strconv"
)

// Kind identifies the shape held by a [Value].
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = map[Kind]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindNumber: "number",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
}

// String returns the JSON name of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a node of the generic tree. The zero value is JSON null.
type Value struct {
	kind Kind
	b    bool
	n    json.Number
	s    string
	arr  []*Value
	obj  *Object
}

// Null returns a JSON null.
func Null() *Value { return &Value{} }

// Bool wraps a boolean.
func Bool(b bool) *Value { return &Value{kind: KindBool, b: b} }

// Number wraps a JSON number literal.
func Number(n json.Number) *Value { return &Value{kind: KindNumber, n: n} }

// Int wraps an integer.
func Int(i int64) *Value { return Number(json.Number(strconv.FormatInt(i, 10))) }

// String wraps a string.
func String(s string) *Value { return &Value{kind: KindString, s: s} }

// Array wraps the given elements. Nil elements are stored as JSON null.
func Array(elems ...*Value) *Value {
	arr := make([]*Value, len(elems))
	for i, e := range elems {
		if e == nil {
			e = Null()
		}
		arr[i] = e
	}
	return &Value{kind: KindArray, arr: arr}
}

// FromObject wraps an object. A nil object becomes an empty one.
func FromObject(o *Object) *Value {
	if o == nil {
		o = NewObject()
	}
	return &Value{kind: KindObject, obj: o}
}

// Strings builds an array of string values.
func Strings(ss ...string) *Value {
	arr := make([]*Value, len(ss))
	for i, s := range ss {
		arr[i] = String(s)
	}
	return &Value{kind: KindArray, arr: arr}
}

// Kind reports the shape of v. A nil *Value is null.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

func (v *Value) IsNull() bool   { return v.Kind() == KindNull }
func (v *Value) IsString() bool { return v.Kind() == KindString }
func (v *Value) IsArray() bool  { return v.Kind() == KindArray }
func (v *Value) IsObject() bool { return v.Kind() == KindObject }

// AsBool returns the boolean held by v.
func (v *Value) AsBool() (bool, bool) {
	if v.Kind() != KindBool {
		return false, false
	}
	return v.b, true
}

// AsNumber returns the number literal held by v.
func (v *Value) AsNumber() (json.Number, bool) {
	if v.Kind() != KindNumber {
		return "", false
	}
	return v.n, true
}

// AsString returns the string held by v.
func (v *Value) AsString() (string, bool) {
	if v.Kind() != KindString {
		return "", false
	}
	return v.s, true
}

// AsArray returns the elements held by v. The slice is shared with v.
func (v *Value) AsArray() ([]*Value, bool) {
	if v.Kind() != KindArray {
		return nil, false
	}
	return v.arr, true
}

// AsObject returns the object held by v. The object is shared with v.
func (v *Value) AsObject() (*Object, bool) {
	if v.Kind() != KindObject {
		return nil, false
	}
	return v.obj, true
}

// Append adds elements to an array value. It panics if v is not an array.
func (v *Value) Append(elems ...*Value) {
	if v.Kind() != KindArray {
		panic("value: Append on " + v.Kind().String())
	}
	for _, e := range elems {
		if e == nil {
			e = Null()
		}
		v.arr = append(v.arr, e)
	}
}

// Len returns the number of elements of an array or members of an object,
// and zero for every other kind.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	}
	return 0
}

// Clone returns a deep copy of v.
func (v *Value) Clone() *Value {
	if v == nil {
		return Null()
	}
	switch v.kind {
	case KindArray:
		arr := make([]*Value, len(v.arr))
		for i, e := range v.arr {
			arr[i] = e.Clone()
		}
		return &Value{kind: KindArray, arr: arr}
	case KindObject:
		return &Value{kind: KindObject, obj: v.obj.Clone()}
	}
	cp := *v
	return &cp
}

// Equal reports whether v and o hold the same tree. Object member order is
// not significant; array order is.
func (v *Value) Equal(o *Value) bool {
	if v.Kind() != o.Kind() {
		return false
	}
	switch v.Kind() {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return numbersEqual(v.n, o.n)
	case KindString:
		return v.s == o.s
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.Equal(o.obj)
	}
	return false
}

func numbersEqual(a, b json.Number) bool {
	if a == b {
		return true
	}
	fa, errA := a.Float64()
	fb, errB := b.Float64()
	return errA == nil && errB == nil && fa == fb
}

// MarshalJSON encodes v as compact JSON, preserving object member order.
func (v *Value) MarshalJSON() ([]byte, error) {
	return Codec{}.Marshal(v)
}

// UnmarshalJSON decodes data into v, preserving object member order.
func (v *Value) UnmarshalJSON(data []byte) error {
	decoded, err := Codec{}.Unmarshal(data)
	if err != nil {
		return err
	}
	*v = *decoded
	return nil
}
