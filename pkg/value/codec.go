package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// KindError reports a value of an unexpected shape.
type KindError struct {
	Want Kind
	Got  Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Want, e.Got)
}

// ErrTrailingData is returned when a document holds more than one JSON value.
var ErrTrailingData = errors.New("unexpected data after top-level value")

// Codec converts between JSON text and value trees. The zero value produces
// compact output without HTML escaping.
type Codec struct {
	// Indent, when non-empty, pretty-prints output with this per-level indent.
	Indent string
	// EscapeHTML escapes <, > and & inside strings.
	EscapeHTML bool
}

// Decode reads exactly one JSON value from r.
func (c Codec) Decode(r io.Reader) (*Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("decode: %w", ErrTrailingData)
	}
	return v, nil
}

// Unmarshal decodes data holding exactly one JSON value.
func (c Codec) Unmarshal(data []byte) (*Value, error) {
	return c.Decode(bytes.NewReader(data))
}

// Encode writes v to w followed by a newline.
func (c Codec) Encode(w io.Writer, v *Value) error {
	data, err := c.Marshal(v)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Marshal returns the JSON encoding of v.
func (c Codec) Marshal(v *Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.writeValue(&buf, v); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	if c.Indent == "" {
		return buf.Bytes(), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", c.Indent); err != nil {
		return nil, fmt.Errorf("indent: %w", err)
	}
	return out.Bytes(), nil
}

func decodeValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			return decodeArray(dec)
		case '{':
			return decodeObject(dec)
		}
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func decodeArray(dec *json.Decoder) (*Value, error) {
	arr := Array()
	for dec.More() {
		elem, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr.arr = append(arr.arr, elem)
	}
	if _, err := dec.Token(); err != nil { // ']'
		return nil, err
	}
	return arr, nil
}

func decodeObject(dec *json.Decoder) (*Value, error) {
	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", tok)
		}
		member, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", key, err)
		}
		// Duplicate keys: last one wins, matching encoding/json.
		obj.Set(key, member)
	}
	if _, err := dec.Token(); err != nil { // '}'
		return nil, err
	}
	return FromObject(obj), nil
}

func (c Codec) writeValue(buf *bytes.Buffer, v *Value) error {
	switch v.Kind() {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		if !json.Valid([]byte(v.n)) {
			return fmt.Errorf("invalid number literal %q", v.n)
		}
		buf.WriteString(string(v.n))
	case KindString:
		return c.writeString(buf, v.s)
	case KindArray:
		buf.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := c.writeValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		i := 0
		for k, member := range v.obj.All() {
			if i > 0 {
				buf.WriteByte(',')
			}
			i++
			if err := c.writeString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := c.writeValue(buf, member); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unknown kind %s", v.Kind())
	}
	return nil
}

func (c Codec) writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(c.EscapeHTML)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
