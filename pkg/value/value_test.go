package value

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePreservesMemberOrder(t *testing.T) {
	doc := `{"z": 1, "a": {"y": true, "b": null}, "m": [1.50, "x"]}`

	v, err := Codec{}.Unmarshal([]byte(doc))
	require.NoError(t, err)

	obj, ok := v.AsObject()
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a", "m"}, obj.Keys())

	inner, ok := obj.Get("a")
	require.True(t, ok)
	innerObj, _ := inner.AsObject()
	assert.Equal(t, []string{"y", "b"}, innerObj.Keys())

	out, err := Codec{}.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":{"y":true,"b":null},"m":[1.50,"x"]}`, string(out))
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"truncated", `{"a": `},
		{"trailing", `{} {}`},
		{"bad literal", `{"a": tru}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Codec{}.Unmarshal([]byte(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestEncodeIndent(t *testing.T) {
	obj := NewObject().SetString("@id", "./").Set("n", Int(3))

	var buf bytes.Buffer
	require.NoError(t, Codec{Indent: "  "}.Encode(&buf, FromObject(obj)))
	assert.Equal(t, "{\n  \"@id\": \"./\",\n  \"n\": 3\n}\n", buf.String())
}

func TestEncodeEscapeHTML(t *testing.T) {
	v := String("<a & b>")

	plain, err := Codec{}.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `"<a & b>"`, string(plain))

	escaped, err := Codec{EscapeHTML: true}.Marshal(v)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(escaped), `\u003c`))
}

func TestEqual(t *testing.T) {
	a := FromObject(NewObject().Set("x", Int(1)).Set("y", String("s")))
	b := FromObject(NewObject().Set("y", String("s")).Set("x", Number("1.0")))
	assert.True(t, a.Equal(b), "object member order and number spelling are ignored")

	c := Array(Int(1), Int(2))
	d := Array(Int(2), Int(1))
	assert.False(t, c.Equal(d), "array order matters")

	assert.True(t, Null().Equal(nil))
}

func TestCloneIsDeep(t *testing.T) {
	orig := FromObject(NewObject().Set("list", Array(String("a"))))
	cp := orig.Clone()

	obj, _ := cp.AsObject()
	list, _ := obj.Get("list")
	list.Append(String("b"))

	origObj, _ := orig.AsObject()
	origList, _ := origObj.Get("list")
	assert.Equal(t, 1, origList.Len())
	assert.Equal(t, 2, list.Len())
}

func TestObjectSetDelete(t *testing.T) {
	obj := NewObject().SetString("a", "1").SetString("b", "2").SetString("c", "3")
	obj.SetString("a", "changed")
	assert.Equal(t, []string{"a", "b", "c"}, obj.Keys(), "overwrite keeps position")

	assert.True(t, obj.Delete("b"))
	assert.False(t, obj.Delete("b"))
	assert.Equal(t, []string{"a", "c"}, obj.Keys())

	s, ok := obj.GetString("a")
	assert.True(t, ok)
	assert.Equal(t, "changed", s)
}

func TestObjectUnmarshalRejectsNonObject(t *testing.T) {
	var obj Object
	err := obj.UnmarshalJSON([]byte(`[1]`))
	var kindErr *KindError
	require.ErrorAs(t, err, &kindErr)
	assert.Equal(t, KindObject, kindErr.Want)
	assert.Equal(t, KindArray, kindErr.Got)
}

func TestRefIDs(t *testing.T) {
	tests := []struct {
		name string
		in   *Value
		want []string
	}{
		{"single", Ref("x"), []string{"x"}},
		{"array", Array(Ref("x"), Ref("y")), []string{"x", "y"}},
		{"skips non refs", Array(Ref("x"), String("y"), FromObject(NewObject())), []string{"x"}},
		{"string", String("x"), nil},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nilIfEmpty(RefIDs(tt.in)))
		})
	}
}

func TestStringsOf(t *testing.T) {
	assert.Equal(t, []string{"File"}, StringsOf(String("File")))
	assert.Equal(t, []string{"File", "Dataset"}, StringsOf(Strings("File", "Dataset")))
	assert.Empty(t, StringsOf(Int(1)))
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
