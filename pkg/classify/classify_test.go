package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rocrate/pkg/errors"
	"github.com/matzehuels/rocrate/pkg/metadata"
	"github.com/matzehuels/rocrate/pkg/value"
)

func graph(t *testing.T, doc string) []*value.Object {
	t.Helper()
	v, err := value.Codec{}.Unmarshal([]byte(`{"@graph":` + doc + `}`))
	require.NoError(t, err)
	d, err := metadata.Decode(v)
	require.NoError(t, err)
	return d.Graph
}

func ids(nodes []*value.Object) []string {
	var out []string
	for _, n := range nodes {
		id, _ := n.GetString("@id")
		out = append(out, id)
	}
	return out
}

const descriptor = `{"@id":"ro-crate-metadata.json","@type":"CreativeWork","conformsTo":{"@id":"https://w3id.org/ro/crate/1.1"},"about":{"@id":"./"}}`

func TestClassify(t *testing.T) {
	nodes := graph(t, `[
		{"@id":"#alice","@type":"Person"},
		`+descriptor+`,
		{"@id":"./","@type":"Dataset","hasPart":[{"@id":"file1.txt"},{"@id":"data/"}]},
		{"@id":"file1.txt","@type":"File","author":{"@id":"#alice"}},
		{"@id":"data/","@type":"Dataset"},
		{"@id":"https://spdx.org/licenses/MIT","@type":"CreativeWork"}
	]`)

	res, err := Classify(nodes, Options{})
	require.NoError(t, err)

	descID, _ := res.Descriptor.GetString("@id")
	rootID, _ := res.Root.GetString("@id")
	assert.Equal(t, "ro-crate-metadata.json", descID)
	assert.Equal(t, "./", rootID)
	assert.Equal(t, []string{"file1.txt", "data/"}, res.RootParts)
	assert.Equal(t, []string{"file1.txt", "data/"}, ids(res.Data))
	assert.Equal(t, []string{"#alice", "https://spdx.org/licenses/MIT"}, ids(res.Contextual))

	total := 2 + len(res.Data) + len(res.Contextual)
	assert.Equal(t, len(nodes), total, "every node lands in exactly one group")
}

func TestClassifyHasPartShapes(t *testing.T) {
	single := graph(t, `[`+descriptor+`,{"@id":"./","hasPart":{"@id":"x"}},{"@id":"x"}]`)
	array := graph(t, `[`+descriptor+`,{"@id":"./","hasPart":[{"@id":"x"}]},{"@id":"x"}]`)

	for _, nodes := range [][]*value.Object{single, array} {
		res, err := Classify(nodes, Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"x"}, res.RootParts)
		assert.Equal(t, []string{"x"}, ids(res.Data))
		assert.Empty(t, res.Contextual)
	}
}

func TestClassifyConformsToArray(t *testing.T) {
	nodes := graph(t, `[
		{"@id":"ro-crate-metadata.json","conformsTo":[{"@id":"https://example.org/profile"},{"@id":"https://w3id.org/ro/crate/1.2"}],"about":{"@id":"./"}},
		{"@id":"./"}
	]`)
	res, err := Classify(nodes, Options{})
	require.NoError(t, err)
	id, _ := res.Descriptor.GetString("@id")
	assert.Equal(t, "ro-crate-metadata.json", id)
}

func TestClassifyCustomPrefix(t *testing.T) {
	nodes := graph(t, `[
		{"@id":"meta.json","conformsTo":{"@id":"https://example.org/crate/2"},"about":{"@id":"./"}},
		{"@id":"./"}
	]`)
	_, err := Classify(nodes, Options{})
	assert.True(t, errors.Is(err, errors.ErrCodeStructural))

	res, err := Classify(nodes, Options{Prefix: "https://example.org/crate/"})
	require.NoError(t, err)
	id, _ := res.Descriptor.GetString("@id")
	assert.Equal(t, "meta.json", id)
}

func TestClassifyStructuralErrors(t *testing.T) {
	tests := []struct {
		name  string
		graph string
	}{
		{"empty graph", `[]`},
		{"no descriptor", `[{"@id":"./"}]`},
		{"missing id", `[` + descriptor + `,{"@type":"Dataset"}]`},
		{"empty id", `[` + descriptor + `,{"@id":""}]`},
		{"non string id", `[` + descriptor + `,{"@id":7}]`},
		{"duplicate id", `[` + descriptor + `,{"@id":"./"},{"@id":"./"}]`},
		{"root unresolved", `[` + descriptor + `,{"@id":"other/"}]`},
		{"about missing", `[{"@id":"ro-crate-metadata.json","conformsTo":{"@id":"https://w3id.org/ro/crate/1.1"}},{"@id":"./"}]`},
		{"about points at descriptor", `[{"@id":"ro-crate-metadata.json","conformsTo":{"@id":"https://w3id.org/ro/crate/1.1"},"about":{"@id":"ro-crate-metadata.json"}}]`},
		{"two descriptors", `[` + descriptor + `,{"@id":"second.json","conformsTo":{"@id":"https://w3id.org/ro/crate/1.0"},"about":{"@id":"./"}},{"@id":"./"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Classify(graph(t, tt.graph), Options{})
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, errors.ErrCodeStructural), "got %v", err)
		})
	}
}

func TestClassifyDuplicateCarriesCode(t *testing.T) {
	_, err := Classify(graph(t, `[`+descriptor+`,{"@id":"./"},{"@id":"./"}]`), Options{})
	assert.True(t, errors.Is(err, errors.ErrCodeDuplicateID))
}
