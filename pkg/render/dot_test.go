package render

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rocrate/pkg/cache"
	"github.com/matzehuels/rocrate/pkg/crate"
	"github.com/matzehuels/rocrate/pkg/entity"
	"github.com/matzehuels/rocrate/pkg/errors"
	"github.com/matzehuels/rocrate/pkg/value"
)

func sample(t *testing.T) *crate.Crate {
	t.Helper()
	c := crate.New()
	dir, err := entity.NewDataSetBuilder().SetID("data/").AddToHasPart("data/a.csv").Build()
	require.NoError(t, err)
	file, err := entity.NewDataEntityBuilder().SetID("data/a.csv").
		AddProperty("author", value.Ref("#alice")).
		AddProperty("publisher", value.Ref("https://elsewhere.example")).
		Build()
	require.NoError(t, err)
	alice, err := entity.NewContextualEntityBuilder().SetID("#alice").AddType("Person").Build()
	require.NoError(t, err)
	require.NoError(t, c.AddDataEntity(dir, true))
	require.NoError(t, c.AddDataEntity(file, false))
	require.NoError(t, c.AddContextualEntity(alice))
	return c
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample(t), Options{})

	assert.True(t, strings.HasPrefix(dot, "digraph crate {"))
	assert.Contains(t, dot, `"ro-crate-metadata.json" [label="ro-crate-metadata.json", shape=note`)
	assert.Contains(t, dot, `"./" [label="./", shape=folder, penwidth=2];`)
	assert.Contains(t, dot, `"data/" [label="data/", shape=folder];`)
	assert.Contains(t, dot, `"data/a.csv" [label="data/a.csv", shape=box];`)
	assert.Contains(t, dot, `"#alice" [label="#alice", shape=ellipse`)

	assert.Contains(t, dot, `"ro-crate-metadata.json" -> "./" [style=dashed, label="about"];`)
	assert.Contains(t, dot, `"./" -> "data/";`)
	assert.Contains(t, dot, `"data/" -> "data/a.csv";`)
	assert.NotContains(t, dot, "style=dotted")
}

func TestToDOTReferences(t *testing.T) {
	dot := ToDOT(sample(t), Options{References: true})

	assert.Contains(t, dot, `"data/a.csv" -> "#alice" [style=dotted, label="author"];`)
	assert.NotContains(t, dot, "elsewhere.example", "references leaving the crate are skipped")
	assert.Equal(t, 1, strings.Count(dot, `"./" -> "data/"`), "hasPart is not drawn twice")
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sample(t), Options{Detailed: true})
	assert.Contains(t, dot, `label="#alice\nPerson"`)
}

func TestToDOTSkipsDanglingHasPart(t *testing.T) {
	c := crate.New()
	c.Root().AddToHasPart("ghost")
	assert.NotContains(t, ToDOT(c, Options{}), "ghost")
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sample(t), Options{}))
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Contains(t, string(svg), `viewBox="0 0 `)
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.50 200.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	assert.Equal(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.50 200.00" width="100" height="200"><g/></svg>`, out)

	assert.Equal(t, "<svg/>", string(normalizeViewBox([]byte("<svg/>"))))
}

type countingCache struct {
	cache.Cache
	sets int
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.sets++
	return c.Cache.Set(ctx, key, data, ttl)
}

func TestDiagramCaches(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	store := &countingCache{Cache: fc}
	keyer := cache.NewDefaultKeyer()
	c := sample(t)
	ctx := context.Background()

	first, hit, err := Diagram(ctx, store, keyer, c, FormatDOT, Options{}, 0)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, ToDOT(c, Options{}), string(first))

	again, hit, err := Diagram(ctx, store, keyer, c, FormatDOT, Options{}, 0)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first, again)
	assert.Equal(t, 1, store.sets)

	_, hit, err = Diagram(ctx, store, keyer, c, FormatDOT, Options{References: true}, 0)
	require.NoError(t, err)
	assert.False(t, hit, "options are part of the key")

	c.Root().SetName("edited")
	_, hit, err = Diagram(ctx, store, keyer, c, FormatDOT, Options{}, 0)
	require.NoError(t, err)
	assert.False(t, hit, "metadata edits invalidate")
}

func TestDiagramUnknownFormat(t *testing.T) {
	_, _, err := Diagram(context.Background(), cache.NewNullCache(), cache.NewDefaultKeyer(), sample(t), "png", Options{}, 0)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}
