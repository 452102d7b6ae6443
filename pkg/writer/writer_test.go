package writer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rocrate/pkg/crate"
	"github.com/matzehuels/rocrate/pkg/entity"
	"github.com/matzehuels/rocrate/pkg/errors"
	"github.com/matzehuels/rocrate/pkg/metadata"
	"github.com/matzehuels/rocrate/pkg/reader"
	"github.com/matzehuels/rocrate/pkg/validation"
	"github.com/matzehuels/rocrate/pkg/value"
)

// sampleCrate builds a crate with a file, a directory and a person, backed
// by content in a temporary directory.
func sampleCrate(t *testing.T) *crate.Crate {
	t.Helper()
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("alpha"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(src, "dir", "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "dir", "sub", "b.csv"), []byte("1,2"), 0o644))

	c := crate.New()
	c.Root().SetName("Sample")
	c.Root().SetLicense("https://spdx.org/licenses/MIT")

	file, err := entity.NewDataEntityBuilder().
		SetID("a.txt").
		AddProperty("encodingFormat", value.String("text/plain")).
		AddProperty("author", value.Ref("#alice")).
		SetSource(filepath.Join(src, "a.txt")).
		Build()
	require.NoError(t, err)
	dir, err := entity.NewDataSetBuilder().
		SetID("dir/").
		AddProperty("name", value.String("Directory")).
		SetSource(filepath.Join(src, "dir")).
		Build()
	require.NoError(t, err)
	person, err := entity.NewContextualEntityBuilder().
		SetID("#alice").
		AddType("Person").
		AddProperty("name", value.String("Alice")).
		Build()
	require.NoError(t, err)
	license, err := entity.NewContextualEntityBuilder().
		SetID("https://spdx.org/licenses/MIT").
		AddType("CreativeWork").
		Build()
	require.NoError(t, err)

	require.NoError(t, c.AddDataEntity(file, true))
	require.NoError(t, c.AddDataEntity(dir, true))
	require.NoError(t, c.AddContextualEntity(person))
	require.NoError(t, c.AddContextualEntity(license))
	return c
}

func assertEquivalent(t *testing.T, want, got *crate.Crate) {
	t.Helper()
	assert.ElementsMatch(t, want.IDs(), got.IDs())
	assert.Equal(t, want.Root().ID(), got.Root().ID())
	assert.Equal(t, want.Descriptor().ID(), got.Descriptor().ID())
	assert.ElementsMatch(t, want.Root().HasPart(), got.Root().HasPart())

	for _, id := range want.IDs() {
		we, _ := want.Entity(id)
		ge, ok := got.Entity(id)
		require.True(t, ok, id)
		assert.ElementsMatch(t, we.Types(), ge.Types(), id)
		assert.True(t, we.Properties().Equal(ge.Properties()), "properties of %s", id)
	}
	for _, e := range want.DataEntities() {
		_, ok := got.DataEntity(e.ID())
		assert.True(t, ok, "%s stays a data entity", e.ID())
	}
	for _, e := range want.ContextualEntities() {
		_, ok := got.ContextualEntity(e.ID())
		assert.True(t, ok, "%s stays contextual", e.ID())
	}
}

func TestFolderRoundTrip(t *testing.T) {
	c := sampleCrate(t)
	dest := filepath.Join(t.TempDir(), "out")

	require.NoError(t, New(NewFolderStrategy()).Write(context.Background(), c, dest))

	got, err := reader.New(reader.NewFolderStrategy()).Read(context.Background(), dest)
	require.NoError(t, err)
	assertEquivalent(t, c, got)

	content, err := os.ReadFile(filepath.Join(dest, "dir", "sub", "b.csv"))
	require.NoError(t, err)
	assert.Equal(t, "1,2", string(content))
	assert.Empty(t, got.Untracked())

	a, ok := got.DataEntity("a.txt")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dest, "a.txt"), a.Source())
}

func TestZipRoundTrip(t *testing.T) {
	c := sampleCrate(t)
	dest := filepath.Join(t.TempDir(), "crate.zip")

	s := NewZipStrategy()
	s.Level = 9
	require.NoError(t, New(s).Write(context.Background(), c, dest))

	got, closer, err := reader.Open(context.Background(), dest)
	require.NoError(t, err)
	defer closer.Close()
	assertEquivalent(t, c, got)

	e, ok := got.DataEntity("dir/")
	require.True(t, ok)
	content, err := os.ReadFile(filepath.Join(e.Source(), "sub", "b.csv"))
	require.NoError(t, err)
	assert.Equal(t, "1,2", string(content))
}

func TestSingleHasPartIsWrittenAsArray(t *testing.T) {
	src := t.TempDir()
	doc := `{"@context":"https://w3id.org/ro/crate/1.1/context","@graph":[
		{"@id":"ro-crate-metadata.json","@type":"CreativeWork","conformsTo":{"@id":"https://w3id.org/ro/crate/1.1"},"about":{"@id":"./"}},
		{"@id":"./","@type":"Dataset","hasPart":{"@id":"x"}},
		{"@id":"x","@type":"File"}
	]}`
	require.NoError(t, os.WriteFile(filepath.Join(src, metadata.FileName), []byte(doc), 0o644))

	c, err := reader.New(reader.NewFolderStrategy()).Read(context.Background(), src)
	require.NoError(t, err)

	dest := t.TempDir()
	require.NoError(t, New(NewFolderStrategy()).Write(context.Background(), c, dest))

	written, err := metadata.ImportDocument(filepath.Join(dest, metadata.FileName), value.Codec{})
	require.NoError(t, err)
	root := written.Graph[1]
	hp, ok := root.Get(entity.KeyHasPart)
	require.True(t, ok)
	out, err := value.Codec{}.Marshal(hp)
	require.NoError(t, err)
	assert.Equal(t, `[{"@id":"x"}]`, string(out))
}

func TestEmptyHasPartIsOmitted(t *testing.T) {
	dest := t.TempDir()
	require.NoError(t, New(NewFolderStrategy()).Write(context.Background(), crate.New(), dest))

	written, err := metadata.ImportDocument(filepath.Join(dest, metadata.FileName), value.Codec{})
	require.NoError(t, err)
	require.Len(t, written.Graph, 2)
	assert.False(t, written.Graph[1].Has(entity.KeyHasPart))
}

func TestUnsafeIDWithSourceFails(t *testing.T) {
	for _, id := range []string{"../escape.txt", "/abs.txt", "https://example.org/a.txt", "%2E%2E/x"} {
		t.Run(id, func(t *testing.T) {
			src := filepath.Join(t.TempDir(), "f")
			require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

			c := crate.New()
			e, err := entity.NewDataEntityBuilder().SetID(id).SetSource(src).Build()
			require.NoError(t, err)
			require.NoError(t, c.AddDataEntity(e, true))

			dest := t.TempDir()
			err = New(NewFolderStrategy()).Write(context.Background(), c, dest)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeIO))
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidPath))

			_, statErr := os.Stat(filepath.Join(dest, metadata.FileName))
			assert.True(t, os.IsNotExist(statErr), "nothing is written")
		})
	}
}

func nestedCrate(t *testing.T, fileInRoot bool) *crate.Crate {
	t.Helper()
	c := crate.New()
	dir, err := entity.NewDataSetBuilder().SetID("d/").AddToHasPart("d/x.csv").Build()
	require.NoError(t, err)
	file, err := entity.NewDataEntityBuilder().SetID("d/x.csv").Build()
	require.NoError(t, err)
	require.NoError(t, c.AddDataEntity(dir, true))
	require.NoError(t, c.AddDataEntity(file, fileInRoot))
	return c
}

func TestNestedDataEntityOutsideRootFails(t *testing.T) {
	dest := t.TempDir()
	err := New(NewFolderStrategy()).Write(context.Background(), nestedCrate(t, false), dest)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeStructural))

	_, statErr := os.Stat(filepath.Join(dest, metadata.FileName))
	assert.True(t, os.IsNotExist(statErr), "nothing is written")
}

func TestNestedDataEntityRoundTrip(t *testing.T) {
	c := nestedCrate(t, true)
	dest := t.TempDir()
	require.NoError(t, New(NewFolderStrategy(), WithValidator(validation.Default())).Write(context.Background(), c, dest))

	got, err := reader.New(reader.NewFolderStrategy(), reader.WithValidator(validation.Nop{})).Read(context.Background(), dest)
	require.NoError(t, err)
	assertEquivalent(t, c, got)
	_, ok := got.DataEntity("d/x.csv")
	assert.True(t, ok)
}

func TestRemoteEntityWithoutSourceIsFine(t *testing.T) {
	c := crate.New()
	e, err := entity.NewDataEntityBuilder().SetID("https://example.org/data.csv").Build()
	require.NoError(t, err)
	require.NoError(t, c.AddDataEntity(e, true))

	dest := t.TempDir()
	require.NoError(t, New(NewFolderStrategy()).Write(context.Background(), c, dest))

	got, err := reader.New(reader.NewFolderStrategy()).Read(context.Background(), dest)
	require.NoError(t, err)
	_, ok := got.DataEntity("https://example.org/data.csv")
	assert.True(t, ok)
}

func TestIncludeUntracked(t *testing.T) {
	src := t.TempDir()
	doc := `{"@context":"https://w3id.org/ro/crate/1.1/context","@graph":[
		{"@id":"ro-crate-metadata.json","conformsTo":{"@id":"https://w3id.org/ro/crate/1.1"},"about":{"@id":"./"}},
		{"@id":"./","@type":"Dataset"}
	]}`
	require.NoError(t, os.WriteFile(filepath.Join(src, metadata.FileName), []byte(doc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "extra.bin"), []byte{1, 2}, 0o644))

	c, err := reader.New(reader.NewFolderStrategy()).Read(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, c.Untracked(), 1)

	without := t.TempDir()
	require.NoError(t, New(NewFolderStrategy()).Write(context.Background(), c, without))
	_, err = os.Stat(filepath.Join(without, "extra.bin"))
	assert.True(t, os.IsNotExist(err))

	with := t.TempDir()
	s := NewFolderStrategy()
	s.IncludeUntracked = true
	require.NoError(t, New(s).Write(context.Background(), c, with))
	_, err = os.Stat(filepath.Join(with, "extra.bin"))
	assert.NoError(t, err)
}

func TestSaveInPlace(t *testing.T) {
	c := sampleCrate(t)
	dest := t.TempDir()
	require.NoError(t, New(NewFolderStrategy()).Write(context.Background(), c, dest))

	again, err := reader.New(reader.NewFolderStrategy()).Read(context.Background(), dest)
	require.NoError(t, err)
	again.Root().SetDescription("updated")
	require.NoError(t, New(NewFolderStrategy()).Write(context.Background(), again, dest))

	final, err := reader.New(reader.NewFolderStrategy()).Read(context.Background(), dest)
	require.NoError(t, err)
	desc, _ := final.Root().Properties().GetString("description")
	assert.Equal(t, "updated", desc)
	content, err := os.ReadFile(filepath.Join(dest, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(content))
}

func TestWriterValidator(t *testing.T) {
	c := crate.New()
	c.Root().AddToHasPart("ghost")

	err := New(NewFolderStrategy(), WithValidator(validation.Default())).Write(context.Background(), c, t.TempDir())
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))

	assert.NoError(t, New(NewFolderStrategy()).Write(context.Background(), c, t.TempDir()))
}

func TestZipRejectsBadLevel(t *testing.T) {
	s := NewZipStrategy()
	s.Level = 42
	err := New(s).Write(context.Background(), crate.New(), filepath.Join(t.TempDir(), "x.zip"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		dest     string
		wantZip  bool
	}{
		{"inferred zip", Settings{}, "out.ZIP", true},
		{"inferred folder", Settings{}, "out", false},
		{"explicit zip", Settings{Format: FormatZip}, "out", true},
		{"explicit folder", Settings{Format: FormatFolder}, "out.zip", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, isZip := ForFormat(tt.settings, tt.dest).(*ZipStrategy)
			assert.Equal(t, tt.wantZip, isZip)
		})
	}
}
