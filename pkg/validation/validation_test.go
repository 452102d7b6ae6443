package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rocrate/pkg/crate"
	"github.com/matzehuels/rocrate/pkg/entity"
	"github.com/matzehuels/rocrate/pkg/errors"
)

func validCrate(t *testing.T) *crate.Crate {
	t.Helper()
	c := crate.New()
	dir, err := entity.NewDataSetBuilder().SetID("data/").AddToHasPart("data/a.csv").Build()
	require.NoError(t, err)
	file, err := entity.NewDataEntityBuilder().SetID("data/a.csv").Build()
	require.NoError(t, err)
	require.NoError(t, c.AddDataEntity(dir, true))
	require.NoError(t, c.AddDataEntity(file, true))
	return c
}

func TestDefaultAcceptsValidCrate(t *testing.T) {
	assert.NoError(t, Default().Validate(crate.New()))
	assert.NoError(t, Default().Validate(validCrate(t)))
}

func TestDanglingHasPart(t *testing.T) {
	c := validCrate(t)
	c.Root().AddToHasPart("missing.txt")

	err := Default().Validate(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))
	assert.True(t, errors.Is(err, errors.ErrCodeReferential))
	assert.Equal(t, errors.ErrCodeValidation, errors.GetCode(err))

	problems := Problems(err)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0].Error(), "missing.txt")
}

func TestDataEntityOutsideRoot(t *testing.T) {
	c := validCrate(t)
	orphan, err := entity.NewDataEntityBuilder().SetID("orphan.txt").Build()
	require.NoError(t, err)
	require.NoError(t, c.AddDataEntity(orphan, false))

	problems := Problems(Default().Validate(c))
	require.Len(t, problems, 1)
	assert.True(t, errors.Is(problems[0], errors.ErrCodeReferential))
	assert.Contains(t, problems[0].Error(), "orphan.txt")
}

func TestNestedOnlyDataEntity(t *testing.T) {
	c := crate.New()
	dir, err := entity.NewDataSetBuilder().SetID("d/").AddToHasPart("d/x.csv").Build()
	require.NoError(t, err)
	file, err := entity.NewDataEntityBuilder().SetID("d/x.csv").Build()
	require.NoError(t, err)
	require.NoError(t, c.AddDataEntity(dir, true))
	require.NoError(t, c.AddDataEntity(file, false))

	problems := Problems(Default().Validate(c))
	require.Len(t, problems, 1)
	assert.True(t, errors.Is(problems[0], errors.ErrCodeReferential))
	assert.Contains(t, problems[0].Error(), "d/x.csv")
}

func TestDescriptorRules(t *testing.T) {
	root, err := entity.NewRootDataEntityBuilder().Build()
	require.NoError(t, err)
	desc, err := entity.NewDescriptorBuilder().SetAbout("elsewhere/").Build()
	require.NoError(t, err)
	c, err := crate.Assemble(nil, desc, root)
	require.NoError(t, err)

	problems := Problems(Default().Validate(c))
	require.Len(t, problems, 2, "wrong about and no conformsTo")
	assert.True(t, errors.Is(problems[0], errors.ErrCodeReferential))
	assert.True(t, errors.Is(problems[1], errors.ErrCodeValidation))
}

func TestChainCollectsAll(t *testing.T) {
	c := crate.New()
	c.Root().AddToHasPart("a")
	c.Root().AddToHasPart("b")

	v := Chain(Nop{}, Rule(HasPartResolves), Rule(func(*crate.Crate) []error {
		return []error{errors.New(errors.ErrCodeValidation, "custom")}
	}))
	problems := Problems(v.Validate(c))
	assert.Len(t, problems, 3)
}

func TestProblems(t *testing.T) {
	assert.Nil(t, Problems(nil))

	plain := errors.New(errors.ErrCodeIO, "disk")
	assert.Equal(t, []error{plain}, Problems(plain))
}

func TestNop(t *testing.T) {
	c := crate.New()
	c.Root().AddToHasPart("missing")
	assert.NoError(t, Nop{}.Validate(c))
}
