package validation

import (
	stderrors "errors"
	"strings"

	"github.com/matzehuels/rocrate/pkg/crate"
	"github.com/matzehuels/rocrate/pkg/entity"
	"github.com/matzehuels/rocrate/pkg/errors"
	"github.com/matzehuels/rocrate/pkg/metadata"
)

// Validator rejects crates that do not conform to a rule set.
type Validator interface {
	Validate(c *crate.Crate) error
}

// Rule is a validator built from a function returning every problem found.
type Rule func(c *crate.Crate) []error

// Validate implements [Validator].
func (r Rule) Validate(c *crate.Crate) error {
	return errors.Join(errors.ErrCodeValidation, "crate is invalid", r(c)...)
}

// Nop accepts every crate.
type Nop struct{}

// Validate implements [Validator].
func (Nop) Validate(*crate.Crate) error { return nil }

type chain []Validator

// Chain runs every validator and reports all failures together.
func Chain(vs ...Validator) Validator {
	return chain(vs)
}

func (ch chain) Validate(c *crate.Crate) error {
	var problems []error
	for _, v := range ch {
		if err := v.Validate(c); err != nil {
			problems = append(problems, Problems(err)...)
		}
	}
	return errors.Join(errors.ErrCodeValidation, "crate is invalid", problems...)
}

// Default returns the built-in rule set.
func Default() Validator {
	return Chain(
		Rule(HasPartResolves),
		Rule(DataInRoot),
		Rule(DescriptorAboutRoot),
		Rule(DescriptorConforms),
		Rule(RootIsDataset),
	)
}

// Problems flattens a validation error into the individual problems it
// wraps. Any other error is returned as its only problem.
func Problems(err error) []error {
	if err == nil {
		return nil
	}
	var e *errors.Error
	if stderrors.As(err, &e) && e.Code == errors.ErrCodeValidation && e.Cause != nil {
		if multi, ok := e.Cause.(interface{ Unwrap() []error }); ok {
			return multi.Unwrap()
		}
		return []error{e.Cause}
	}
	return []error{err}
}

// datasets returns the root followed by every dataset data entity.
func datasets(c *crate.Crate) []*entity.DataSetEntity {
	out := []*entity.DataSetEntity{&c.Root().DataSetEntity}
	for _, e := range c.DataEntities() {
		if ds, ok := e.(*entity.DataSetEntity); ok {
			out = append(out, ds)
		}
	}
	return out
}

// HasPartResolves reports hasPart entries that name no entity.
func HasPartResolves(c *crate.Crate) []error {
	var problems []error
	for _, ds := range datasets(c) {
		for _, id := range ds.HasPart() {
			if !c.Has(id) {
				problems = append(problems, errors.New(errors.ErrCodeReferential,
					"%q lists %q in hasPart, but no such entity exists", ds.ID(), id))
			}
		}
	}
	return problems
}

// DataInRoot reports data entities that the root's hasPart does not list.
// Only root hasPart members are read back as data entities, so any other
// data entity would come back contextual.
func DataInRoot(c *crate.Crate) []error {
	var problems []error
	for _, e := range c.DataEntities() {
		if !c.Root().HasInHasPart(e.ID()) {
			problems = append(problems, errors.New(errors.ErrCodeReferential,
				"data entity %q is not listed in the hasPart of root %q", e.ID(), c.Root().ID()))
		}
	}
	return problems
}

// DescriptorAboutRoot reports a descriptor whose about does not name the
// root.
func DescriptorAboutRoot(c *crate.Crate) []error {
	if about := c.Descriptor().About(); about != c.Root().ID() {
		return []error{errors.New(errors.ErrCodeReferential,
			"descriptor about is %q, want root %q", about, c.Root().ID())}
	}
	return nil
}

// DescriptorConforms reports a descriptor without a versioned conformsTo.
func DescriptorConforms(c *crate.Crate) []error {
	for _, id := range c.Descriptor().ConformsTo() {
		if strings.HasPrefix(id, metadata.SpecBaseURL) {
			return nil
		}
	}
	return []error{errors.New(errors.ErrCodeValidation,
		"descriptor does not conform to any %s* version", metadata.SpecBaseURL)}
}

// RootIsDataset reports a root without the Dataset type.
func RootIsDataset(c *crate.Crate) []error {
	if !c.Root().HasType(entity.TypeDataset) {
		return []error{errors.New(errors.ErrCodeValidation,
			"root %q is not typed %s", c.Root().ID(), entity.TypeDataset)}
	}
	return nil
}
