package cli

import (
	"context"
	stderrors "errors"

	"github.com/matzehuels/rocrate/pkg/errors"
)

// Exit statuses returned by ExitCode.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitInvalid  = 2
	ExitCanceled = 130
)

// ExitCode maps a command error to a process exit status. Crates that
// cannot be parsed or break a validation rule exit with ExitInvalid so
// scripts can tell them apart from I/O and usage failures.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled):
		return ExitCanceled
	case errors.Is(err, errors.ErrCodeValidation),
		errors.Is(err, errors.ErrCodeStructural),
		errors.Is(err, errors.ErrCodeReferential):
		return ExitInvalid
	default:
		return ExitFailure
	}
}
