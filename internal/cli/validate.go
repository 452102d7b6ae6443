package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rocrate/pkg/errors"
	"github.com/matzehuels/rocrate/pkg/validation"
)

const defaultDebounce = 300 * time.Millisecond

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		watch    bool
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "validate <crate>",
		Short: "Check a crate against the structural and referential rules",
		Long: `Read a crate and check it against the default rule set:

  - every hasPart entry names an entity in the crate
  - every data entity is listed in the root's hasPart
  - the metadata descriptor is about the root and conforms to RO-Crate
  - the root is typed Dataset

The exit status is 2 when the crate cannot be parsed or breaks a rule.
With --watch the crate is checked again after every change until
interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, location := cmd.Context(), args[0]
			err := c.checkCrate(ctx, location)
			reportValidation(location, err)
			if !watch {
				return err
			}

			printInfo("Watching %s for changes (ctrl+c to stop)", location)
			return watchCrate(ctx, location, debounce, loggerFromContext(ctx), func() {
				reportValidation(location, c.checkCrate(ctx, location))
			})
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-validate whenever the crate changes")
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "quiet period before re-validating")
	return cmd
}

// checkCrate reads location without validation, then applies the default
// rules so that every violation is reported rather than the first.
func (c *CLI) checkCrate(ctx context.Context, location string) error {
	cr, closer, err := c.openCrate(ctx, location, false)
	if err != nil {
		return err
	}
	defer closer.Close()
	return validation.Default().Validate(cr)
}

func reportValidation(location string, err error) {
	switch {
	case err == nil:
		printSuccess("%s is valid", location)
	case errors.Is(err, errors.ErrCodeValidation):
		problems := validation.Problems(err)
		printError("%s has %d problem(s)", location, len(problems))
		for _, p := range problems {
			printProblem(string(errors.GetCode(p)), errors.UserMessage(p))
		}
	default:
		printError("%s: %s", location, err)
	}
}
