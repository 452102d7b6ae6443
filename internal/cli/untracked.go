package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rocrate/pkg/errors"
	"github.com/matzehuels/rocrate/pkg/writer"
)

// untrackedCommand creates the untracked command.
func (c *CLI) untrackedCommand() *cobra.Command {
	var add bool

	cmd := &cobra.Command{
		Use:   "untracked <crate>",
		Short: "List files in a crate that no entity describes",
		Long: `List the top-level files and directories of a crate that are not the
content of any data entity. The metadata file, the HTML preview and globs
from [read] ignore in the config file are never listed.

With --add each entry is described as a data entity of the root dataset
and the metadata file is rewritten in place. Only folder crates can be
updated this way.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, location := cmd.Context(), args[0]
			if add && !isDir(location) {
				return errors.New(errors.ErrCodeInvalidInput, "--add needs a crate folder, %s is not one", location)
			}

			cr, closer, err := c.openCrate(ctx, location, false)
			if err != nil {
				return err
			}
			defer closer.Close()

			untracked := cr.Untracked()
			if len(untracked) == 0 {
				printSuccess("Every file in %s is described", location)
				return nil
			}
			if !add {
				for _, u := range untracked {
					name := u.Name
					if u.Dir {
						name += "/"
					}
					printFile(name)
				}
				printNextStep("Describe them", "rocrate untracked --add "+location)
				return nil
			}

			added, err := cr.TrackUntracked()
			if err != nil {
				return err
			}
			s := writer.NewFolderStrategy()
			s.Codec.Indent = c.Config.Write.Indent
			if err := writer.New(s, writer.WithLogger(loggerFromContext(ctx))).Write(ctx, cr, location); err != nil {
				return err
			}
			printSuccess("Added %d data entities", len(added))
			printDetail("%s", strings.Join(added, ", "))
			if left := cr.Untracked(); len(left) > 0 {
				printWarning("%d entries clash with existing ids and stay untracked", len(left))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&add, "add", false, "describe every untracked entry and save the crate")
	return cmd
}
