package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/rocrate/pkg/writer"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		format           string
		compression      int
		includeUntracked bool
		noValidate       bool
	)

	cmd := &cobra.Command{
		Use:   "convert <crate> <destination>",
		Short: "Write a crate to a folder or zip archive",
		Long: `Read a crate and write it to a new destination, copying the content of
every data entity found in the source.

The format is taken from --format, then the config file, then the
destination: a name ending in .zip produces an archive, anything else a
folder. The source is validated first unless --no-validate is given or
[read] validate = false is configured.`,
		Example: `  rocrate convert ./my-crate my-crate.zip
  rocrate convert my-crate.zip ./unpacked --include-untracked`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			src, dest := args[0], args[1]

			settings := writer.Settings{
				Format:           writer.Format(c.Config.Write.Format),
				Compression:      c.Config.Write.Compression,
				IncludeUntracked: c.Config.Write.IncludeUntracked,
				Indent:           c.Config.Write.Indent,
			}
			flags := cmd.Flags()
			if flags.Changed("format") {
				settings.Format = writer.Format(format)
			}
			if flags.Changed("compression") {
				settings.Compression = compression
			}
			if flags.Changed("include-untracked") {
				settings.IncludeUntracked = includeUntracked
			}

			prog := newProgress(logger)
			cr, closer, err := c.openCrate(ctx, src, c.Config.Read.Validate && !noValidate)
			if err != nil {
				return err
			}
			defer closer.Close()

			spinner := newSpinnerWithContext(ctx, "Writing "+dest)
			spinner.Start()
			err = writer.New(writer.ForFormat(settings, dest), writer.WithLogger(logger)).Write(ctx, cr, dest)
			if err != nil {
				spinner.StopWithError("Write failed")
				return err
			}
			spinner.StopWithSuccess("Wrote crate")
			printFile(dest)
			prog.done("Converted " + src)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: folder or zip (default: inferred from destination)")
	cmd.Flags().IntVar(&compression, "compression", -1, "zip deflate level, -2 (Huffman only) to 9")
	cmd.Flags().BoolVar(&includeUntracked, "include-untracked", false, "also copy files no entity describes")
	cmd.Flags().BoolVar(&noValidate, "no-validate", false, "skip validation of the source crate")
	return cmd
}
