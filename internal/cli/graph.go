package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rocrate/pkg/cache"
	"github.com/matzehuels/rocrate/pkg/errors"
	"github.com/matzehuels/rocrate/pkg/render"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output  string
		format  string
		opts    render.Options
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "graph <crate>",
		Short: "Draw the entity graph of a crate as DOT or SVG",
		Long: `Draw the descriptor, the root, every data entity and every contextual
entity, with edges for "about" and "hasPart". --references adds dotted
edges for every other property that points at an entity in the crate.

Rendered diagrams are cached by the hash of the metadata document, so
re-running on an unchanged crate is instant.`,
		Example: `  rocrate graph ./my-crate -o crate.svg
  rocrate graph my-crate.zip --format dot --references | dot -Tpng > crate.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if format != render.FormatDOT && format != render.FormatSVG {
				return errors.New(errors.ErrCodeInvalidInput, "format must be %s or %s", render.FormatDOT, render.FormatSVG)
			}

			cr, closer, err := c.openCrate(ctx, args[0], false)
			if err != nil {
				return err
			}
			defer closer.Close()

			store, err := c.newCache(noCache)
			if err != nil {
				return err
			}
			defer store.Close()

			var spinner *Spinner
			if output != "" {
				spinner = newSpinnerWithContext(ctx, "Rendering "+format)
				spinner.Start()
			}
			out, cached, err := render.Diagram(ctx, store, cache.NewDefaultKeyer(), cr, format, opts, c.Config.Cache.TTL)
			if spinner != nil {
				spinner.Stop()
			}
			if err != nil {
				return err
			}

			if output == "" {
				_, err := os.Stdout.Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeIO, err, "write %s", output)
			}
			printSuccess("Rendered %s", format)
			printFile(output)
			printCacheStatus(len(out), cached)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", render.FormatSVG, fmt.Sprintf("diagram format: %s or %s", render.FormatSVG, render.FormatDOT))
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "list each entity's types in its label")
	cmd.Flags().BoolVar(&opts.References, "references", false, "draw edges for entity references other than hasPart")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "render without reading or writing the cache")
	return cmd
}
