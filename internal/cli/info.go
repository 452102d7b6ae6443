package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rocrate/pkg/crate"
)

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "info <crate>",
		Short: "Show the root dataset and entities of a crate",
		Long: `Show the root dataset's properties and list every data and contextual
entity of a crate folder or zip archive. The crate is not validated; use
"rocrate validate" for that.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cr, closer, err := c.openCrate(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}
			defer closer.Close()

			summary := crate.Summarize(cr)
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			printSummary(args[0], summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func printSummary(location string, s crate.Summary) {
	fmt.Println(StyleTitle.Render(location))
	printKeyValue("Root", s.Root)
	printKeyValue("Name", s.Name)
	printKeyValue("Description", s.Description)
	printKeyValue("Published", s.DatePublished)
	printKeyValue("License", s.License)
	printKeyValue("Conforms to", strings.Join(s.ConformsTo, ", "))
	fmt.Println()

	printDetail("%d data · %d contextual · %d untracked", len(s.Data), len(s.Contextual), len(s.Untracked))
	if rows := entityRows(s); len(rows) > 0 {
		fmt.Println(renderEntityTable(rows))
	}
	if len(s.Untracked) > 0 {
		printNextStep("Describe untracked files", "rocrate untracked --add "+location)
	}
}
