package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rocrate/pkg/crate"
	"github.com/matzehuels/rocrate/pkg/errors"
	"github.com/matzehuels/rocrate/pkg/metadata"
	"github.com/matzehuels/rocrate/pkg/reader"
	"github.com/matzehuels/rocrate/pkg/writer"
)

type initOpts struct {
	name        string
	description string
	license     string
	published   string
	track       bool
	force       bool
}

// initCommand creates the init command.
func (c *CLI) initCommand() *cobra.Command {
	var opts initOpts

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create ro-crate-metadata.json in a directory",
		Long: `Turn a directory (default: the current one) into a crate by writing a
metadata file with a descriptor and an empty root dataset. With --track
every file and directory already present is described as a data entity.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			added, err := c.initCrate(cmd.Context(), dir, opts)
			if err != nil {
				return err
			}
			printSuccess("Created crate in %s", dir)
			printFile(filepath.Join(dir, metadata.FileName))
			if added > 0 {
				printDetail("%d data entities", added)
			}
			printNextStep("Inspect it", "rocrate info "+dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "root dataset name (default: directory name)")
	cmd.Flags().StringVar(&opts.description, "description", "", "root dataset description")
	cmd.Flags().StringVar(&opts.license, "license", "", "license URL, e.g. https://spdx.org/licenses/CC-BY-4.0")
	cmd.Flags().StringVar(&opts.published, "published", time.Now().Format(time.DateOnly), "datePublished (ISO 8601)")
	cmd.Flags().BoolVar(&opts.track, "track", false, "describe the files already in the directory")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing metadata file")
	return cmd
}

func (c *CLI) initCrate(ctx context.Context, dir string, opts initOpts) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, errors.Wrap(errors.ErrCodeIO, err, "create %s", dir)
	}
	metaPath := filepath.Join(dir, metadata.FileName)
	if _, err := os.Stat(metaPath); err == nil && !opts.force {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to replace it)", metaPath)
	}

	cr := crate.New()
	name := opts.name
	if name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeIO, err, "resolve %s", dir)
		}
		name = filepath.Base(abs)
	}
	cr.Root().SetName(name)
	if opts.description != "" {
		cr.Root().SetDescription(opts.description)
	}
	if opts.license != "" {
		cr.Root().SetLicense(opts.license)
	}
	if opts.published != "" {
		cr.Root().SetDatePublished(opts.published)
	}

	added := 0
	if opts.track {
		files, err := reader.Scan(dir, reader.WithIgnore(c.Config.Read.Ignore...))
		if err != nil {
			return 0, err
		}
		cr.SetUntracked(files)
		ids, err := cr.TrackUntracked()
		if err != nil {
			return 0, err
		}
		added = len(ids)
	}

	s := writer.NewFolderStrategy()
	s.Codec.Indent = c.Config.Write.Indent
	if err := writer.New(s, writer.WithLogger(loggerFromContext(ctx))).Write(ctx, cr, dir); err != nil {
		return 0, err
	}
	return added, nil
}
