// Package cli implements the rocrate command-line interface.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rocrate/pkg/buildinfo"
	"github.com/matzehuels/rocrate/pkg/cache"
	"github.com/matzehuels/rocrate/pkg/config"
	"github.com/matzehuels/rocrate/pkg/crate"
	"github.com/matzehuels/rocrate/pkg/reader"
	"github.com/matzehuels/rocrate/pkg/validation"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "rocrate"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configFlag string
	configPath string
}

// New creates a CLI with a default logger and default configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "rocrate reads, checks and writes RO-Crate research object packages",
		Long:         `rocrate works with RO-Crates: directories or zip archives described by a ro-crate-metadata.json JSON-LD document. It inspects, validates, converts and visualizes them, and serves a read-only HTTP view of a directory of crates.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFlag, "config", "", "config file (default $"+config.EnvPath+" or $XDG_CONFIG_HOME/rocrate/rocrate.toml)")

	root.AddCommand(c.infoCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.untrackedCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, path, err := config.Load(c.configFlag)
	if err != nil {
		return err
	}
	c.Config, c.configPath = cfg, path
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	return nil
}

// =============================================================================
// Shared Helpers
// =============================================================================

// openCrate reads the crate at location with the configured ignore globs.
// Validation runs only when validate is set; the caller must close the
// returned closer.
func (c *CLI) openCrate(ctx context.Context, location string, validate bool) (*crate.Crate, io.Closer, error) {
	var v validation.Validator = validation.Nop{}
	if validate {
		v = validation.Default()
	}
	return reader.Open(ctx, location,
		reader.WithValidator(v),
		reader.WithLogger(loggerFromContext(ctx)),
		reader.WithIgnore(c.Config.Read.Ignore...))
}

// newCache returns the diagram cache, or a null cache when caching is off
// or no cache directory can be determined.
func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	dir, err := c.Config.CacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// isDir reports whether path is an existing directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
