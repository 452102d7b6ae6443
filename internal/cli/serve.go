package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/rocrate/internal/server"
	"github.com/matzehuels/rocrate/pkg/observability"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		maxCrates int
		noCache   bool
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve the crates below a directory over a read-only HTTP API",
		Long: `Serve every crate folder and zip archive below a directory (default: the
current one). Crates are loaded on first request and kept in memory up to
--max-crates; a crate whose metadata file changes is reloaded.

  GET /api/crates
  GET /api/crate?path=P
  GET /api/crate/summary?path=P
  GET /api/crate/entity?path=P&id=ID
  GET /api/crate/validate?path=P
  GET /api/crate/graph?path=P&format=svg|dot
  GET /metrics`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Serve.Addr
			}
			if !cmd.Flags().Changed("max-crates") {
				maxCrates = c.Config.Serve.MaxCrates
			}

			store, err := server.NewStore(dir, maxCrates, nil, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			diagrams, err := c.newCache(noCache)
			if err != nil {
				return err
			}
			defer diagrams.Close()

			opts := server.Options{
				Cache:  diagrams,
				TTL:    c.Config.Cache.TTL,
				Logger: logger,
			}
			if c.Config.Serve.Metrics && !noMetrics {
				m := server.NewMetrics()
				observability.SetCrateHooks(m)
				observability.SetCacheHooks(m)
				observability.SetHTTPHooks(m)
				defer observability.Reset()
				opts.Metrics = m
			}

			srv := server.New(store, opts)
			printInfo("Serving %s on http://%s", store.Base(), addr)
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().IntVar(&maxCrates, "max-crates", 32, "crates kept loaded in memory")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "do not cache rendered diagrams")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not expose /metrics")
	return cmd
}
