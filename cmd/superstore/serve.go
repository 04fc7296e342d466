package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/superstore-dash/internal/common"
	"github.com/Veraticus/superstore-dash/internal/config"
	"github.com/Veraticus/superstore-dash/internal/dataset"
	"github.com/Veraticus/superstore-dash/internal/server"
	"github.com/Veraticus/superstore-dash/internal/storage"
	"github.com/spf13/cobra"
)

func serveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Long: `Serve the dashboard as a JSON and PNG API.

Filters are passed as query parameters (segment, category, region), either
repeated or comma separated. A dimension left out of the query uses the
configured default; an empty value selects nothing.

With --db, dashboards can be saved and fetched as snapshots.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if a.fromDB != "" {
				return common.NewUserError("serve reads the CSV source; --from-db is not supported", nil)
			}

			// No progress bar: loads happen inside request handlers.
			cache := dataset.NewCache(dataset.NewLoader(dataset.Options{
				Encoding: a.settings.Data.Encoding,
			}))
			if _, err := cache.Load(ctx, a.settings.Data.Path); err != nil {
				slog.Warn("Sales data not loadable yet; requests will fail until it is",
					"source", a.settings.Data.Path, "error", err)
			}

			cfg := server.Config{
				Data:     cache,
				Renderer: newRenderer(a.settings),
				Path:     a.settings.Data.Path,
				Defaults: a.settings.Filters.Overrides(),
			}

			dbPath, _ := cmd.Flags().GetString("db")
			if dbPath != "" {
				store, err := storage.NewSQLiteStorage(config.ExpandPath(dbPath))
				if err != nil {
					return fmt.Errorf("failed to open snapshot database: %w", err)
				}
				defer func() { _ = store.Close() }()

				if err := store.Migrate(ctx); err != nil {
					return fmt.Errorf("failed to run migrations: %w", err)
				}
				cfg.Snapshots = store
			}

			return server.New(cfg).Serve(ctx, a.settings.Server.Addr)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default :8080)")
	cmd.Flags().String("db", "", "SQLite database for dashboard snapshots")
	bindFlags(a, cmd, map[string]string{
		config.KeyServerAddr: "addr",
	})
	return cmd
}
