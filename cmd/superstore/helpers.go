package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Veraticus/superstore-dash/internal/common"
	"github.com/Veraticus/superstore-dash/internal/config"
	"github.com/Veraticus/superstore-dash/internal/dataset"
	"github.com/Veraticus/superstore-dash/internal/model"
	"github.com/Veraticus/superstore-dash/internal/pipeline"
	"github.com/Veraticus/superstore-dash/internal/storage"
	"github.com/spf13/cobra"
)

// session is one loaded source with the selection the command runs against.
type session struct {
	records   *dataset.RecordSet
	selection model.FilterSelection
	dashboard model.DashboardView
}

// loadRecords returns the configured source from the process cache, or the
// records of a SQLite export when --from-db is set.
func (a *app) loadRecords(ctx context.Context) (*dataset.RecordSet, error) {
	if a.fromDB != "" {
		return loadStored(ctx, a.fromDB)
	}

	rs, err := a.cache.Load(ctx, a.settings.Data.Path)
	if err != nil {
		return nil, common.NewUserError(
			fmt.Sprintf("could not load sales data from %s", a.settings.Data.Path), err)
	}
	return rs, nil
}

// selectionFor applies the configured filters to the source's options.
func (a *app) selectionFor(cmd *cobra.Command, rs *dataset.RecordSet) model.FilterSelection {
	if none, _ := cmd.Flags().GetBool("none"); none {
		return model.FilterSelection{}
	}
	return a.settings.Filters.Selection(rs.Options())
}

// load reads the source and aggregates it under the active selection.
func (a *app) load(cmd *cobra.Command) (*session, error) {
	rs, err := a.loadRecords(cmd.Context())
	if err != nil {
		return nil, err
	}

	sel := a.selectionFor(cmd, rs)
	dash := pipeline.Aggregate(rs.Records(), sel)

	common.LogDebug("Dashboard aggregated", common.Fields{
		"source":           rs.Source(),
		"records":          rs.Len(),
		"filtered_records": dash.FilteredRecords,
	})

	return &session{records: rs, selection: sel, dashboard: dash}, nil
}

// loadStored reads back the records saved with the latest snapshot of a
// SQLite export.
func loadStored(ctx context.Context, path string) (*dataset.RecordSet, error) {
	path = config.ExpandPath(path)
	if _, err := os.Stat(path); err != nil {
		return nil, common.NewUserError(fmt.Sprintf("could not open database %s", path), err)
	}

	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("could not open database %s", path), err)
	}
	defer func() { _ = store.Close() }()

	source, err := store.LatestSource(ctx)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("no snapshot stored in %s", path), err)
	}

	records, err := store.LoadRecords(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored records: %w", err)
	}

	common.LogDebug("Loaded stored records", common.Fields{
		"database": path,
		"source":   source,
		"records":  len(records),
	})
	return dataset.NewRecordSet(source, records), nil
}
