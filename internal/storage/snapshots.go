package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/superstore-dash/internal/model"
)

// Snapshot is a stored dashboard for one filter selection.
type Snapshot struct {
	CreatedAt       time.Time      `json:"created_at"`
	Source          string         `json:"source"`
	Segments        []string       `json:"segments"`
	Categories      []string       `json:"categories"`
	Regions         []string       `json:"regions"`
	Views           []SnapshotView `json:"views"`
	Summary         model.Summary  `json:"summary"`
	ID              int64          `json:"id"`
	FilteredRecords int            `json:"filtered_records"`
}

// Selection rebuilds the filter selection the snapshot was taken with.
func (s *Snapshot) Selection() model.FilterSelection {
	return model.NewFilterSelection(s.Segments, s.Categories, s.Regions)
}

// SnapshotView is one stored view with its rows as JSON.
type SnapshotView struct {
	Name    model.ViewName  `json:"name"`
	Title   string          `json:"title"`
	Chart   model.ChartKind `json:"chart"`
	Payload json.RawMessage `json:"payload"`
	Empty   bool            `json:"empty"`
}

// SaveSnapshot stores the dashboard computed for sel and returns its id.
func (s *SQLiteStorage) SaveSnapshot(ctx context.Context, source string, sel model.FilterSelection, dash model.DashboardView) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	segments, err := json.Marshal(sel.Segments.Sorted())
	if err != nil {
		return 0, fmt.Errorf("failed to marshal segments: %w", err)
	}
	categories, err := json.Marshal(sel.Categories.Sorted())
	if err != nil {
		return 0, fmt.Errorf("failed to marshal categories: %w", err)
	}
	regions, err := json.Marshal(sel.Regions.Sorted())
	if err != nil {
		return 0, fmt.Errorf("failed to marshal regions: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (
			source, segments, categories, regions,
			total_sales, total_profit, orders, customers, filtered_records
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, source, string(segments), string(categories), string(regions),
		dash.Summary.TotalSales, dash.Summary.TotalProfit,
		dash.Summary.Orders, dash.Summary.Customers, dash.FilteredRecords)
	if err != nil {
		return 0, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get snapshot id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_views (snapshot_id, position, name, title, chart, empty, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, v := range dash.Views() {
		desc := v.Descriptor()
		payload, marshalErr := json.Marshal(v)
		if marshalErr != nil {
			return 0, fmt.Errorf("failed to marshal view %s: %w", desc.Name, marshalErr)
		}
		if _, err := stmt.ExecContext(ctx, id, i, string(desc.Name), desc.Title, string(desc.Chart), v.IsEmpty(), string(payload)); err != nil {
			return 0, fmt.Errorf("failed to insert view %s: %w", desc.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return id, nil
}

// GetSnapshot loads a stored snapshot with its views in catalog order.
func (s *SQLiteStorage) GetSnapshot(ctx context.Context, id int64) (*Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var (
		snap                           Snapshot
		segments, categories, regions string
		createdAt                      sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, source, segments, categories, regions,
			total_sales, total_profit, orders, customers, filtered_records, created_at
		FROM snapshots
		WHERE id = ?
	`, id).Scan(&snap.ID, &snap.Source, &segments, &categories, &regions,
		&snap.Summary.TotalSales, &snap.Summary.TotalProfit,
		&snap.Summary.Orders, &snap.Summary.Customers, &snap.FilteredRecords, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	if createdAt.Valid {
		snap.CreatedAt = createdAt.Time
	}

	for _, field := range []struct {
		dst *[]string
		raw string
	}{
		{&snap.Segments, segments},
		{&snap.Categories, categories},
		{&snap.Regions, regions},
	} {
		if err := json.Unmarshal([]byte(field.raw), field.dst); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot selection: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, title, chart, empty, payload
		FROM snapshot_views
		WHERE snapshot_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot views: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			v       SnapshotView
			payload string
		)
		if err := rows.Scan(&v.Name, &v.Title, &v.Chart, &v.Empty, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot view: %w", err)
		}
		v.Payload = json.RawMessage(payload)
		snap.Views = append(snap.Views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot views: %w", err)
	}

	return &snap, nil
}
