package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Normalized sales records",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS records (
					source TEXT NOT NULL,
					row_num INTEGER NOT NULL,
					order_id TEXT NOT NULL,
					order_date DATE,
					ship_date DATE,
					delivery_days INTEGER,
					customer_id TEXT NOT NULL,
					customer_name TEXT NOT NULL,
					segment TEXT NOT NULL,
					category TEXT NOT NULL,
					sub_category TEXT NOT NULL,
					region TEXT NOT NULL,
					market TEXT NOT NULL,
					ship_mode TEXT NOT NULL,
					order_month TEXT NOT NULL DEFAULT '',
					order_weekday TEXT NOT NULL DEFAULT '',
					sales REAL NOT NULL DEFAULT 0,
					profit REAL NOT NULL DEFAULT 0,
					discount REAL NOT NULL DEFAULT 0,
					shipping_cost REAL NOT NULL DEFAULT 0,
					PRIMARY KEY (source, row_num)
				)`,
				`CREATE INDEX idx_records_filters ON records(source, segment, category, region)`,
			)
		},
	},
	{
		Version:     2,
		Description: "Dashboard snapshots",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS snapshots (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					source TEXT NOT NULL DEFAULT '',
					segments TEXT NOT NULL,
					categories TEXT NOT NULL,
					regions TEXT NOT NULL,
					total_sales REAL NOT NULL,
					total_profit REAL NOT NULL,
					orders INTEGER NOT NULL,
					customers INTEGER NOT NULL,
					filtered_records INTEGER NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS snapshot_views (
					snapshot_id INTEGER NOT NULL,
					position INTEGER NOT NULL,
					name TEXT NOT NULL,
					title TEXT NOT NULL,
					chart TEXT NOT NULL,
					empty BOOLEAN NOT NULL,
					payload TEXT NOT NULL,
					PRIMARY KEY (snapshot_id, name),
					FOREIGN KEY (snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
				)`,
			)
		},
	},
}

func execAll(tx *sql.Tx, queries ...string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// SchemaVersion returns the database's current schema version.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// Migrate runs all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Debug("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
