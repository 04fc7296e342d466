// Package export writes dashboards to spreadsheet and database files.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/superstore-dash/internal/common"
	"github.com/Veraticus/superstore-dash/internal/model"
	"github.com/Veraticus/superstore-dash/internal/storage"
)

// Format names an export target.
type Format string

// Supported formats.
const (
	FormatXLSX   Format = "xlsx"
	FormatSQLite Format = "sqlite"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatXLSX, FormatSQLite:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (want xlsx or sqlite)", common.ErrUnsupportedFormat, s)
	}
}

// Extension returns the conventional file extension for the format.
func (f Format) Extension() string {
	if f == FormatSQLite {
		return ".db"
	}
	return ".xlsx"
}

// Request describes one export.
type Request struct {
	Dashboard model.DashboardView
	Selection model.FilterSelection
	Source    string
	Records   []model.Record
	Format    Format
	Path      string
}

// Result reports what an export wrote.
type Result struct {
	Path       string
	SnapshotID int64
	Sheets     int
}

// Write performs the export described by req.
func Write(ctx context.Context, req Request) (*Result, error) {
	switch req.Format {
	case FormatXLSX:
		return writeXLSXFile(req)
	case FormatSQLite:
		return writeSQLite(ctx, req)
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, req.Format)
	}
}

func writeXLSXFile(req Request) (*Result, error) {
	var sheets int
	err := writeFile(req.Path, func(w io.Writer) error {
		n, err := NewXLSXExporter().Export(req.Dashboard, w)
		sheets = n
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Result{Path: req.Path, Sheets: sheets}, nil
}

// writeFile creates path and fills it with write. A failed write leaves no
// file behind.
func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	err = write(f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close %s: %w", path, closeErr)
	}
	if err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}

// writeSQLite stores the filtered records and a dashboard snapshot.
func writeSQLite(ctx context.Context, req Request) (*Result, error) {
	store, err := storage.NewSQLiteStorage(req.Path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return nil, err
	}

	records := req.Records
	if records == nil {
		records = []model.Record{}
	}
	if err := store.SaveRecords(ctx, req.Source, records); err != nil {
		return nil, err
	}

	id, err := store.SaveSnapshot(ctx, req.Source, req.Selection, req.Dashboard)
	if err != nil {
		return nil, err
	}

	return &Result{Path: req.Path, SnapshotID: id}, nil
}
