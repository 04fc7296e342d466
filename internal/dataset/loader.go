// Package dataset loads and normalizes the sales CSV into an immutable record set.
package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/superstore-dash/internal/common"
	"github.com/Veraticus/superstore-dash/internal/model"
	"github.com/schollz/progressbar/v3"
)

// Column names expected in the source header.
const (
	ColOrderID      = "Order ID"
	ColOrderDate    = "Order Date"
	ColShipDate     = "Ship Date"
	ColCustomerID   = "Customer ID"
	ColCustomerName = "Customer Name"
	ColSegment      = "Segment"
	ColCategory     = "Category"
	ColSubCategory  = "Sub-Category"
	ColRegion       = "Region"
	ColMarket       = "Market"
	ColShipMode     = "Ship Mode"
	ColSales        = "Sales"
	ColProfit       = "Profit"
	ColDiscount     = "Discount"
	ColShippingCost = "Shipping Cost"
)

// RequiredColumns lists the header columns a source must provide.
var RequiredColumns = []string{
	ColOrderID, ColOrderDate, ColShipDate, ColCustomerID, ColCustomerName,
	ColSegment, ColCategory, ColSubCategory, ColRegion, ColMarket, ColShipMode,
	ColSales, ColProfit, ColDiscount, ColShippingCost,
}

// Options controls how sources are read.
type Options struct {
	Encoding Encoding
	// Progress shows a byte progress bar on stderr while the file is read.
	Progress bool
}

// LoadStats counts the cells recovered during normalization.
type LoadStats struct {
	Rows          int `json:"rows"`
	BadOrderDates int `json:"bad_order_dates"`
	BadShipDates  int `json:"bad_ship_dates"`
	BadNumbers    int `json:"bad_numbers"`
}

// Loader parses sales sources into record sets.
type Loader struct {
	opts Options
}

// NewLoader creates a loader.
func NewLoader(opts Options) *Loader {
	if opts.Encoding == "" {
		opts.Encoding = EncodingAuto
	}
	return &Loader{opts: opts}
}

// Load reads and normalizes the file at path.
func (l *Loader) Load(ctx context.Context, path string) (*RecordSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrSourceUnreadable, path, err)
	}
	defer func() { _ = f.Close() }()

	var reader io.Reader = f
	if l.opts.Progress {
		info, statErr := f.Stat()
		if statErr != nil {
			return nil, fmt.Errorf("%w: %s: %w", common.ErrSourceUnreadable, path, statErr)
		}
		bar := progressbar.DefaultBytes(info.Size(), "loading "+filepath.Base(path))
		pr := progressbar.NewReader(f, bar)
		reader = &pr
		defer func() { _ = bar.Finish() }()
	}

	rs, err := l.Read(reader, path)
	if err != nil {
		return nil, err
	}

	stats := rs.Stats()
	slog.Info("Loaded sales data",
		"source", path,
		"rows", stats.Rows,
		"bad_order_dates", stats.BadOrderDates,
		"bad_ship_dates", stats.BadShipDates,
		"bad_numbers", stats.BadNumbers)

	return rs, nil
}

// Read parses an open source. The source name is only used for reporting.
func (l *Loader) Read(r io.Reader, source string) (*RecordSet, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrSourceUnreadable, source, err)
	}

	data, err := decode(raw, l.opts.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrSourceUnreadable, source, err)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: missing header row", common.ErrSourceUnreadable, source)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrSourceUnreadable, source, err)
	}

	cols, err := indexColumns(header)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrSourceUnreadable, source, err)
	}

	var (
		records []model.Record
		stats   LoadStats
	)
	for {
		row, readErr := cr.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("%w: %s: %w", common.ErrSourceUnreadable, source, readErr)
		}
		records = append(records, cols.record(row, &stats))
	}
	stats.Rows = len(records)

	return newRecordSet(source, records, stats), nil
}

// columns maps required column names to their position in a row.
type columns map[string]int

func indexColumns(header []string) (columns, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		key := normalizeHeader(name)
		if _, dup := positions[key]; !dup {
			positions[key] = i
		}
	}

	cols := make(columns, len(RequiredColumns))
	var missing []string
	for _, name := range RequiredColumns {
		pos, ok := positions[normalizeHeader(name)]
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols[name] = pos
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func normalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.ToLower(strings.TrimSpace(name))
}

// cell returns the trimmed value of a column, or "" when the row is short.
func (c columns) cell(row []string, name string) string {
	pos := c[name]
	if pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}

func (c columns) record(row []string, stats *LoadStats) model.Record {
	rec := model.Record{
		OrderID:      c.cell(row, ColOrderID),
		CustomerID:   c.cell(row, ColCustomerID),
		CustomerName: c.cell(row, ColCustomerName),
		Segment:      c.cell(row, ColSegment),
		Category:     c.cell(row, ColCategory),
		SubCategory:  c.cell(row, ColSubCategory),
		Region:       c.cell(row, ColRegion),
		Market:       c.cell(row, ColMarket),
		ShipMode:     c.cell(row, ColShipMode),
	}

	if t, ok := ParseDate(c.cell(row, ColOrderDate)); ok {
		rec.OrderDate = &t
	} else {
		stats.BadOrderDates++
	}
	if t, ok := ParseDate(c.cell(row, ColShipDate)); ok {
		rec.ShipDate = &t
	} else {
		stats.BadShipDates++
	}

	measures := []struct {
		dst  *float64
		name string
	}{
		{&rec.Sales, ColSales},
		{&rec.Profit, ColProfit},
		{&rec.Discount, ColDiscount},
		{&rec.ShippingCost, ColShippingCost},
	}
	for _, m := range measures {
		v, ok := ParseNumber(c.cell(row, m.name))
		if !ok {
			stats.BadNumbers++
		}
		*m.dst = v
	}

	rec.Derive()
	return rec
}
