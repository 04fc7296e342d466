package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/Veraticus/superstore-dash/internal/model"
)

// Header is the column layout WriteCSV produces, with a leading Row ID column
// the loader ignores.
var Header = []string{
	"Row ID", "Order ID", "Order Date", "Ship Date", "Ship Mode", "Customer ID",
	"Customer Name", "Segment", "Market", "Region", "Category", "Sub-Category",
	"Sales", "Discount", "Profit", "Shipping Cost",
}

// WriteCSV writes records to a temporary CSV file using day-first dates and
// returns its path. A nil date is written as an unparseable cell.
func WriteCSV(t *testing.T, records []model.Record) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "superstore.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		t.Fatalf("failed to write header: %v", err)
	}
	for i, r := range records {
		row := []string{
			strconv.Itoa(i + 1),
			r.OrderID,
			formatDate(r.OrderDate),
			formatDate(r.ShipDate),
			r.ShipMode,
			r.CustomerID,
			r.CustomerName,
			r.Segment,
			r.Market,
			r.Region,
			r.Category,
			r.SubCategory,
			strconv.FormatFloat(r.Sales, 'f', -1, 64),
			strconv.FormatFloat(r.Discount, 'f', -1, 64),
			strconv.FormatFloat(r.Profit, 'f', -1, 64),
			strconv.FormatFloat(r.ShippingCost, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			t.Fatalf("failed to write row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("failed to flush fixture: %v", err)
	}
	return path
}

// WriteFile writes raw bytes to a temporary file and returns its path.
func WriteFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "not a date"
	}
	return t.Format("02-01-2006")
}
