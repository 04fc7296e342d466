package report

import (
	"testing"

	"github.com/Veraticus/superstore-dash/internal/model"
	"github.com/Veraticus/superstore-dash/internal/pipeline"
	"github.com/Veraticus/superstore-dash/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardSheets(t *testing.T) {
	records := testutil.WorkedExample()
	dash := pipeline.Aggregate(records, model.OptionsFor(records).SelectAll())

	sheets := Dashboard(dash)
	// Summary, nine single-sheet views and two shipping sheets.
	require.Len(t, sheets, 12)

	assert.Equal(t, "summary", sheets[0].Name)
	assert.Equal(t, []any{"Total Sales", 350.0}, sheets[0].Rows[0])
	assert.Equal(t, []any{"Orders", 2}, sheets[0].Rows[2])

	monthly := sheets[1]
	assert.Equal(t, string(model.ViewMonthlySales), monthly.Name)
	assert.Equal(t, []string{"Month", "Sales"}, monthly.Headers)
	assert.True(t, monthly.IsMoney(1))
	assert.False(t, monthly.IsMoney(0))

	names := make([]string, len(sheets))
	for i, s := range sheets {
		names[i] = s.Name
	}
	assert.Contains(t, names, "shipping_days")
	assert.Contains(t, names, "shipping_cost")
}

func TestSheetsCategoryRows(t *testing.T) {
	records := testutil.WorkedExample()
	view := pipeline.CategoryPerformance(records)

	sheets := Sheets(view)
	require.Len(t, sheets, 1)
	assert.Equal(t, []any{"Technology", 200.0, view.Rows[0].Profit}, sheets[0].Rows[0])
	assert.Equal(t, []any{"Furniture", 150.0, view.Rows[1].Profit}, sheets[0].Rows[1])
}

func TestSheetsEmptyView(t *testing.T) {
	sheets := Sheets(pipeline.TopCustomers(nil))
	require.Len(t, sheets, 1)
	assert.Empty(t, sheets[0].Rows)
	assert.NotEmpty(t, sheets[0].Headers)
}

func TestQuartiles(t *testing.T) {
	tests := []struct {
		name string
		days []int
		want FiveNumber
	}{
		{name: "empty", days: nil, want: FiveNumber{}},
		{name: "single", days: []int{4}, want: FiveNumber{Min: 4, Q1: 4, Median: 4, Q3: 4, Max: 4}},
		{name: "odd", days: []int{5, 1, 3, 2, 4}, want: FiveNumber{Min: 1, Q1: 2, Median: 3, Q3: 4, Max: 5}},
		{name: "even", days: []int{1, 2, 3, 4}, want: FiveNumber{Min: 1, Q1: 1.75, Median: 2.5, Q3: 3.25, Max: 4}},
		{name: "negative", days: []int{-2, 0, 2}, want: FiveNumber{Min: -2, Q1: -1, Median: 0, Q3: 1, Max: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quartiles(tt.days)
			assert.InDelta(t, tt.want.Min, got.Min, 1e-9)
			assert.InDelta(t, tt.want.Q1, got.Q1, 1e-9)
			assert.InDelta(t, tt.want.Median, got.Median, 1e-9)
			assert.InDelta(t, tt.want.Q3, got.Q3, 1e-9)
			assert.InDelta(t, tt.want.Max, got.Max, 1e-9)
		})
	}
}

func TestHistogram(t *testing.T) {
	t.Run("counts every value", func(t *testing.T) {
		bins := Histogram([]float64{0, 1, 2, 3, 4, 10}, 5)
		require.Len(t, bins, 5)
		counts := make([]int, len(bins))
		for i, b := range bins {
			counts[i] = b.Count
		}
		assert.Equal(t, []int{2, 2, 1, 0, 1}, counts, "maximum falls in the last bin")

		total := 0
		for _, b := range bins {
			total += b.Count
		}
		assert.Equal(t, 6, total)
		assert.InDelta(t, 0.0, bins[0].Lo, 1e-9)
		assert.InDelta(t, 10.0, bins[4].Hi, 1e-9)
	})

	t.Run("constant sample", func(t *testing.T) {
		bins := Histogram([]float64{7, 7, 7}, 10)
		require.Len(t, bins, 1)
		assert.Equal(t, 3, bins[0].Count)
	})

	t.Run("empty sample", func(t *testing.T) {
		assert.Nil(t, Histogram(nil, 10))
	})
}
