package pipeline

import (
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/Veraticus/superstore-dash/internal/model"
	"github.com/Veraticus/superstore-dash/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectAll(records []model.Record) model.FilterSelection {
	return model.OptionsFor(records).SelectAll()
}

func TestAggregate_WorkedExample(t *testing.T) {
	records := testutil.WorkedExample()
	sel := model.NewFilterSelection(
		[]string{"Consumer"},
		[]string{"Furniture"},
		[]string{"West"},
	)

	view := Aggregate(records, sel)

	assert.Equal(t, 2, view.FilteredRecords)
	assert.InDelta(t, 150.0, view.Summary.TotalSales, 1e-9)
	assert.Equal(t, 1, view.Summary.Orders, "A1 should be counted once")
	assert.Equal(t, 1, view.Summary.Customers)

	require.Len(t, view.CategoryPerformance.Rows, 1)
	assert.Equal(t, "Furniture", view.CategoryPerformance.Rows[0].Category)
	assert.InDelta(t, 150.0, view.CategoryPerformance.Rows[0].Sales, 1e-9)

	assert.Equal(t, []float64{150}, view.OrderValues.Values())
}

func TestAggregate_MixedRecords(t *testing.T) {
	records := testutil.MixedRecords(t)
	view := Aggregate(records, selectAll(records))

	t.Run("summary", func(t *testing.T) {
		assert.InDelta(t, 895.0, view.Summary.TotalSales, 1e-9)
		assert.InDelta(t, 38.0, view.Summary.TotalProfit, 1e-9)
		assert.Equal(t, 5, view.Summary.Orders)
		assert.Equal(t, 4, view.Summary.Customers)
	})

	t.Run("monthly sales skip records without an order date", func(t *testing.T) {
		assert.Equal(t, []model.MonthSales{
			{Month: "2024-01", Sales: 150},
			{Month: "2024-02", Sales: 650},
			{Month: "2024-03", Sales: 80},
		}, view.MonthlySales.Rows)
		assert.False(t, view.MonthlySales.Empty)
	})

	t.Run("category performance sorted by sales", func(t *testing.T) {
		require.Len(t, view.CategoryPerformance.Rows, 3)
		assert.Equal(t, "Technology", view.CategoryPerformance.Rows[0].Category)
		assert.InDelta(t, 650.0, view.CategoryPerformance.Rows[0].Sales, 1e-9)
		assert.InDelta(t, 20.0, view.CategoryPerformance.Rows[0].Profit, 1e-9)
		assert.Equal(t, "Furniture", view.CategoryPerformance.Rows[1].Category)
		assert.InDelta(t, 10.0, view.CategoryPerformance.Rows[1].Profit, 1e-9)
		assert.Equal(t, "Office Supplies", view.CategoryPerformance.Rows[2].Category)
	})

	t.Run("sub-category keeps its category", func(t *testing.T) {
		require.NotEmpty(t, view.SubCategorySales.Rows)
		top := view.SubCategorySales.Rows[0]
		assert.Equal(t, "Technology", top.Category)
		assert.Equal(t, "Phones", top.SubCategory)
		assert.Len(t, view.SubCategorySales.Rows, 6)
	})

	t.Run("region sales in first-seen order", func(t *testing.T) {
		assert.Equal(t, []model.RegionSales{
			{Market: "US", Region: "West", Sales: 150},
			{Market: "EU", Region: "Central", Sales: 480},
			{Market: "APAC", Region: "Oceania", Sales: 250},
			{Market: "US", Region: "East", Sales: 15},
		}, view.RegionSales.Rows)
	})

	t.Run("top customers", func(t *testing.T) {
		names := make([]string, len(view.TopCustomers.Rows))
		for i, row := range view.TopCustomers.Rows {
			names[i] = row.CustomerName
		}
		assert.Equal(t, []string{"Bruno", "Chen", "Alice", "Dana"}, names)
	})

	t.Run("order values one per order", func(t *testing.T) {
		assert.Equal(t, []float64{150, 400, 250, 80, 15}, view.OrderValues.Values())
	})

	t.Run("weekday sales", func(t *testing.T) {
		require.Len(t, view.WeekdaySales.Rows, 7)
		got := make(map[string]float64)
		for i, row := range view.WeekdaySales.Rows {
			assert.Equal(t, model.Weekdays[i], row.Weekday)
			got[row.Weekday] = row.Sales
		}
		assert.InDelta(t, 150.0, got["Monday"], 1e-9)
		assert.InDelta(t, 480.0, got["Wednesday"], 1e-9)
		assert.InDelta(t, 250.0, got["Saturday"], 1e-9)
		assert.Zero(t, got["Sunday"])
	})

	t.Run("shipping", func(t *testing.T) {
		assert.Equal(t, []model.DeliverySample{
			{ShipMode: "Standard Class", Days: []int{4, 4}},
			{ShipMode: "First Class", Days: []int{2}},
			{ShipMode: "Same Day", Days: []int{0}},
		}, view.Shipping.DeliveryDays.Rows)

		require.Len(t, view.Shipping.ShippingCost.Rows, 4)
		standard := view.Shipping.ShippingCost.Rows[0]
		assert.Equal(t, "Standard Class", standard.ShipMode)
		assert.InDelta(t, 13.0/3.0, standard.AvgShippingCost, 1e-9)
		assert.Equal(t, 3, standard.Lines)
		assert.Equal(t, "Second Class", view.Shipping.ShippingCost.Rows[3].ShipMode)
	})

	t.Run("discount profit is a projection", func(t *testing.T) {
		require.Len(t, view.DiscountProfit.Rows, len(records))
		assert.Equal(t, model.DiscountProfit{Category: "Technology", Discount: 0.3, Profit: -40},
			view.DiscountProfit.Rows[2])
	})

	t.Run("segment sales", func(t *testing.T) {
		assert.Equal(t, []model.SegmentSales{
			{Segment: "Consumer", Sales: 165},
			{Segment: "Corporate", Sales: 480},
			{Segment: "Home Office", Sales: 250},
		}, view.SegmentSales.Rows)
	})
}

func TestAggregate_CategoryClosure(t *testing.T) {
	records := testutil.MixedRecords(t)
	view := Aggregate(records, selectAll(records))

	var sum float64
	for _, row := range view.CategoryPerformance.Rows {
		sum += row.Sales
	}
	assert.InDelta(t, view.Summary.TotalSales, sum, 1e-9)
}

func TestAggregate_Idempotent(t *testing.T) {
	records := testutil.MixedRecords(t)
	sel := selectAll(records)

	first := Aggregate(records, sel)
	second := Aggregate(records, sel)

	assert.Equal(t, first, second)
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	records := testutil.MixedRecords(t)
	before := slices.Clone(records)

	_ = Aggregate(records, selectAll(records))

	assert.Equal(t, before, records)
}

func TestAggregate_EmptySelection(t *testing.T) {
	records := testutil.MixedRecords(t)
	all := model.OptionsFor(records).SelectAll()

	for _, dim := range model.Dimensions {
		t.Run(string(dim), func(t *testing.T) {
			view := Aggregate(records, all.With(dim, model.NewValueSet()))

			assert.True(t, view.IsEmpty())
			assert.Zero(t, view.Summary)
			for _, v := range view.Views() {
				assert.True(t, v.IsEmpty(), "view %s should be marked empty", v.Descriptor().Name)
			}
			assert.Len(t, view.WeekdaySales.Rows, 7, "weekday view keeps all seven days")
		})
	}

	t.Run("nil sets", func(t *testing.T) {
		view := Aggregate(records, model.FilterSelection{})
		assert.True(t, view.IsEmpty())
	})
}

func TestAggregate_ConcurrentCallers(t *testing.T) {
	records := testutil.MixedRecords(t)
	sel := selectAll(records)
	want := Aggregate(records, sel)

	var wg sync.WaitGroup
	results := make([]model.DashboardView, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Aggregate(records, sel)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestTopCustomers(t *testing.T) {
	t.Run("truncates to ten sorted non-increasing", func(t *testing.T) {
		var records []model.Record
		for i := 0; i < 15; i++ {
			records = append(records, testutil.NewRecord().
				Customer(fmt.Sprintf("C-%02d", i), fmt.Sprintf("Customer %02d", i)).
				Sales(float64(i*10)).
				Build())
		}

		table := TopCustomers(records)

		require.Len(t, table.Rows, TopCustomersLimit)
		assert.Equal(t, "Customer 14", table.Rows[0].CustomerName)
		for i := 1; i < len(table.Rows); i++ {
			assert.GreaterOrEqual(t, table.Rows[i-1].Sales, table.Rows[i].Sales)
		}
	})

	t.Run("ties keep first-seen order", func(t *testing.T) {
		records := []model.Record{
			testutil.NewRecord().Customer("C-1", "Zed").Sales(50).Build(),
			testutil.NewRecord().Customer("C-2", "Amy").Sales(50).Build(),
			testutil.NewRecord().Customer("C-3", "Max").Sales(70).Build(),
		}

		table := TopCustomers(records)

		assert.Equal(t, []model.CustomerSales{
			{CustomerName: "Max", Sales: 70},
			{CustomerName: "Zed", Sales: 50},
			{CustomerName: "Amy", Sales: 50},
		}, table.Rows)
	})
}

func TestWeekdaySales_AlwaysSevenRows(t *testing.T) {
	tests := []struct {
		name      string
		records   []model.Record
		wantEmpty bool
	}{
		{name: "no records", records: nil, wantEmpty: true},
		{
			name:      "only undated records",
			records:   []model.Record{testutil.NewRecord().NoOrderDate().Sales(10).Build()},
			wantEmpty: true,
		},
		{
			name:    "single sunday",
			records: []model.Record{testutil.NewRecord().Ordered(testutil.Date(2024, 1, 7)).Sales(10).Build()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := WeekdaySales(tt.records)

			require.Len(t, table.Rows, 7)
			assert.Equal(t, "Monday", table.Rows[0].Weekday)
			assert.Equal(t, "Sunday", table.Rows[6].Weekday)
			assert.Equal(t, tt.wantEmpty, table.Empty)
		})
	}
}

func TestSortedViews_StableOnTies(t *testing.T) {
	records := []model.Record{
		testutil.NewRecord().Category("Office Supplies", "Paper").Sales(10).Build(),
		testutil.NewRecord().Category("Furniture", "Chairs").Sales(10).Build(),
		testutil.NewRecord().Category("Technology", "Phones").Sales(10).Build(),
	}

	cats := CategoryPerformance(records)
	subs := SubCategorySales(records)

	assert.Equal(t, "Office Supplies", cats.Rows[0].Category)
	assert.Equal(t, "Furniture", cats.Rows[1].Category)
	assert.Equal(t, "Technology", cats.Rows[2].Category)
	assert.Equal(t, "Paper", subs.Rows[0].SubCategory)
	assert.Equal(t, "Phones", subs.Rows[2].SubCategory)
}

func TestGroupAndAggregate(t *testing.T) {
	records := []model.Record{
		testutil.NewRecord().Segment("B").Sales(1).Build(),
		testutil.NewRecord().Segment("A").Sales(2).Build(),
		testutil.NewRecord().Segment("B").Sales(3).Build(),
		testutil.NewRecord().Segment("").Sales(4).Build(),
	}

	groups := groupAndAggregate(records,
		func(r model.Record) (string, bool) { return r.Segment, r.Segment != "" },
		sumSales)

	require.Len(t, groups, 2)
	assert.Equal(t, "B", groups[0].key)
	assert.InDelta(t, 4.0, groups[0].acc, 1e-9)
	assert.Equal(t, "A", groups[1].key)
	assert.InDelta(t, 2.0, groups[1].acc, 1e-9)
}

func TestRunningMean(t *testing.T) {
	_, ok := running{}.mean()
	assert.False(t, ok, "zero samples have no mean")

	avg, ok := running{sum: 9, count: 3}.mean()
	assert.True(t, ok)
	assert.InDelta(t, 3.0, avg, 1e-9)
}
