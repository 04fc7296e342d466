// Package pipeline turns normalized records into the dashboard's aggregate views.
//
// Every function here is pure: inputs are only read, outputs are freshly
// allocated, and nothing is cached between calls. It is safe to aggregate the
// same record slice from many goroutines at once.
package pipeline

import (
	"github.com/Veraticus/superstore-dash/internal/model"
)

// Aggregate filters records by sel and computes the summary metrics and all
// ten views. It never fails: an empty selection yields empty-marked views.
func Aggregate(records []model.Record, sel model.FilterSelection) model.DashboardView {
	filtered := Filter(records, sel)

	return model.DashboardView{
		Summary:             Summarize(filtered),
		MonthlySales:        MonthlySales(filtered),
		CategoryPerformance: CategoryPerformance(filtered),
		SubCategorySales:    SubCategorySales(filtered),
		RegionSales:         RegionSales(filtered),
		TopCustomers:        TopCustomers(filtered),
		OrderValues:         OrderValues(filtered),
		WeekdaySales:        WeekdaySales(filtered),
		Shipping:            Shipping(filtered),
		DiscountProfit:      DiscountProfit(filtered),
		SegmentSales:        SegmentSales(filtered),
		FilteredRecords:     len(filtered),
	}
}
