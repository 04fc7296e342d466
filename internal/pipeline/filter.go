package pipeline

import (
	"github.com/Veraticus/superstore-dash/internal/model"
)

// Filter returns the records matching every dimension of sel, in input order.
// The input slice is not modified.
func Filter(records []model.Record, sel model.FilterSelection) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if sel.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Summarize computes the headline metrics over records.
func Summarize(records []model.Record) model.Summary {
	var s model.Summary
	orders := make(map[string]struct{})
	customers := make(map[string]struct{})

	for _, r := range records {
		s.TotalSales += r.Sales
		s.TotalProfit += r.Profit
		orders[r.OrderID] = struct{}{}
		customers[r.CustomerID] = struct{}{}
	}

	s.Orders = len(orders)
	s.Customers = len(customers)
	return s
}
