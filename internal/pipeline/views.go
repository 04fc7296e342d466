package pipeline

import (
	"cmp"
	"slices"

	"github.com/Veraticus/superstore-dash/internal/model"
)

// TopCustomersLimit caps the top customers view.
const TopCustomersLimit = 10

// bySalesDesc orders rows by descending sales.
func bySalesDesc[T any](sales func(T) float64) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(sales(b), sales(a))
	}
}

// MonthlySales sums sales per order month, oldest month first. Records
// without an order date do not contribute.
func MonthlySales(records []model.Record) model.Table[model.MonthSales] {
	groups := groupAndAggregate(records,
		func(r model.Record) (string, bool) { return r.OrderMonth, r.OrderMonth != "" },
		sumSales)

	rows := make([]model.MonthSales, len(groups))
	for i, g := range groups {
		rows[i] = model.MonthSales{Month: g.key, Sales: g.acc}
	}
	slices.SortStableFunc(rows, func(a, b model.MonthSales) int {
		return cmp.Compare(a.Month, b.Month)
	})

	return model.NewTable(model.ViewMonthlySales, rows, len(rows) == 0)
}

// CategoryPerformance sums sales and profit per category, best seller first.
func CategoryPerformance(records []model.Record) model.Table[model.CategoryPerformance] {
	groups := groupAndAggregate(records,
		always(func(r model.Record) string { return r.Category }),
		sumSalesAndProfit)

	rows := make([]model.CategoryPerformance, len(groups))
	for i, g := range groups {
		rows[i] = model.CategoryPerformance{Category: g.key, Sales: g.acc.sales, Profit: g.acc.profit}
	}
	slices.SortStableFunc(rows, bySalesDesc(func(r model.CategoryPerformance) float64 { return r.Sales }))

	return model.NewTable(model.ViewCategoryPerformance, rows, len(rows) == 0)
}

// SubCategorySales sums sales per (category, sub-category), best seller first.
func SubCategorySales(records []model.Record) model.Table[model.SubCategorySales] {
	type key struct{ category, subCategory string }
	groups := groupAndAggregate(records,
		always(func(r model.Record) key { return key{r.Category, r.SubCategory} }),
		sumSales)

	rows := make([]model.SubCategorySales, len(groups))
	for i, g := range groups {
		rows[i] = model.SubCategorySales{Category: g.key.category, SubCategory: g.key.subCategory, Sales: g.acc}
	}
	slices.SortStableFunc(rows, bySalesDesc(func(r model.SubCategorySales) float64 { return r.Sales }))

	return model.NewTable(model.ViewSubCategorySales, rows, len(rows) == 0)
}

// RegionSales sums sales per (market, region) in first-seen order.
func RegionSales(records []model.Record) model.Table[model.RegionSales] {
	type key struct{ market, region string }
	groups := groupAndAggregate(records,
		always(func(r model.Record) key { return key{r.Market, r.Region} }),
		sumSales)

	rows := make([]model.RegionSales, len(groups))
	for i, g := range groups {
		rows[i] = model.RegionSales{Market: g.key.market, Region: g.key.region, Sales: g.acc}
	}

	return model.NewTable(model.ViewRegionSales, rows, len(rows) == 0)
}

// TopCustomers sums sales per customer name and keeps the ten biggest.
// Equal totals keep the order in which customers first appeared.
func TopCustomers(records []model.Record) model.Table[model.CustomerSales] {
	groups := groupAndAggregate(records,
		always(func(r model.Record) string { return r.CustomerName }),
		sumSales)

	rows := make([]model.CustomerSales, len(groups))
	for i, g := range groups {
		rows[i] = model.CustomerSales{CustomerName: g.key, Sales: g.acc}
	}
	slices.SortStableFunc(rows, bySalesDesc(func(r model.CustomerSales) float64 { return r.Sales }))
	if len(rows) > TopCustomersLimit {
		rows = rows[:TopCustomersLimit:TopCustomersLimit]
	}

	return model.NewTable(model.ViewTopCustomers, rows, len(rows) == 0)
}

// OrderValues sums sales per distinct order id.
func OrderValues(records []model.Record) model.OrderValues {
	groups := groupAndAggregate(records,
		always(func(r model.Record) string { return r.OrderID }),
		sumSales)

	rows := make([]model.OrderValue, len(groups))
	for i, g := range groups {
		rows[i] = model.OrderValue{OrderID: g.key, Sales: g.acc}
	}

	return model.OrderValues{Table: model.NewTable(model.ViewOrderValues, rows, len(rows) == 0)}
}

// WeekdaySales sums sales per order weekday. The result always holds seven
// rows, Monday through Sunday, with zero for days nothing was ordered on.
func WeekdaySales(records []model.Record) model.Table[model.WeekdaySales] {
	groups := groupAndAggregate(records,
		func(r model.Record) (string, bool) { return r.OrderWeekday, r.OrderWeekday != "" },
		sumSales)

	totals := make(map[string]float64, len(groups))
	for _, g := range groups {
		totals[g.key] = g.acc
	}

	rows := make([]model.WeekdaySales, len(model.Weekdays))
	for i, day := range model.Weekdays {
		rows[i] = model.WeekdaySales{Weekday: day, Sales: totals[day]}
	}

	return model.NewTable(model.ViewWeekdaySales, rows, len(groups) == 0)
}

// Shipping collects delivery-day samples and mean shipping cost per ship mode.
func Shipping(records []model.Record) model.ShippingView {
	delivery := groupAndAggregate(records,
		func(r model.Record) (string, bool) { return r.ShipMode, r.DeliveryDays != nil },
		func(days []int, r model.Record) []int { return append(days, *r.DeliveryDays) })

	samples := make([]model.DeliverySample, len(delivery))
	for i, g := range delivery {
		samples[i] = model.DeliverySample{ShipMode: g.key, Days: g.acc}
	}

	costs := groupAndAggregate(records,
		always(func(r model.Record) string { return r.ShipMode }),
		func(acc running, r model.Record) running {
			acc.sum += r.ShippingCost
			acc.count++
			return acc
		})

	rows := make([]model.ShipModeCost, 0, len(costs))
	for _, g := range costs {
		avg, ok := g.acc.mean()
		if !ok {
			continue
		}
		rows = append(rows, model.ShipModeCost{ShipMode: g.key, AvgShippingCost: avg, Lines: g.acc.count})
	}

	desc, _ := model.Describe(model.ViewShipping)
	return model.ShippingView{
		ViewDescriptor: desc,
		DeliveryDays:   model.NewTable(model.ViewShipping, samples, len(samples) == 0),
		ShippingCost:   model.NewTable(model.ViewShipping, rows, len(rows) == 0),
	}
}

// DiscountProfit projects each record onto its (discount, profit, category).
func DiscountProfit(records []model.Record) model.Table[model.DiscountProfit] {
	rows := make([]model.DiscountProfit, len(records))
	for i, r := range records {
		rows[i] = model.DiscountProfit{Category: r.Category, Discount: r.Discount, Profit: r.Profit}
	}

	return model.NewTable(model.ViewDiscountProfit, rows, len(rows) == 0)
}

// SegmentSales sums sales per segment in first-seen order.
func SegmentSales(records []model.Record) model.Table[model.SegmentSales] {
	groups := groupAndAggregate(records,
		always(func(r model.Record) string { return r.Segment }),
		sumSales)

	rows := make([]model.SegmentSales, len(groups))
	for i, g := range groups {
		rows[i] = model.SegmentSales{Segment: g.key, Sales: g.acc}
	}

	return model.NewTable(model.ViewSegmentSales, rows, len(rows) == 0)
}
