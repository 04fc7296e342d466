// Package report flattens dashboard views into header/row sheets shared by
// the terminal, spreadsheet and explorer outputs.
package report

import (
	"fmt"
	"slices"

	"github.com/Veraticus/superstore-dash/internal/model"
)

// Sheet is a titled grid of cells. Cells hold string, int or float64 values.
type Sheet struct {
	Name    string
	Title   string
	Headers []string
	Rows    [][]any
	// Money marks the columns holding currency amounts.
	Money []int
}

// IsMoney reports whether column col holds currency amounts.
func (s Sheet) IsMoney(col int) bool {
	return slices.Contains(s.Money, col)
}

// Summary flattens the headline metrics.
func Summary(s model.Summary) Sheet {
	return Sheet{
		Name:    "summary",
		Title:   "Summary",
		Headers: []string{"Metric", "Value"},
		Rows: [][]any{
			{"Total Sales", s.TotalSales},
			{"Total Profit", s.TotalProfit},
			{"Orders", s.Orders},
			{"Customers", s.Customers},
		},
	}
}

// Dashboard flattens the summary and every view, in catalog order.
func Dashboard(d model.DashboardView) []Sheet {
	sheets := []Sheet{Summary(d.Summary)}
	for _, v := range d.Views() {
		sheets = append(sheets, Sheets(v)...)
	}
	return sheets
}

// Sheets flattens a single view. The shipping view yields two sheets.
func Sheets(v model.View) []Sheet {
	desc := v.Descriptor()
	sheet := Sheet{Name: string(desc.Name), Title: desc.Title}

	switch view := v.(type) {
	case model.Table[model.MonthSales]:
		sheet.Headers = []string{"Month", "Sales"}
		sheet.Money = []int{1}
		for _, r := range view.Rows {
			sheet.Rows = append(sheet.Rows, []any{r.Month, r.Sales})
		}
	case model.Table[model.CategoryPerformance]:
		sheet.Headers = []string{"Category", "Sales", "Profit"}
		sheet.Money = []int{1, 2}
		for _, r := range view.Rows {
			sheet.Rows = append(sheet.Rows, []any{r.Category, r.Sales, r.Profit})
		}
	case model.Table[model.SubCategorySales]:
		sheet.Headers = []string{"Category", "Sub-Category", "Sales"}
		sheet.Money = []int{2}
		for _, r := range view.Rows {
			sheet.Rows = append(sheet.Rows, []any{r.Category, r.SubCategory, r.Sales})
		}
	case model.Table[model.RegionSales]:
		sheet.Headers = []string{"Market", "Region", "Sales"}
		sheet.Money = []int{2}
		for _, r := range view.Rows {
			sheet.Rows = append(sheet.Rows, []any{r.Market, r.Region, r.Sales})
		}
	case model.Table[model.CustomerSales]:
		sheet.Headers = []string{"Customer", "Sales"}
		sheet.Money = []int{1}
		for _, r := range view.Rows {
			sheet.Rows = append(sheet.Rows, []any{r.CustomerName, r.Sales})
		}
	case model.OrderValues:
		sheet.Headers = []string{"Order ID", "Sales"}
		sheet.Money = []int{1}
		for _, r := range view.Rows {
			sheet.Rows = append(sheet.Rows, []any{r.OrderID, r.Sales})
		}
	case model.Table[model.WeekdaySales]:
		sheet.Headers = []string{"Weekday", "Sales"}
		sheet.Money = []int{1}
		for _, r := range view.Rows {
			sheet.Rows = append(sheet.Rows, []any{r.Weekday, r.Sales})
		}
	case model.ShippingView:
		return shippingSheets(view)
	case model.Table[model.DiscountProfit]:
		sheet.Headers = []string{"Category", "Discount", "Profit"}
		sheet.Money = []int{2}
		for _, r := range view.Rows {
			sheet.Rows = append(sheet.Rows, []any{r.Category, r.Discount, r.Profit})
		}
	case model.Table[model.SegmentSales]:
		sheet.Headers = []string{"Segment", "Sales"}
		sheet.Money = []int{1}
		for _, r := range view.Rows {
			sheet.Rows = append(sheet.Rows, []any{r.Segment, r.Sales})
		}
	default:
		sheet.Headers = []string{"Value"}
		sheet.Rows = [][]any{{fmt.Sprintf("%v", v)}}
	}

	return []Sheet{sheet}
}

func shippingSheets(view model.ShippingView) []Sheet {
	delivery := Sheet{
		Name:    string(view.Name) + "_days",
		Title:   "Delivery Days by Ship Mode",
		Headers: []string{"Ship Mode", "Orders", "Min", "Median", "Max"},
	}
	for _, s := range view.DeliveryDays.Rows {
		q := Quartiles(s.Days)
		delivery.Rows = append(delivery.Rows, []any{s.ShipMode, len(s.Days), q.Min, q.Median, q.Max})
	}

	cost := Sheet{
		Name:    string(view.Name) + "_cost",
		Title:   "Avg Shipping Cost by Ship Mode",
		Headers: []string{"Ship Mode", "Lines", "Avg Shipping Cost"},
		Money:   []int{2},
	}
	for _, r := range view.ShippingCost.Rows {
		cost.Rows = append(cost.Rows, []any{r.ShipMode, r.Lines, r.AvgShippingCost})
	}

	return []Sheet{delivery, cost}
}
