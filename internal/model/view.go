package model

// ViewName identifies one of the dashboard's aggregate views.
type ViewName string

// Dashboard views, in display order.
const (
	ViewMonthlySales        ViewName = "monthly_sales"
	ViewCategoryPerformance ViewName = "category_performance"
	ViewSubCategorySales    ViewName = "sub_category_sales"
	ViewRegionSales         ViewName = "region_sales"
	ViewTopCustomers        ViewName = "top_customers"
	ViewOrderValues         ViewName = "order_values"
	ViewWeekdaySales        ViewName = "weekday_sales"
	ViewShipping            ViewName = "shipping"
	ViewDiscountProfit      ViewName = "discount_profit"
	ViewSegmentSales        ViewName = "segment_sales"
)

// ChartKind is the chart a presentation layer draws for a view.
type ChartKind string

// Chart kinds.
const (
	ChartLine          ChartKind = "line"
	ChartGroupedBar    ChartKind = "grouped_bar"
	ChartStackedBar    ChartKind = "stacked_bar"
	ChartColoredBar    ChartKind = "colored_bar"
	ChartHorizontalBar ChartKind = "horizontal_bar"
	ChartHistogram     ChartKind = "histogram"
	ChartBar           ChartKind = "bar"
	ChartBoxAndBar     ChartKind = "box_and_bar"
	ChartScatter       ChartKind = "scatter"
	ChartDonut         ChartKind = "donut"
)

// ViewDescriptor describes how a view is titled and drawn.
type ViewDescriptor struct {
	Name  ViewName  `json:"name"`
	Title string    `json:"title"`
	Chart ChartKind `json:"chart"`
}

// ViewCatalog is the fixed view-to-chart mapping.
var ViewCatalog = []ViewDescriptor{
	{Name: ViewMonthlySales, Title: "Monthly Sales Trend", Chart: ChartLine},
	{Name: ViewCategoryPerformance, Title: "Sales & Profit by Category", Chart: ChartGroupedBar},
	{Name: ViewSubCategorySales, Title: "Sales by Sub-Category", Chart: ChartStackedBar},
	{Name: ViewRegionSales, Title: "Sales by Market & Region", Chart: ChartColoredBar},
	{Name: ViewTopCustomers, Title: "Top 10 Customers by Sales", Chart: ChartHorizontalBar},
	{Name: ViewOrderValues, Title: "Order Value Distribution", Chart: ChartHistogram},
	{Name: ViewWeekdaySales, Title: "Sales by Day of Week", Chart: ChartBar},
	{Name: ViewShipping, Title: "Shipping Performance", Chart: ChartBoxAndBar},
	{Name: ViewDiscountProfit, Title: "Discount vs Profit", Chart: ChartScatter},
	{Name: ViewSegmentSales, Title: "Sales by Segment", Chart: ChartDonut},
}

// Describe returns the descriptor for a view name.
func Describe(name ViewName) (ViewDescriptor, bool) {
	for _, d := range ViewCatalog {
		if d.Name == name {
			return d, true
		}
	}
	return ViewDescriptor{}, false
}

// View is implemented by every table in a DashboardView.
type View interface {
	Descriptor() ViewDescriptor
	IsEmpty() bool
}

// Table is a titled, chart-ready aggregate.
// Empty is set when no filtered record contributed to the table.
type Table[T any] struct {
	ViewDescriptor
	Rows  []T  `json:"rows"`
	Empty bool `json:"empty"`
}

// NewTable builds a table for the named view.
func NewTable[T any](name ViewName, rows []T, empty bool) Table[T] {
	desc, _ := Describe(name)
	if rows == nil {
		rows = []T{}
	}
	return Table[T]{ViewDescriptor: desc, Rows: rows, Empty: empty}
}

// Descriptor implements View.
func (t Table[T]) Descriptor() ViewDescriptor { return t.ViewDescriptor }

// IsEmpty implements View.
func (t Table[T]) IsEmpty() bool { return t.Empty }

// MonthSales is one point of the monthly trend.
type MonthSales struct {
	Month string  `json:"month"`
	Sales float64 `json:"sales"`
}

// CategoryPerformance holds sales and profit for a category.
type CategoryPerformance struct {
	Category string  `json:"category"`
	Sales    float64 `json:"sales"`
	Profit   float64 `json:"profit"`
}

// SubCategorySales holds sales for a sub-category within its category.
type SubCategorySales struct {
	Category    string  `json:"category"`
	SubCategory string  `json:"sub_category"`
	Sales       float64 `json:"sales"`
}

// RegionSales holds sales for a region within its market.
type RegionSales struct {
	Market string  `json:"market"`
	Region string  `json:"region"`
	Sales  float64 `json:"sales"`
}

// CustomerSales holds total sales for a customer name.
type CustomerSales struct {
	CustomerName string  `json:"customer_name"`
	Sales        float64 `json:"sales"`
}

// OrderValue is the summed sales of one order.
type OrderValue struct {
	OrderID string  `json:"order_id"`
	Sales   float64 `json:"sales"`
}

// WeekdaySales holds sales for a day of the week.
type WeekdaySales struct {
	Weekday string  `json:"weekday"`
	Sales   float64 `json:"sales"`
}

// DeliverySample holds the delivery-day observations for a ship mode.
type DeliverySample struct {
	ShipMode string `json:"ship_mode"`
	Days     []int  `json:"days"`
}

// ShipModeCost holds the mean shipping cost for a ship mode.
type ShipModeCost struct {
	ShipMode        string  `json:"ship_mode"`
	AvgShippingCost float64 `json:"avg_shipping_cost"`
	Lines           int     `json:"lines"`
}

// DiscountProfit is one scatter point.
type DiscountProfit struct {
	Category string  `json:"category"`
	Discount float64 `json:"discount"`
	Profit   float64 `json:"profit"`
}

// SegmentSales holds sales for a customer segment.
type SegmentSales struct {
	Segment string  `json:"segment"`
	Sales   float64 `json:"sales"`
}

// ShippingView pairs the delivery-time samples with the average shipping cost.
type ShippingView struct {
	ViewDescriptor
	DeliveryDays Table[DeliverySample] `json:"delivery_days"`
	ShippingCost Table[ShipModeCost]   `json:"shipping_cost"`
}

// Descriptor implements View.
func (s ShippingView) Descriptor() ViewDescriptor { return s.ViewDescriptor }

// IsEmpty implements View.
func (s ShippingView) IsEmpty() bool { return s.DeliveryDays.Empty && s.ShippingCost.Empty }

// OrderValues is the per-order sales table.
type OrderValues struct {
	Table[OrderValue]
}

// Values returns the per-order sums for histogram binning.
func (o OrderValues) Values() []float64 {
	out := make([]float64, len(o.Rows))
	for i, row := range o.Rows {
		out[i] = row.Sales
	}
	return out
}

// Summary holds the headline metrics.
type Summary struct {
	TotalSales  float64 `json:"total_sales"`
	TotalProfit float64 `json:"total_profit"`
	Orders      int     `json:"orders"`
	Customers   int     `json:"customers"`
}

// DashboardView bundles the summary metrics and every aggregate view for one
// filter selection.
type DashboardView struct {
	MonthlySales        Table[MonthSales]          `json:"monthly_sales"`
	CategoryPerformance Table[CategoryPerformance] `json:"category_performance"`
	SubCategorySales    Table[SubCategorySales]    `json:"sub_category_sales"`
	RegionSales         Table[RegionSales]         `json:"region_sales"`
	TopCustomers        Table[CustomerSales]       `json:"top_customers"`
	OrderValues         OrderValues                `json:"order_values"`
	WeekdaySales        Table[WeekdaySales]        `json:"weekday_sales"`
	Shipping            ShippingView               `json:"shipping"`
	DiscountProfit      Table[DiscountProfit]      `json:"discount_profit"`
	SegmentSales        Table[SegmentSales]        `json:"segment_sales"`
	Summary             Summary                    `json:"summary"`
	FilteredRecords     int                        `json:"filtered_records"`
}

// Views returns every view in catalog order.
func (d DashboardView) Views() []View {
	return []View{
		d.MonthlySales,
		d.CategoryPerformance,
		d.SubCategorySales,
		d.RegionSales,
		d.TopCustomers,
		d.OrderValues,
		d.WeekdaySales,
		d.Shipping,
		d.DiscountProfit,
		d.SegmentSales,
	}
}

// View returns the named view.
func (d DashboardView) View(name ViewName) (View, bool) {
	for _, v := range d.Views() {
		if v.Descriptor().Name == name {
			return v, true
		}
	}
	return nil, false
}

// IsEmpty reports whether the selection matched no records.
func (d DashboardView) IsEmpty() bool {
	return d.FilteredRecords == 0
}
