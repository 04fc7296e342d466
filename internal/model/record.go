package model

import (
	"time"
)

// Record is one sales-order line item after normalization.
// Records are built once by the loader and never modified afterwards.
type Record struct {
	OrderDate    *time.Time `json:"order_date,omitempty"`
	ShipDate     *time.Time `json:"ship_date,omitempty"`
	DeliveryDays *int       `json:"delivery_days,omitempty"` // Ship date minus order date; may be negative
	OrderID      string     `json:"order_id"`
	CustomerID   string     `json:"customer_id"`
	CustomerName string     `json:"customer_name"`
	Segment      string     `json:"segment"`
	Category     string     `json:"category"`
	SubCategory  string     `json:"sub_category"`
	Region       string     `json:"region"`
	Market       string     `json:"market"`
	ShipMode     string     `json:"ship_mode"`
	OrderMonth   string     `json:"order_month,omitempty"`   // "YYYY-MM", empty when order date is absent
	OrderWeekday string     `json:"order_weekday,omitempty"` // Full weekday name, empty when order date is absent
	Sales        float64    `json:"sales"`
	Profit       float64    `json:"profit"`
	Discount     float64    `json:"discount"`
	ShippingCost float64    `json:"shipping_cost"`
}

// MonthLayout formats an order month label.
const MonthLayout = "2006-01"

// Derive fills the calendar and delivery fields from the two timestamps.
func (r *Record) Derive() {
	r.OrderMonth = ""
	r.OrderWeekday = ""
	r.DeliveryDays = nil

	if r.OrderDate == nil {
		return
	}
	r.OrderMonth = r.OrderDate.Format(MonthLayout)
	r.OrderWeekday = r.OrderDate.Weekday().String()

	if r.ShipDate == nil {
		return
	}
	days := DaysBetween(*r.OrderDate, *r.ShipDate)
	r.DeliveryDays = &days
}

// DaysBetween returns the whole number of days from start to end, rounded
// toward negative infinity.
func DaysBetween(start, end time.Time) int {
	d := end.Sub(start)
	days := int(d / (24 * time.Hour))
	if d < 0 && d%(24*time.Hour) != 0 {
		days--
	}
	return days
}

// Weekdays lists weekday names in canonical dashboard order.
var Weekdays = []string{
	time.Monday.String(),
	time.Tuesday.String(),
	time.Wednesday.String(),
	time.Thursday.String(),
	time.Friday.String(),
	time.Saturday.String(),
	time.Sunday.String(),
}
