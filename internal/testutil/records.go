// Package testutil provides test utilities for building sales records,
// writing CSV fixtures and opening throwaway snapshot databases.
package testutil

import (
	"testing"
	"time"

	"github.com/Veraticus/superstore-dash/internal/model"
)

// RecordBuilder provides a fluent interface for constructing test records.
// Every builder starts from a complete, valid line item so tests only spell
// out the fields they care about.
//
// Example:
//
//	rec := testutil.NewRecord().
//		Order("A1").
//		Segment("Consumer").
//		Category("Furniture", "Chairs").
//		Sales(100).
//		Build()
type RecordBuilder struct {
	rec model.Record
}

// NewRecord starts a builder with sensible defaults.
func NewRecord() *RecordBuilder {
	ordered := Date(2024, time.January, 10)
	shipped := Date(2024, time.January, 13)
	return &RecordBuilder{rec: model.Record{
		OrderID:      "CA-2024-0001",
		CustomerID:   "AA-10001",
		CustomerName: "Aaron Abbott",
		Segment:      "Consumer",
		Category:     "Furniture",
		SubCategory:  "Chairs",
		Region:       "West",
		Market:       "US",
		ShipMode:     "Standard Class",
		OrderDate:    &ordered,
		ShipDate:     &shipped,
	}}
}

// Order sets the order id.
func (b *RecordBuilder) Order(id string) *RecordBuilder {
	b.rec.OrderID = id
	return b
}

// Customer sets the customer id and name.
func (b *RecordBuilder) Customer(id, name string) *RecordBuilder {
	b.rec.CustomerID = id
	b.rec.CustomerName = name
	return b
}

// Segment sets the customer segment.
func (b *RecordBuilder) Segment(segment string) *RecordBuilder {
	b.rec.Segment = segment
	return b
}

// Category sets the category and sub-category.
func (b *RecordBuilder) Category(category, subCategory string) *RecordBuilder {
	b.rec.Category = category
	b.rec.SubCategory = subCategory
	return b
}

// Region sets the market and region.
func (b *RecordBuilder) Region(market, region string) *RecordBuilder {
	b.rec.Market = market
	b.rec.Region = region
	return b
}

// ShipMode sets the ship mode.
func (b *RecordBuilder) ShipMode(mode string) *RecordBuilder {
	b.rec.ShipMode = mode
	return b
}

// Sales sets the sales amount.
func (b *RecordBuilder) Sales(v float64) *RecordBuilder {
	b.rec.Sales = v
	return b
}

// Profit sets the profit amount.
func (b *RecordBuilder) Profit(v float64) *RecordBuilder {
	b.rec.Profit = v
	return b
}

// Discount sets the discount.
func (b *RecordBuilder) Discount(v float64) *RecordBuilder {
	b.rec.Discount = v
	return b
}

// ShippingCost sets the shipping cost.
func (b *RecordBuilder) ShippingCost(v float64) *RecordBuilder {
	b.rec.ShippingCost = v
	return b
}

// Ordered sets the order date.
func (b *RecordBuilder) Ordered(t time.Time) *RecordBuilder {
	b.rec.OrderDate = &t
	return b
}

// Shipped sets the ship date.
func (b *RecordBuilder) Shipped(t time.Time) *RecordBuilder {
	b.rec.ShipDate = &t
	return b
}

// NoOrderDate clears the order date, as an unparseable cell would.
func (b *RecordBuilder) NoOrderDate() *RecordBuilder {
	b.rec.OrderDate = nil
	return b
}

// NoShipDate clears the ship date, as an unparseable cell would.
func (b *RecordBuilder) NoShipDate() *RecordBuilder {
	b.rec.ShipDate = nil
	return b
}

// Build derives the calendar fields and returns the record.
func (b *RecordBuilder) Build() model.Record {
	rec := b.rec
	rec.Derive()
	return rec
}

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// WorkedExample returns the three-record set used to document filtering:
// two Consumer/Furniture lines on order A1 and one Corporate/Technology line
// on order A2.
func WorkedExample() []model.Record {
	return []model.Record{
		NewRecord().Order("A1").Customer("C1", "Alice").Segment("Consumer").Category("Furniture", "Chairs").Sales(100).Build(),
		NewRecord().Order("A1").Customer("C1", "Alice").Segment("Consumer").Category("Furniture", "Tables").Sales(50).Build(),
		NewRecord().Order("A2").Customer("C2", "Bob").Segment("Corporate").Category("Technology", "Phones").Sales(200).Build(),
	}
}

// MixedRecords returns a small dataset spanning several segments, categories,
// regions, ship modes, months and weekdays.
func MixedRecords(t *testing.T) []model.Record {
	t.Helper()
	return []model.Record{
		NewRecord().Order("O-1").Customer("C-1", "Alice").Segment("Consumer").Category("Furniture", "Chairs").
			Region("US", "West").ShipMode("Standard Class").Sales(120).Profit(20).Discount(0).ShippingCost(10).
			Ordered(Date(2024, time.January, 1)).Shipped(Date(2024, time.January, 5)).Build(),
		NewRecord().Order("O-1").Customer("C-1", "Alice").Segment("Consumer").Category("Office Supplies", "Paper").
			Region("US", "West").ShipMode("Standard Class").Sales(30).Profit(5).Discount(0.1).ShippingCost(2).
			Ordered(Date(2024, time.January, 1)).Shipped(Date(2024, time.January, 5)).Build(),
		NewRecord().Order("O-2").Customer("C-2", "Bruno").Segment("Corporate").Category("Technology", "Phones").
			Region("EU", "Central").ShipMode("First Class").Sales(400).Profit(-40).Discount(0.3).ShippingCost(35).
			Ordered(Date(2024, time.February, 14)).Shipped(Date(2024, time.February, 16)).Build(),
		NewRecord().Order("O-3").Customer("C-3", "Chen").Segment("Home Office").Category("Technology", "Copiers").
			Region("APAC", "Oceania").ShipMode("Same Day").Sales(250).Profit(60).Discount(0).ShippingCost(50).
			Ordered(Date(2024, time.February, 17)).Shipped(Date(2024, time.February, 17)).Build(),
		NewRecord().Order("O-4").Customer("C-2", "Bruno").Segment("Corporate").Category("Furniture", "Tables").
			Region("EU", "Central").ShipMode("Second Class").Sales(80).Profit(-10).Discount(0.2).ShippingCost(8).
			Ordered(Date(2024, time.March, 6)).NoShipDate().Build(),
		NewRecord().Order("O-5").Customer("C-4", "Dana").Segment("Consumer").Category("Office Supplies", "Binders").
			Region("US", "East").ShipMode("Standard Class").Sales(15).Profit(3).Discount(0).ShippingCost(1).
			NoOrderDate().Shipped(Date(2024, time.March, 9)).Build(),
	}
}
