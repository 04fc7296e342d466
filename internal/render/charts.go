package render

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/Veraticus/superstore-dash/internal/model"
	"github.com/Veraticus/superstore-dash/internal/report"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNothingToDraw is returned when a view has no chartable data.
var ErrNothingToDraw = errors.New("nothing to draw")

var palette = []drawing.Color{
	drawing.ColorFromHex("4C78A8"),
	drawing.ColorFromHex("F58518"),
	drawing.ColorFromHex("54A24B"),
	drawing.ColorFromHex("E45756"),
	drawing.ColorFromHex("72B7B2"),
	drawing.ColorFromHex("EECA3B"),
	drawing.ColorFromHex("B279A2"),
	drawing.ColorFromHex("FF9DA6"),
	drawing.ColorFromHex("9D755D"),
	drawing.ColorFromHex("BAB0AC"),
}

func color(i int) drawing.Color {
	return palette[i%len(palette)]
}

func (r *Renderer) background() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
}

// valueRange spans values and zero, padded so a flat series still has height.
func valueRange(values ...float64) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	if len(values) > 0 {
		lo = math.Min(0, slices.Min(values))
		hi = math.Max(0, slices.Max(values))
	}
	if lo == hi {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.05
	if lo < 0 {
		lo -= pad
	}
	return &chart.ContinuousRange{Min: lo, Max: hi + pad}
}

// indexRange spans n evenly spaced categories.
func indexRange(n int) *chart.ContinuousRange {
	return &chart.ContinuousRange{Min: -0.5, Max: float64(n) - 0.5}
}

// indexTicks brackets category ticks with blank ticks at the edges of
// indexRange. go-chart takes the X range from the tick extremes when ticks
// are set, so without them a single category has no width.
func indexTicks(n int, ticks []chart.Tick) []chart.Tick {
	out := make([]chart.Tick, 0, len(ticks)+2)
	out = append(out, chart.Tick{Value: -0.5})
	out = append(out, ticks...)
	return append(out, chart.Tick{Value: float64(n) - 0.5})
}

func moneyAxis(v any) string {
	f, ok := v.(float64)
	if !ok {
		return fmt.Sprint(v)
	}
	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}
	switch {
	case f >= 1e6:
		return fmt.Sprintf("%s$%.1fM", sign, f/1e6)
	case f >= 1e3:
		return fmt.Sprintf("%s$%.0fK", sign, f/1e3)
	default:
		return fmt.Sprintf("%s$%.0f", sign, f)
	}
}

// barWidth fits n bars into the canvas.
func (r *Renderer) barWidth(n int) int {
	w := (r.opts.Width - 120) / max(1, 2*n)
	return min(max(w, 4), 80)
}

// stackedYAxisWidth is the room go-chart's stacked bar chart needs for its
// percentage axis, drawn right of the last bar.
const stackedYAxisWidth = 48

// stackedSlot splits the canvas width between n stacked bars, two thirds
// bar and one third spacing.
func (r *Renderer) stackedSlot(n int) (width, spacing int) {
	bg := r.background()
	avail := r.opts.Width - bg.Padding.Left - bg.Padding.Right - stackedYAxisWidth
	slot := max(avail/max(1, n), 3)
	spacing = slot / 3
	return slot - spacing, spacing
}

func (r *Renderer) bars(title string, values []chart.Value, rotate bool) *chart.BarChart {
	heights := make([]float64, len(values))
	for i, v := range values {
		heights[i] = v.Value
	}

	xAxis := chart.Style{}
	if rotate {
		xAxis.TextRotationDegrees = 45
	}

	width := r.barWidth(len(values))
	return &chart.BarChart{
		Title:        title,
		Width:        r.opts.Width,
		Height:       r.opts.Height,
		Background:   r.background(),
		BarWidth:     width,
		BarSpacing:   width / 2,
		UseBaseValue: true,
		BaseValue:    0,
		XAxis:        xAxis,
		YAxis: chart.YAxis{
			ValueFormatter: moneyAxis,
			Range:          valueRange(heights...),
		},
		Bars: values,
	}
}

func (r *Renderer) monthly(view model.Table[model.MonthSales]) *chart.Chart {
	xs := make([]float64, len(view.Rows))
	ys := make([]float64, len(view.Rows))
	step := max(1, len(view.Rows)/12)
	var ticks []chart.Tick
	for i, row := range view.Rows {
		xs[i] = float64(i)
		ys[i] = row.Sales
		if i%step == 0 {
			ticks = append(ticks, chart.Tick{Value: float64(i), Label: row.Month})
		}
	}

	return &chart.Chart{
		Title:      view.Title,
		Width:      r.opts.Width,
		Height:     r.opts.Height,
		Background: r.background(),
		XAxis:      chart.XAxis{Name: "Month", Range: indexRange(len(xs)), Ticks: indexTicks(len(xs), ticks)},
		YAxis:      chart.YAxis{Name: "Sales", ValueFormatter: moneyAxis, Range: valueRange(ys...)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Sales",
				Style:   chart.Style{StrokeColor: color(0), StrokeWidth: 2, DotColor: color(0), DotWidth: 3},
				XValues: xs,
				YValues: ys,
			},
		},
	}
}

func (r *Renderer) categoryPerformance(view model.Table[model.CategoryPerformance]) *chart.BarChart {
	var values []chart.Value
	for _, row := range view.Rows {
		values = append(values,
			chart.Value{Label: row.Category + " sales", Value: row.Sales, Style: chart.Style{FillColor: color(0), StrokeColor: color(0)}},
			chart.Value{Label: row.Category + " profit", Value: row.Profit, Style: chart.Style{FillColor: color(1), StrokeColor: color(1)}},
		)
	}
	return r.bars(view.Title, values, true)
}

func (r *Renderer) subCategories(view model.Table[model.SubCategorySales]) *chart.StackedBarChart {
	var (
		order  []string
		stacks = map[string][]chart.Value{}
	)
	for i, row := range view.Rows {
		if _, ok := stacks[row.Category]; !ok {
			order = append(order, row.Category)
		}
		stacks[row.Category] = append(stacks[row.Category], chart.Value{
			Label: row.SubCategory,
			Value: math.Max(row.Sales, 0),
			Style: chart.Style{FillColor: color(i), StrokeColor: color(i)},
		})
	}

	width, spacing := r.stackedSlot(len(order))
	bars := make([]chart.StackedBar, len(order))
	for i, category := range order {
		bars[i] = chart.StackedBar{Name: category, Width: width, Values: stacks[category]}
	}

	// Word-wrapped labels wider than their slot break into one line per
	// rune and can push the axis off the canvas.
	return &chart.StackedBarChart{
		Title:      view.Title,
		Width:      r.opts.Width,
		Height:     r.opts.Height,
		Background: r.background(),
		BarSpacing: spacing,
		XAxis:      chart.Style{TextWrap: chart.TextWrapNone},
		Bars:       bars,
	}
}

func (r *Renderer) regions(view model.Table[model.RegionSales]) *chart.BarChart {
	markets := map[string]int{}
	values := make([]chart.Value, len(view.Rows))
	for i, row := range view.Rows {
		c, ok := markets[row.Market]
		if !ok {
			c = len(markets)
			markets[row.Market] = c
		}
		values[i] = chart.Value{
			Label: row.Region,
			Value: row.Sales,
			Style: chart.Style{FillColor: color(c), StrokeColor: color(c)},
		}
	}
	return r.bars(view.Title, values, true)
}

func (r *Renderer) topCustomers(view model.Table[model.CustomerSales]) *chart.BarChart {
	values := make([]chart.Value, len(view.Rows))
	for i, row := range view.Rows {
		values[i] = chart.Value{Label: row.CustomerName, Value: row.Sales, Style: chart.Style{FillColor: color(0), StrokeColor: color(0)}}
	}
	return r.bars(view.Title, values, true)
}

func (r *Renderer) orderValues(view model.OrderValues) *chart.BarChart {
	bins := report.Histogram(view.Values(), r.opts.HistogramBins)
	values := make([]chart.Value, len(bins))
	counts := make([]float64, len(bins))
	for i, b := range bins {
		label := ""
		if i%max(1, len(bins)/10) == 0 {
			label = moneyAxis(b.Lo)
		}
		values[i] = chart.Value{Label: label, Value: float64(b.Count), Style: chart.Style{FillColor: color(0), StrokeColor: color(0)}}
		counts[i] = float64(b.Count)
	}

	c := r.bars(view.Title, values, true)
	c.YAxis = chart.YAxis{Name: "Orders", Range: valueRange(counts...)}
	return c
}

func (r *Renderer) weekdays(view model.Table[model.WeekdaySales]) *chart.BarChart {
	values := make([]chart.Value, len(view.Rows))
	for i, row := range view.Rows {
		values[i] = chart.Value{Label: row.Weekday, Value: row.Sales, Style: chart.Style{FillColor: color(i), StrokeColor: color(i)}}
	}
	return r.bars(view.Title, values, false)
}

func (r *Renderer) shipping(view model.ShippingView) []Chart {
	var out []Chart
	if !view.DeliveryDays.Empty {
		out = append(out, Chart{Name: string(view.Name) + "_days", chart: r.deliveryBoxes(view.DeliveryDays)})
	}
	if !view.ShippingCost.Empty {
		values := make([]chart.Value, len(view.ShippingCost.Rows))
		for i, row := range view.ShippingCost.Rows {
			values[i] = chart.Value{Label: row.ShipMode, Value: row.AvgShippingCost, Style: chart.Style{FillColor: color(i), StrokeColor: color(i)}}
		}
		out = append(out, Chart{Name: string(view.Name) + "_cost", chart: r.bars("Avg Shipping Cost by Ship Mode", values, false)})
	}
	return out
}

// deliveryBoxes draws one box and whisker per ship mode from line series.
func (r *Renderer) deliveryBoxes(table model.Table[model.DeliverySample]) *chart.Chart {
	const half = 0.3

	var (
		series []chart.Series
		ticks  []chart.Tick
		ys     []float64
	)
	for i, sample := range table.Rows {
		q := report.Quartiles(sample.Days)
		x := float64(i)
		style := chart.Style{StrokeColor: color(i), StrokeWidth: 2}

		series = append(series,
			chart.ContinuousSeries{
				Name:    sample.ShipMode,
				Style:   style,
				XValues: []float64{x - half, x + half, x + half, x - half, x - half},
				YValues: []float64{q.Q1, q.Q1, q.Q3, q.Q3, q.Q1},
			},
			chart.ContinuousSeries{
				Style:   style,
				XValues: []float64{x - half, x + half},
				YValues: []float64{q.Median, q.Median},
			},
			chart.ContinuousSeries{
				Style:   style,
				XValues: []float64{x, x},
				YValues: []float64{q.Min, q.Q1},
			},
			chart.ContinuousSeries{
				Style:   style,
				XValues: []float64{x, x},
				YValues: []float64{q.Q3, q.Max},
			},
		)
		ticks = append(ticks, chart.Tick{Value: x, Label: sample.ShipMode})
		ys = append(ys, q.Min, q.Max)
	}

	return &chart.Chart{
		Title:      "Delivery Days by Ship Mode",
		Width:      r.opts.Width,
		Height:     r.opts.Height,
		Background: r.background(),
		XAxis:      chart.XAxis{Range: indexRange(len(table.Rows)), Ticks: indexTicks(len(table.Rows), ticks)},
		YAxis:      chart.YAxis{Name: "Days", Range: valueRange(ys...)},
		Series:     series,
	}
}

func (r *Renderer) discountProfit(view model.Table[model.DiscountProfit]) *chart.Chart {
	var (
		order  []string
		points = map[string]*chart.ContinuousSeries{}
		xs, ys []float64
	)
	for _, row := range view.Rows {
		s, ok := points[row.Category]
		if !ok {
			c := color(len(order))
			s = &chart.ContinuousSeries{
				Name:  row.Category,
				Style: chart.Style{StrokeWidth: chart.Disabled, DotWidth: 3, DotColor: c.WithAlpha(160)},
			}
			points[row.Category] = s
			order = append(order, row.Category)
		}
		s.XValues = append(s.XValues, row.Discount)
		s.YValues = append(s.YValues, row.Profit)
		xs = append(xs, row.Discount)
		ys = append(ys, row.Profit)
	}

	series := make([]chart.Series, len(order))
	for i, category := range order {
		series[i] = *points[category]
	}

	c := &chart.Chart{
		Title:      view.Title,
		Width:      r.opts.Width,
		Height:     r.opts.Height,
		Background: r.background(),
		XAxis:      chart.XAxis{Name: "Discount", Range: valueRange(xs...)},
		YAxis:      chart.YAxis{Name: "Profit", ValueFormatter: moneyAxis, Range: valueRange(ys...)},
		Series:     series,
	}
	c.Elements = []chart.Renderable{chart.Legend(c)}
	return c
}

// segments draws a pie of positive segment totals, or nil when none is positive.
func (r *Renderer) segments(view model.Table[model.SegmentSales]) *chart.PieChart {
	var values []chart.Value
	for i, row := range view.Rows {
		if row.Sales <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: row.Segment,
			Value: row.Sales,
			Style: chart.Style{FillColor: color(i), StrokeColor: drawing.ColorWhite},
		})
	}
	if len(values) == 0 {
		return nil
	}

	return &chart.PieChart{
		Title:      view.Title,
		Width:      r.opts.Height,
		Height:     r.opts.Height,
		Background: r.background(),
		Values:     values,
	}
}
