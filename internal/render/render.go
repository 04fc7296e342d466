// Package render draws dashboard views as PNG charts.
package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/superstore-dash/internal/common"
	"github.com/Veraticus/superstore-dash/internal/model"
	chart "github.com/wcharczuk/go-chart/v2"
)

// renderable is satisfied by every go-chart chart type.
type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// Chart is one drawable figure of a view.
type Chart struct {
	chart renderable
	Name  string
}

// PNG encodes the chart.
func (c Chart) PNG(w io.Writer) error {
	if err := c.chart.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render %s: %w", c.Name, err)
	}
	return nil
}

// Options sizes the charts.
type Options struct {
	Width         int
	Height        int
	HistogramBins int
}

// Renderer turns views into charts.
type Renderer struct {
	opts Options
}

// NewRenderer creates a renderer. Zero options fall back to 1024x576 and 50 bins.
func NewRenderer(opts Options) *Renderer {
	if opts.Width <= 0 {
		opts.Width = 1024
	}
	if opts.Height <= 0 {
		opts.Height = 576
	}
	if opts.HistogramBins <= 0 {
		opts.HistogramBins = 50
	}
	return &Renderer{opts: opts}
}

// Charts builds the figures for a view. Empty views have none.
func (r *Renderer) Charts(v model.View) ([]Chart, error) {
	if v.IsEmpty() {
		return nil, nil
	}

	name := string(v.Descriptor().Name)
	switch view := v.(type) {
	case model.Table[model.MonthSales]:
		return []Chart{{Name: name, chart: r.monthly(view)}}, nil
	case model.Table[model.CategoryPerformance]:
		return []Chart{{Name: name, chart: r.categoryPerformance(view)}}, nil
	case model.Table[model.SubCategorySales]:
		return []Chart{{Name: name, chart: r.subCategories(view)}}, nil
	case model.Table[model.RegionSales]:
		return []Chart{{Name: name, chart: r.regions(view)}}, nil
	case model.Table[model.CustomerSales]:
		return []Chart{{Name: name, chart: r.topCustomers(view)}}, nil
	case model.OrderValues:
		return []Chart{{Name: name, chart: r.orderValues(view)}}, nil
	case model.Table[model.WeekdaySales]:
		return []Chart{{Name: name, chart: r.weekdays(view)}}, nil
	case model.ShippingView:
		return r.shipping(view), nil
	case model.Table[model.DiscountProfit]:
		return []Chart{{Name: name, chart: r.discountProfit(view)}}, nil
	case model.Table[model.SegmentSales]:
		if c := r.segments(view); c != nil {
			return []Chart{{Name: name, chart: c}}, nil
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnknownView, name)
	}
}

// WritePNG renders the first chart of v to w.
func (r *Renderer) WritePNG(v model.View, w io.Writer) error {
	charts, err := r.Charts(v)
	if err != nil {
		return err
	}
	if len(charts) == 0 {
		return fmt.Errorf("%w: %s has no data to draw", ErrNothingToDraw, v.Descriptor().Name)
	}
	return charts[0].PNG(w)
}

// WriteDashboard renders every non-empty view into dir and returns the
// files written.
func (r *Renderer) WriteDashboard(ctx context.Context, dash model.DashboardView, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}

	var written []string
	for _, v := range dash.Views() {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		charts, err := r.Charts(v)
		if err != nil {
			return written, err
		}
		if len(charts) == 0 {
			slog.Debug("Skipping empty view", "view", v.Descriptor().Name)
			continue
		}

		for _, c := range charts {
			var buf bytes.Buffer
			if err := c.PNG(&buf); err != nil {
				return written, err
			}
			path := filepath.Join(dir, c.Name+".png")
			if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
				return written, fmt.Errorf("failed to write %s: %w", path, err)
			}
			written = append(written, path)
		}
	}
	return written, nil
}
