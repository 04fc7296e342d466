package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Veraticus/superstore-dash/internal/dataset"
	"github.com/Veraticus/superstore-dash/internal/model"
	"github.com/Veraticus/superstore-dash/internal/render"
	"github.com/Veraticus/superstore-dash/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, withSnapshots bool) *Server {
	t.Helper()
	path := testutil.WriteCSV(t, testutil.MixedRecords(t))

	cfg := Config{
		Data:     dataset.NewCache(dataset.NewLoader(dataset.Options{})),
		Renderer: render.NewRenderer(render.Options{Width: 320, Height: 240, HistogramBins: 5}),
		Path:     path,
	}
	if withSnapshots {
		cfg.Snapshots = testutil.SetupTestDB(t).Storage
	}
	return New(cfg)
}

func get(t *testing.T, s *Server, target string) *http.Response {
	t.Helper()
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, false)

	resp := get(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
}

func TestFilters(t *testing.T) {
	s := newTestServer(t, false)

	resp := get(t, s, "/api/filters")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	opts := decode[model.FilterOptions](t, resp)
	assert.Equal(t, []string{"Consumer", "Corporate", "Home Office"}, opts.Segments)
	assert.Equal(t, []string{"Furniture", "Office Supplies", "Technology"}, opts.Categories)
	assert.Equal(t, []string{"Central", "East", "Oceania", "West"}, opts.Regions)
}

func TestSummaryFilters(t *testing.T) {
	s := newTestServer(t, false)

	type summaryBody struct {
		Summary  model.Summary `json:"summary"`
		Filtered int           `json:"filtered_records"`
	}

	tests := []struct {
		name     string
		query    string
		sales    float64
		filtered int
	}{
		{name: "no parameters selects everything", query: "", sales: 895, filtered: 6},
		{name: "single segment", query: "?segment=Corporate", sales: 480, filtered: 2},
		{name: "repeated values", query: "?segment=Corporate&segment=Home+Office", sales: 730, filtered: 3},
		{name: "comma separated values", query: "?category=Furniture,Technology", sales: 850, filtered: 4},
		{name: "combined dimensions", query: "?segment=Consumer&region=West", sales: 150, filtered: 2},
		{name: "empty parameter selects nothing", query: "?segment=", sales: 0, filtered: 0},
		{name: "unknown value selects nothing", query: "?region=Mars", sales: 0, filtered: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, s, "/api/summary"+tt.query)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			body := decode[summaryBody](t, resp)
			assert.InDelta(t, tt.sales, body.Summary.TotalSales, 1e-9)
			assert.Equal(t, tt.filtered, body.Filtered)
		})
	}
}

func TestDefaultsApplyToMissingParameters(t *testing.T) {
	s := newTestServer(t, false)
	s.cfg.Defaults = model.FilterSelection{Segments: model.NewValueSet("Consumer")}

	resp := get(t, s, "/api/summary")
	body := decode[map[string]json.RawMessage](t, resp)
	var summary model.Summary
	require.NoError(t, json.Unmarshal(body["summary"], &summary))
	assert.InDelta(t, 165.0, summary.TotalSales, 1e-9)

	// An explicit parameter wins over the default.
	resp = get(t, s, "/api/summary?segment=Corporate")
	body = decode[map[string]json.RawMessage](t, resp)
	require.NoError(t, json.Unmarshal(body["summary"], &summary))
	assert.InDelta(t, 480.0, summary.TotalSales, 1e-9)
}

func TestDashboard(t *testing.T) {
	s := newTestServer(t, false)

	resp := get(t, s, "/api/dashboard?category=Technology")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dash struct {
		CategoryPerformance model.Table[model.CategoryPerformance] `json:"category_performance"`
		WeekdaySales        model.Table[model.WeekdaySales]        `json:"weekday_sales"`
		Summary             model.Summary                          `json:"summary"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&dash))

	require.Len(t, dash.CategoryPerformance.Rows, 1)
	assert.Equal(t, "Technology", dash.CategoryPerformance.Rows[0].Category)
	assert.Len(t, dash.WeekdaySales.Rows, 7)
	assert.Equal(t, 2, dash.Summary.Orders)
}

func TestViews(t *testing.T) {
	s := newTestServer(t, false)

	t.Run("catalog", func(t *testing.T) {
		resp := get(t, s, "/api/views")
		catalog := decode[[]model.ViewDescriptor](t, resp)
		assert.Equal(t, model.ViewCatalog, catalog)
	})

	t.Run("single view", func(t *testing.T) {
		resp := get(t, s, "/api/views/top_customers")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		view := decode[model.Table[model.CustomerSales]](t, resp)
		assert.Equal(t, model.ViewTopCustomers, view.Name)
		require.NotEmpty(t, view.Rows)
		assert.Equal(t, "Bruno", view.Rows[0].CustomerName)
	})

	t.Run("empty selection", func(t *testing.T) {
		resp := get(t, s, "/api/views/segment_sales?region=")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		view := decode[model.Table[model.SegmentSales]](t, resp)
		assert.True(t, view.Empty)
		assert.Empty(t, view.Rows)
	})

	t.Run("unknown view", func(t *testing.T) {
		resp := get(t, s, "/api/views/nope")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		body := decode[map[string]string](t, resp)
		assert.Contains(t, body["error"], "nope")
	})
}

func TestCharts(t *testing.T) {
	s := newTestServer(t, false)

	for _, name := range []string{"monthly_sales.png", "shipping", "shipping_cost.png", "segment_sales"} {
		t.Run(name, func(t *testing.T) {
			resp := get(t, s, "/api/charts/"+name)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

			data, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, []byte("\x89PNG"), data[:4])
		})
	}

	t.Run("empty view", func(t *testing.T) {
		resp := get(t, s, "/api/charts/monthly_sales?segment=")
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("unknown chart", func(t *testing.T) {
		resp := get(t, s, "/api/charts/shipping_speed")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestSnapshots(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		s := newTestServer(t, true)

		resp, err := s.App().Test(httptest.NewRequest(http.MethodPost, "/api/snapshots?segment=Consumer", nil), -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		created := decode[struct {
			ID int64 `json:"id"`
		}](t, resp)
		require.Positive(t, created.ID)

		got := get(t, s, "/api/snapshots/1")
		require.Equal(t, http.StatusOK, got.StatusCode)
		snap := decode[struct {
			Segments []string      `json:"segments"`
			Summary  model.Summary `json:"summary"`
		}](t, got)
		assert.Equal(t, []string{"Consumer"}, snap.Segments)
		assert.InDelta(t, 165.0, snap.Summary.TotalSales, 1e-9)
	})

	t.Run("missing snapshot", func(t *testing.T) {
		s := newTestServer(t, true)
		assert.Equal(t, http.StatusNotFound, get(t, s, "/api/snapshots/99").StatusCode)
		assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/snapshots/abc").StatusCode)
	})

	t.Run("not configured", func(t *testing.T) {
		s := newTestServer(t, false)
		assert.Equal(t, http.StatusNotImplemented, get(t, s, "/api/snapshots/1").StatusCode)
	})
}

func TestUnreadableSource(t *testing.T) {
	s := New(Config{
		Data: dataset.NewCache(dataset.NewLoader(dataset.Options{})),
		Path: t.TempDir() + "/missing.csv",
	})

	resp := get(t, s, "/api/dashboard")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	// Health does not touch the source.
	assert.Equal(t, http.StatusOK, get(t, s, "/healthz").StatusCode)
}
