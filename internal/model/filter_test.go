package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterSelectionMatches(t *testing.T) {
	rec := Record{Segment: "Consumer", Category: "Furniture", Region: "West"}

	tests := []struct {
		name string
		sel  FilterSelection
		want bool
	}{
		{
			name: "all dimensions match",
			sel:  NewFilterSelection([]string{"Consumer"}, []string{"Furniture"}, []string{"West"}),
			want: true,
		},
		{
			name: "region excluded",
			sel:  NewFilterSelection([]string{"Consumer"}, []string{"Furniture"}, []string{"East"}),
			want: false,
		},
		{
			name: "empty segment set matches nothing",
			sel:  NewFilterSelection(nil, []string{"Furniture"}, []string{"West"}),
			want: false,
		},
		{
			name: "zero selection matches nothing",
			sel:  FilterSelection{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sel.Matches(rec))
		})
	}
}

func TestFilterSelectionToggle(t *testing.T) {
	sel := NewFilterSelection([]string{"Consumer"}, []string{"Furniture"}, []string{"West"})

	added := sel.Toggle(DimensionRegion, "East")
	assert.Equal(t, []string{"East", "West"}, added.Regions.Sorted())
	assert.Equal(t, []string{"West"}, sel.Regions.Sorted(), "original selection is untouched")

	removed := added.Toggle(DimensionRegion, "West")
	assert.Equal(t, []string{"East"}, removed.Regions.Sorted())
}

func TestOptionsFor(t *testing.T) {
	records := []Record{
		{Segment: "Corporate", Category: "Technology", Region: "East"},
		{Segment: "Consumer", Category: "Furniture", Region: "West"},
		{Segment: "Consumer", Category: "Technology", Region: "East"},
	}

	opts := OptionsFor(records)

	assert.Equal(t, []string{"Consumer", "Corporate"}, opts.Segments)
	assert.Equal(t, []string{"Furniture", "Technology"}, opts.Values(DimensionCategory))
	assert.Equal(t, []string{"East", "West"}, opts.Regions)

	all := opts.SelectAll()
	for _, r := range records {
		assert.True(t, all.Matches(r))
	}
}

func TestDimensionValue(t *testing.T) {
	rec := Record{Segment: "Consumer", Category: "Furniture", Region: "West"}

	assert.Equal(t, "Consumer", DimensionSegment.Value(rec))
	assert.Equal(t, "Furniture", DimensionCategory.Value(rec))
	assert.Equal(t, "West", DimensionRegion.Value(rec))
	assert.Empty(t, Dimension("market").Value(rec))
}

func TestDescribe(t *testing.T) {
	d, ok := Describe(ViewTopCustomers)
	assert.True(t, ok)
	assert.Equal(t, ChartHorizontalBar, d.Chart)

	_, ok = Describe("nope")
	assert.False(t, ok)
	assert.Len(t, ViewCatalog, 10)
}
