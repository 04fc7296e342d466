package model

import (
	"slices"
)

// Dimension names a filterable record attribute.
type Dimension string

// Filterable dimensions.
const (
	DimensionSegment  Dimension = "segment"
	DimensionCategory Dimension = "category"
	DimensionRegion   Dimension = "region"
)

// Dimensions lists the filterable dimensions in display order.
var Dimensions = []Dimension{DimensionSegment, DimensionCategory, DimensionRegion}

// Value returns the record's value for the dimension.
func (d Dimension) Value(r Record) string {
	switch d {
	case DimensionSegment:
		return r.Segment
	case DimensionCategory:
		return r.Category
	case DimensionRegion:
		return r.Region
	default:
		return ""
	}
}

// ValueSet is a set of allowed values for one dimension.
type ValueSet map[string]struct{}

// NewValueSet builds a set from the given values.
func NewValueSet(values ...string) ValueSet {
	set := make(ValueSet, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Has reports whether v is in the set. A nil set contains nothing.
func (s ValueSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the set members in ascending order.
func (s ValueSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// FilterSelection holds the active values per dimension.
// An empty or nil set for a dimension matches no records.
type FilterSelection struct {
	Segments   ValueSet
	Categories ValueSet
	Regions    ValueSet
}

// NewFilterSelection builds a selection from plain value lists.
func NewFilterSelection(segments, categories, regions []string) FilterSelection {
	return FilterSelection{
		Segments:   NewValueSet(segments...),
		Categories: NewValueSet(categories...),
		Regions:    NewValueSet(regions...),
	}
}

// Set returns the value set for a dimension.
func (f FilterSelection) Set(d Dimension) ValueSet {
	switch d {
	case DimensionSegment:
		return f.Segments
	case DimensionCategory:
		return f.Categories
	case DimensionRegion:
		return f.Regions
	default:
		return nil
	}
}

// With returns a copy of the selection with the dimension's set replaced.
func (f FilterSelection) With(d Dimension, set ValueSet) FilterSelection {
	switch d {
	case DimensionSegment:
		f.Segments = set
	case DimensionCategory:
		f.Categories = set
	case DimensionRegion:
		f.Regions = set
	}
	return f
}

// Toggle returns a copy of the selection with value flipped in dimension d.
func (f FilterSelection) Toggle(d Dimension, value string) FilterSelection {
	current := f.Set(d)
	next := make(ValueSet, len(current)+1)
	for v := range current {
		next[v] = struct{}{}
	}
	if next.Has(value) {
		delete(next, value)
	} else {
		next[value] = struct{}{}
	}
	return f.With(d, next)
}

// Matches reports whether the record passes every dimension of the selection.
func (f FilterSelection) Matches(r Record) bool {
	return f.Segments.Has(r.Segment) &&
		f.Categories.Has(r.Category) &&
		f.Regions.Has(r.Region)
}

// FilterOptions lists the distinct values available per dimension.
type FilterOptions struct {
	Segments   []string `json:"segment"`
	Categories []string `json:"category"`
	Regions    []string `json:"region"`
}

// OptionsFor collects the sorted distinct dimension values present in records.
func OptionsFor(records []Record) FilterOptions {
	segments := make(ValueSet)
	categories := make(ValueSet)
	regions := make(ValueSet)
	for _, r := range records {
		segments[r.Segment] = struct{}{}
		categories[r.Category] = struct{}{}
		regions[r.Region] = struct{}{}
	}
	return FilterOptions{
		Segments:   segments.Sorted(),
		Categories: categories.Sorted(),
		Regions:    regions.Sorted(),
	}
}

// Values returns the available values for a dimension.
func (o FilterOptions) Values(d Dimension) []string {
	switch d {
	case DimensionSegment:
		return o.Segments
	case DimensionCategory:
		return o.Categories
	case DimensionRegion:
		return o.Regions
	default:
		return nil
	}
}

// SelectAll returns a selection containing every available value.
func (o FilterOptions) SelectAll() FilterSelection {
	return NewFilterSelection(o.Segments, o.Categories, o.Regions)
}
