package dataset

import (
	"github.com/Veraticus/superstore-dash/internal/model"
)

// RecordSet is the immutable collection of records loaded from one source.
type RecordSet struct {
	source  string
	records []model.Record
	options model.FilterOptions
	stats   LoadStats
}

func newRecordSet(source string, records []model.Record, stats LoadStats) *RecordSet {
	return &RecordSet{
		source:  source,
		records: records,
		stats:   stats,
		options: model.OptionsFor(records),
	}
}

// NewRecordSet wraps already-normalized records.
func NewRecordSet(source string, records []model.Record) *RecordSet {
	return newRecordSet(source, records, LoadStats{Rows: len(records)})
}

// Source returns the path the set was loaded from.
func (s *RecordSet) Source() string { return s.source }

// Len returns the number of records.
func (s *RecordSet) Len() int { return len(s.records) }

// Records returns the records in input order. The slice is shared and must
// be treated as read-only; its capacity is clipped so appends reallocate.
func (s *RecordSet) Records() []model.Record {
	return s.records[:len(s.records):len(s.records)]
}

// Stats returns the load statistics.
func (s *RecordSet) Stats() LoadStats { return s.stats }

// Options returns the distinct filter values present in the set.
func (s *RecordSet) Options() model.FilterOptions { return s.options }
