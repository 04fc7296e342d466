package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order. Day-first shapes come before year-first ones,
// and four-digit years before two-digit years.
var dateLayouts = []string{
	"2-1-2006",
	"2/1/2006",
	"2.1.2006",
	"2-1-06",
	"2/1/06",
	"2.1.06",
	"2006-1-2",
	"2006/1/2",
	"2-1-2006 15:04",
	"2/1/2006 15:04",
	"2-1-2006 15:04:05",
	"2/1/2006 15:04:05",
	"2006-1-2 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseDate parses a day-first calendar date in UTC.
// It reports false for empty or unrecognized values.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseNumber parses a decimal measure. Blank cells are zero. Currency
// symbols and thousands separators are ignored. Unparseable or non-finite
// values yield zero and false.
func ParseNumber(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, true
	}
	value = strings.ReplaceAll(value, "$", "")
	value = strings.ReplaceAll(value, ",", "")
	value = strings.TrimSpace(value)

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
