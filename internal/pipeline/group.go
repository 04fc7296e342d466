package pipeline

import (
	"github.com/Veraticus/superstore-dash/internal/model"
)

// group is one key and its folded accumulator.
type group[K comparable, A any] struct {
	key K
	acc A
}

// groupAndAggregate folds records into groups keyed by keyFn. Records for
// which keyFn reports false are skipped. Groups are returned in the order
// their keys were first seen, which makes later stable sorts deterministic.
func groupAndAggregate[K comparable, A any](
	records []model.Record,
	keyFn func(model.Record) (K, bool),
	fold func(A, model.Record) A,
) []group[K, A] {
	index := make(map[K]int)
	var groups []group[K, A]

	for _, r := range records {
		k, ok := keyFn(r)
		if !ok {
			continue
		}
		i, seen := index[k]
		if !seen {
			i = len(groups)
			index[k] = i
			groups = append(groups, group[K, A]{key: k})
		}
		groups[i].acc = fold(groups[i].acc, r)
	}

	return groups
}

// always wraps a key function that never skips a record.
func always[K comparable](fn func(model.Record) K) func(model.Record) (K, bool) {
	return func(r model.Record) (K, bool) {
		return fn(r), true
	}
}

func sumSales(acc float64, r model.Record) float64 {
	return acc + r.Sales
}

// salesAndProfit accumulates both measures for one group.
type salesAndProfit struct {
	sales  float64
	profit float64
}

func sumSalesAndProfit(acc salesAndProfit, r model.Record) salesAndProfit {
	acc.sales += r.Sales
	acc.profit += r.Profit
	return acc
}

// running tracks a sum and a count for computing means.
type running struct {
	sum   float64
	count int
}

// mean returns the arithmetic mean, or false when there were no samples.
func (r running) mean() (float64, bool) {
	if r.count == 0 {
		return 0, false
	}
	return r.sum / float64(r.count), true
}
