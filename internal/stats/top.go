package stats

import (
	"slices"

	"github.com/verte-zerg/sortednames/internal/model"
	"github.com/verte-zerg/sortednames/internal/names"
)

// DefaultTopN is the number of names TopNLongestSorted callers usually ask for.
const DefaultTopN = 5

// TopNLongestSorted returns up to n sorted names, longest first.
// Names of equal length keep their input order.
func TopNLongestSorted(records []model.NameRecord, n int) []model.NameRecord {
	if n <= 0 {
		return []model.NameRecord{}
	}
	sorted := names.FilterSorted(records)
	slices.SortStableFunc(sorted, func(a, b model.NameRecord) int {
		return names.Length(b.Name) - names.Length(a.Name)
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
