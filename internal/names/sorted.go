package names

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/verte-zerg/sortednames/internal/model"
)

// FilterFunc returns true when a name should be kept.
type FilterFunc func(string) bool

// IsSorted reports whether the lowercased letters of name are in non-decreasing
// code point order. The empty name is sorted.
func IsSorted(name string) bool {
	// Casers hold state and are not safe for concurrent use.
	lower := cases.Lower(language.Und).String(name)
	prev := rune(-1)
	for _, r := range lower {
		if r < prev {
			return false
		}
		prev = r
	}
	return true
}

// FilterSorted returns the records whose name is sorted, in input order.
func FilterSorted(records []model.NameRecord) []model.NameRecord {
	return Filter(records, IsSorted)
}

// Filter returns the records whose name passes keep, in input order.
func Filter(records []model.NameRecord, keep FilterFunc) []model.NameRecord {
	out := make([]model.NameRecord, 0, len(records))
	for _, rec := range records {
		if keep(rec.Name) {
			out = append(out, rec)
		}
	}
	return out
}

// Length returns the number of code points in name.
func Length(name string) int {
	return utf8.RuneCountInString(name)
}
