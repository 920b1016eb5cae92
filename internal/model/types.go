// Package model defines shared data structures.
package model

// Config defines analysis settings.
type Config struct {
	NamePath    string
	Normalize   bool
	LabelPeriod int
	Top         int
	Workers     int
}

// Gender is the raw gender code of a record. Codes other than M and F are kept as-is.
type Gender string

// Known gender codes.
const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// NameRecord is one name/gender/count row of a year file.
type NameRecord struct {
	Name   string
	Gender Gender
	Count  int
}

// YearDataset holds all records of one year file.
type YearDataset struct {
	Year    int
	Records []NameRecord
}

// Label annotates a year with its most common sorted name.
type Label struct {
	Name           string
	Count          int
	OwnShare       float64
	OverallPercent float64
}

// YearSummary captures the sorted-name prevalence of one year.
type YearSummary struct {
	Year       int
	Population int
	Matches    int
	Percent    float64
	Label      *Label
}

// Series is the ordered per-year summary handed to renderers.
// Skipped lists years left out because their population was zero.
type Series struct {
	Points  []YearSummary
	Skipped []int
}

// Years returns the year of every point.
func (s Series) Years() []int {
	out := make([]int, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Year
	}
	return out
}

// Percents returns the percent of every point.
func (s Series) Percents() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Percent
	}
	return out
}

// Labels returns the labeled points in year order.
func (s Series) Labels() []YearSummary {
	var out []YearSummary
	for _, p := range s.Points {
		if p.Label != nil {
			out = append(out, p)
		}
	}
	return out
}
