package stats

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/verte-zerg/sortednames/internal/model"
	"github.com/verte-zerg/sortednames/internal/names"
)

const sparkChars = " .:-=+*#%@"

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderTopNames prints the ranked sorted names.
func RenderTopNames(w io.Writer, records []model.NameRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No sorted names found.")
		return err
	}
	headers := []string{"#", "Name", "Length", "Gender", "Count"}
	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			rec.Name,
			strconv.Itoa(names.Length(rec.Name)),
			string(rec.Gender),
			strconv.Itoa(rec.Count),
		})
	}
	lines := formatTable(headers, rows, map[int]bool{0: true, 2: true, 4: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// RenderSummary prints totals for the series.
func RenderSummary(w io.Writer, series model.Series) error {
	if len(series.Points) == 0 {
		_, err := fmt.Fprintln(w, "No years found.")
		return err
	}
	first := series.Points[0]
	last := series.Points[len(series.Points)-1]
	peak := first
	for _, p := range series.Points[1:] {
		if p.Percent > peak.Percent {
			peak = p
		}
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Years: %d (%d-%d)\n", len(series.Points), first.Year, last.Year); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Peak: %s in %d\n", FormatPercent(peak.Percent), peak.Year); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Trend: %s\n", Sparkline(series.Percents())); err != nil {
		return err
	}
	if len(series.Skipped) > 0 {
		if _, err := fmt.Fprintf(w, "Skipped: %d\n", len(series.Skipped)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderSeriesTable prints one row per year.
func RenderSeriesTable(w io.Writer, series model.Series) error {
	if len(series.Points) == 0 {
		_, err := fmt.Fprintln(w, "No years found.")
		return err
	}
	lines := formatTable(SeriesHeaders(), SeriesRows(series), map[int]bool{1: true, 2: true, 3: true, 5: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// SeriesHeaders returns the column titles used by RenderSeriesTable.
func SeriesHeaders() []string {
	return []string{"Year", "Population", "Sorted", "Percent", "Label", "Own share"}
}

// SeriesRows returns one formatted row per year.
func SeriesRows(series model.Series) [][]string {
	rows := make([][]string, 0, len(series.Points))
	for _, p := range series.Points {
		label, share := "", ""
		if p.Label != nil {
			label = p.Label.Name
			share = FormatPercent(p.Label.OwnShare)
		}
		rows = append(rows, []string{
			strconv.Itoa(p.Year),
			strconv.Itoa(p.Population),
			strconv.Itoa(p.Matches),
			FormatPercent(p.Percent),
			label,
			share,
		})
	}
	return rows
}
