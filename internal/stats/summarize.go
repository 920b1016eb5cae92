package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/sortednames/internal/model"
	"github.com/verte-zerg/sortednames/internal/names"
)

// ErrEmptyPopulation marks a year whose counts sum to zero.
var ErrEmptyPopulation = errors.New("empty population")

// Options controls how year files are summarized.
type Options struct {
	// Normalize sums the counts of sorted names instead of counting matching records.
	Normalize bool
	// LabelPeriod labels every year divisible by it. Zero disables labels.
	LabelPeriod int
	// Workers bounds how many year files load at once.
	Workers int
	Logger  *slog.Logger
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return 1
	}
	return o.Workers
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// SummarizeYear computes the sorted-name prevalence of one year.
// It returns false when the population is zero.
func SummarizeYear(ds model.YearDataset, opts Options) (model.YearSummary, bool) {
	population := 0
	matches := 0
	metric := 0
	var top *model.NameRecord
	for i := range ds.Records {
		rec := &ds.Records[i]
		population += rec.Count
		if !names.IsSorted(rec.Name) {
			continue
		}
		matches++
		if opts.Normalize {
			metric += rec.Count
		} else {
			metric++
		}
		// Strictly greater keeps the first of equal counts.
		if top == nil || rec.Count > top.Count {
			top = rec
		}
	}
	if population == 0 {
		return model.YearSummary{Year: ds.Year}, false
	}

	pct := float64(metric) / float64(population)
	summary := model.YearSummary{
		Year:       ds.Year,
		Population: population,
		Matches:    matches,
		Percent:    pct,
	}
	if top != nil && isLabelYear(ds.Year, opts.LabelPeriod) {
		summary.Label = &model.Label{
			Name:           top.Name,
			Count:          top.Count,
			OwnShare:       float64(top.Count) / float64(population),
			OverallPercent: pct,
		}
	}
	return summary, true
}

func isLabelYear(year, period int) bool {
	return period > 0 && year%period == 0
}

type yearResult struct {
	year    int
	source  string
	summary model.YearSummary
	ok      bool
}

// Summarize loads every source and returns the per-year series in ascending year order.
// Years with zero population are left out and listed in Series.Skipped.
func Summarize(ctx context.Context, sources []names.Source, opts Options) (model.Series, error) {
	logger := opts.logger()
	results := make([]yearResult, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ds, err := names.LoadSource(src)
			if err != nil {
				return fmt.Errorf("failed to load year %d: %w", src.Year, err)
			}
			summary, ok := SummarizeYear(ds, opts)
			results[i] = yearResult{year: src.Year, source: src.Name, summary: summary, ok: ok}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.Series{}, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].year < results[j].year
	})
	series := model.Series{Points: make([]model.YearSummary, 0, len(results))}
	for _, r := range results {
		if !r.ok {
			logger.Warn("skipping year", "year", r.year, "source", r.source, "reason", ErrEmptyPopulation)
			series.Skipped = append(series.Skipped, r.year)
			continue
		}
		logger.Debug("summarized year",
			"year", r.year,
			"population", r.summary.Population,
			"matches", r.summary.Matches,
			"percent", r.summary.Percent,
		)
		series.Points = append(series.Points, r.summary)
	}
	return series, nil
}
