package stats

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/verte-zerg/sortednames/internal/model"
	"github.com/verte-zerg/sortednames/internal/names"
)

// Report contains precomputed data for rendering.
type Report struct {
	NamePath string
	Top      []model.NameRecord
	Series   model.Series
	Sources  []names.Source
	Options  Options
}

// BuildReport ranks the representative file at cfg.NamePath and summarizes every
// year file found next to it.
func BuildReport(ctx context.Context, cfg model.Config, opts Options) (Report, error) {
	if cfg.NamePath == "" {
		return Report{}, fmt.Errorf("name path is empty")
	}
	records, err := names.LoadFile(cfg.NamePath)
	if err != nil {
		return Report{}, err
	}
	dir := filepath.Dir(cfg.NamePath)
	sources, err := names.Discover(dir)
	if err != nil {
		return Report{}, err
	}
	if len(sources) == 0 {
		return Report{}, fmt.Errorf("no year files found in %s", dir)
	}
	opts.Normalize = cfg.Normalize
	opts.LabelPeriod = cfg.LabelPeriod
	if cfg.Workers > 0 {
		opts.Workers = cfg.Workers
	}
	series, err := Summarize(ctx, sources, opts)
	if err != nil {
		return Report{}, err
	}
	return Report{
		NamePath: cfg.NamePath,
		Top:      TopNLongestSorted(records, cfg.Top),
		Series:   series,
		Sources:  sources,
		Options:  opts,
	}, nil
}

// Resummarize rebuilds the series of r with changed options, reusing its sources.
func (r Report) Resummarize(ctx context.Context, opts Options) (Report, error) {
	series, err := Summarize(ctx, r.Sources, opts)
	if err != nil {
		return r, err
	}
	r.Series = series
	r.Options = opts
	return r, nil
}
