package stats

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/sortednames/internal/model"
	"github.com/verte-zerg/sortednames/internal/names"
)

func writeYearFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestBuildReport(t *testing.T) {
	dir := writeYearFiles(t, map[string]string{
		"yob1999.txt": "Amy,F,10\nMary,F,30\n",
		"yob2000.txt": "amy,F,100\nbob,M,50\n",
		"yob2001.txt": "Abbey,F,0\n",
		"notes.txt":   "not a year file",
	})
	cfg := model.Config{
		NamePath:    filepath.Join(dir, "yob2000.txt"),
		Normalize:   true,
		LabelPeriod: 4,
		Top:         5,
		Workers:     2,
	}
	report, err := BuildReport(context.Background(), cfg, Options{Logger: quietLogger()})
	require.NoError(t, err)

	assert.Equal(t, []string{"amy"}, namesOf(report.Top))
	assert.Equal(t, []int{1999, 2000}, report.Series.Years())
	assert.Equal(t, []int{2001}, report.Series.Skipped)
	assert.InDelta(t, 0.25, report.Series.Points[0].Percent, 1e-12)
	assert.InDelta(t, 100.0/150.0, report.Series.Points[1].Percent, 1e-12)
	require.NotNil(t, report.Series.Points[1].Label)
	assert.Equal(t, "amy", report.Series.Points[1].Label.Name)
	assert.Nil(t, report.Series.Points[0].Label)
	assert.Len(t, report.Sources, 3)

	counted, err := report.Resummarize(context.Background(), Options{LabelPeriod: 4, Logger: quietLogger()})
	require.NoError(t, err)
	assert.InDelta(t, 1.0/150.0, counted.Series.Points[1].Percent, 1e-12)
	assert.False(t, counted.Options.Normalize)
	assert.True(t, report.Options.Normalize)
}

func TestBuildReportErrors(t *testing.T) {
	_, err := BuildReport(context.Background(), model.Config{}, Options{})
	require.Error(t, err)

	dir := t.TempDir()
	_, err = BuildReport(context.Background(), model.Config{NamePath: filepath.Join(dir, "yob2000.txt")}, Options{})
	var notFound *names.SourceNotFoundError
	require.ErrorAs(t, err, &notFound)

	bad := writeYearFiles(t, map[string]string{
		"yob2000.txt": "Amy,F,1\n",
		"yob2001.txt": "Amy;F;1\n",
	})
	_, err = BuildReport(context.Background(), model.Config{NamePath: filepath.Join(bad, "yob2000.txt"), Top: 5}, Options{Logger: quietLogger()})
	require.ErrorIs(t, err, names.ErrMalformedRecord)

	other := writeYearFiles(t, map[string]string{"names.txt": "Amy,F,1\n"})
	_, err = BuildReport(context.Background(), model.Config{NamePath: filepath.Join(other, "names.txt"), Top: 5}, Options{})
	require.ErrorContains(t, err, "no year files found")
}
