package names

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/sortednames/internal/model"
)

func TestLoadPreservesFileOrder(t *testing.T) {
	input := "Mary,F,7065\nAnna,F,2604\nJohn,M,9655\n"
	records, err := Load(strings.NewReader(input), "yob1880.txt")
	require.NoError(t, err)
	require.Equal(t, []model.NameRecord{
		{Name: "Mary", Gender: model.GenderFemale, Count: 7065},
		{Name: "Anna", Gender: model.GenderFemale, Count: 2604},
		{Name: "John", Gender: model.GenderMale, Count: 9655},
	}, records)
}

func TestLoadHandlesCRLFAndMissingFinalNewline(t *testing.T) {
	records, err := Load(strings.NewReader("Amy,F,3\r\nBob,M,0"), "")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 3, records[0].Count)
	assert.Equal(t, "Bob", records[1].Name)
	assert.Equal(t, 0, records[1].Count)
}

func TestLoadSkipsTrailingBlankLines(t *testing.T) {
	records, err := Load(strings.NewReader("Amy,F,3\n\n\n  \n"), "")
	require.NoError(t, err)
	require.Len(t, records, 1)

	records, err = Load(strings.NewReader("Amy,F,100\n   \n"), "")
	require.NoError(t, err)
	require.Len(t, records, 1)

	records, err = Load(strings.NewReader("Amy,F,100\n\t\r\n\n"), "")
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestLoadWhitespaceLineEndsStream(t *testing.T) {
	_, err := Load(strings.NewReader("Amy,F,3\n  \nBob,M,2\n"), "yob2000.txt")
	var mre *MalformedRecordError
	require.ErrorAs(t, err, &mre)
	assert.Equal(t, 3, mre.Line)
	assert.Equal(t, "record after blank line", mre.Reason)
}

func TestLoadRejectsPopulationOverflow(t *testing.T) {
	input := "Amy,F,9000000000000000000\nBob,M,9000000000000000000\n"
	_, err := Load(strings.NewReader(input), "yob2000.txt")
	require.ErrorIs(t, err, ErrMalformedRecord)
	var mre *MalformedRecordError
	require.ErrorAs(t, err, &mre)
	assert.Equal(t, 2, mre.Line)
	assert.Equal(t, "population overflows int", mre.Reason)
}

func TestLoadRejectsOverlongLine(t *testing.T) {
	input := "Amy,F,3\n" + strings.Repeat("a", MaxLineLength+1) + ",F,1\n"
	_, err := Load(strings.NewReader(input), "yob2000.txt")
	require.ErrorIs(t, err, ErrMalformedRecord)
	var mre *MalformedRecordError
	require.ErrorAs(t, err, &mre)
	assert.Equal(t, 2, mre.Line)
}

func TestLoadAcceptsLongNames(t *testing.T) {
	name := strings.Repeat("a", 70000)
	records, err := Load(strings.NewReader(name+",F,1\n"), "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, name, records[0].Name)
}

func TestLoadRejectsRecordAfterBlankLine(t *testing.T) {
	_, err := Load(strings.NewReader("Amy,F,3\n\nBob,M,2\n"), "yob2000.txt")
	var mre *MalformedRecordError
	require.ErrorAs(t, err, &mre)
	assert.Equal(t, 3, mre.Line)
	assert.Equal(t, "Bob,M,2", mre.Content)
}

func TestLoadEmptyInput(t *testing.T) {
	records, err := Load(strings.NewReader(""), "")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadRejectsMalformedLines(t *testing.T) {
	cases := map[string]string{
		"two fields":      "Amy,F",
		"four fields":     "Amy,F,3,x",
		"no commas":       "Amy F 3",
		"empty name":      ",F,3",
		"empty gender":    "Amy,,3",
		"spaced gender":   "Amy,F M,3",
		"plus sign":       "Amy,F,+3",
		"negative":        "Amy,F,-3",
		"not a number":    "Amy,F,three",
		"float":           "Amy,F,3.0",
		"empty count":     "Amy,F,",
		"padded count":    "Amy,F, 3",
		"overflowing int": "Amy,F,99999999999999999999999",
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			input := "Zoe,F,1\n" + line + "\n"
			_, err := Load(strings.NewReader(input), "yob1990.txt")
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrMalformedRecord))
			var mre *MalformedRecordError
			require.ErrorAs(t, err, &mre)
			assert.Equal(t, 2, mre.Line)
			assert.Equal(t, line, mre.Content)
			assert.Equal(t, "yob1990.txt", mre.Source)
			assert.Contains(t, err.Error(), "yob1990.txt:2")
		})
	}
}

type trackingCloser struct {
	io.Reader
	closed bool
}

func (c *trackingCloser) Close() error {
	c.closed = true
	return nil
}

func TestLoadSourceClosesOnParseFailure(t *testing.T) {
	rc := &trackingCloser{Reader: strings.NewReader("bad line\n")}
	src := Source{Year: 1990, Name: "mem", Open: func() (io.ReadCloser, error) { return rc, nil }}
	_, err := LoadSource(src)
	require.ErrorIs(t, err, ErrMalformedRecord)
	assert.True(t, rc.closed)
}

func TestLoadSourceSetsYearFromSource(t *testing.T) {
	ds, err := LoadSource(ReaderSource(1995, "mem", "Abby,F,10\n"))
	require.NoError(t, err)
	assert.Equal(t, 1995, ds.Year)
	require.Len(t, ds.Records, 1)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yob2001.txt")
	require.NoError(t, os.WriteFile(path, []byte("Amy,F,100\nBob,M,50\n"), 0o644))

	records, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "yob2001.txt"))
	var notFound *SourceNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
