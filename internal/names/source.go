package names

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	yearFilePrefix = "yob"
	yearFileExt    = ".txt"
	yearDigits     = 4
)

// Source is one year of records that can be opened for reading.
type Source struct {
	Year int
	Name string
	Open func() (io.ReadCloser, error)
}

// FileSource returns a Source backed by the file at path.
func FileSource(year int, path string) Source {
	return Source{
		Year: year,
		Name: path,
		Open: func() (io.ReadCloser, error) {
			file, err := os.Open(path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil, &SourceNotFoundError{Path: path, Err: err}
				}
				return nil, fmt.Errorf("failed to open %s: %w", path, err)
			}
			return file, nil
		},
	}
}

// ReaderSource returns a Source over in-memory text.
func ReaderSource(year int, name, text string) Source {
	return Source{
		Year: year,
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(text)), nil
		},
	}
}

// YearFromFilename extracts the year of a file named like yob1990.txt.
func YearFromFilename(name string) (int, bool) {
	base := filepath.Base(name)
	if !strings.HasPrefix(base, yearFilePrefix) || !strings.HasSuffix(base, yearFileExt) {
		return 0, false
	}
	digits := strings.TrimSuffix(strings.TrimPrefix(base, yearFilePrefix), yearFileExt)
	if len(digits) != yearDigits {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	year, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return year, true
}

// Discover lists the year files in dir, sorted ascending by year.
func Discover(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &SourceNotFoundError{Path: dir, Err: err}
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	sources := make([]Source, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		year, ok := YearFromFilename(entry.Name())
		if !ok {
			continue
		}
		sources = append(sources, FileSource(year, filepath.Join(dir, entry.Name())))
	}
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Year < sources[j].Year
	})
	return sources, nil
}
