// Package names loads year files of name records and tests names for sorted letters.
package names

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/verte-zerg/sortednames/internal/model"
)

const fieldCount = 3

// MaxLineLength is the longest accepted line in bytes.
const MaxLineLength = 1 << 20

// Load reads name,gender,count records from r in file order.
// The first blank line ends the stream; source names the input in errors.
// The counts of one stream must sum to at most math.MaxInt.
func Load(r io.Reader, source string) ([]model.NameRecord, error) {
	var records []model.NameRecord
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	lineNo := 0
	ended := false
	total := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if ended {
			if strings.TrimSpace(line) != "" {
				return nil, malformed(source, lineNo, line, "record after blank line")
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			ended = true
			continue
		}
		rec, reason := parseRecord(line)
		if reason != "" {
			return nil, malformed(source, lineNo, line, reason)
		}
		if rec.Count > math.MaxInt-total {
			return nil, malformed(source, lineNo, line, "population overflows int")
		}
		total += rec.Count
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, malformed(source, lineNo+1, "", fmt.Sprintf("line exceeds %d bytes", MaxLineLength))
		}
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return records, nil
}

// LoadSource reads one year source. The source is closed before returning.
func LoadSource(src Source) (model.YearDataset, error) {
	rc, err := src.Open()
	if err != nil {
		return model.YearDataset{}, err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			// Best-effort close for read-only source.
			_ = cerr
		}
	}()
	records, err := Load(rc, src.Name)
	if err != nil {
		return model.YearDataset{}, err
	}
	return model.YearDataset{Year: src.Year, Records: records}, nil
}

// LoadFile reads all records of the file at path.
func LoadFile(path string) ([]model.NameRecord, error) {
	ds, err := LoadSource(FileSource(0, path))
	if err != nil {
		return nil, err
	}
	return ds.Records, nil
}

func parseRecord(line string) (model.NameRecord, string) {
	fields := strings.Split(line, ",")
	if len(fields) != fieldCount {
		return model.NameRecord{}, fmt.Sprintf("expected %d fields, got %d", fieldCount, len(fields))
	}
	name, gender, rawCount := fields[0], fields[1], fields[2]
	if name == "" {
		return model.NameRecord{}, "empty name"
	}
	if gender == "" || strings.IndexFunc(gender, unicode.IsSpace) >= 0 {
		return model.NameRecord{}, "invalid gender code"
	}
	count, ok := parseCount(rawCount)
	if !ok {
		return model.NameRecord{}, "invalid count"
	}
	return model.NameRecord{Name: name, Gender: model.Gender(gender), Count: count}, ""
}

// parseCount accepts plain base-10 digits only.
func parseCount(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func malformed(source string, line int, content, reason string) error {
	return &MalformedRecordError{Source: source, Line: line, Content: content, Reason: reason}
}
