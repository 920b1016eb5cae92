package names

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord matches every MalformedRecordError.
var ErrMalformedRecord = errors.New("malformed record")

// MalformedRecordError reports a line that is not a valid name,gender,count record.
type MalformedRecordError struct {
	Source  string
	Line    int
	Content string
	Reason  string
}

func (e *MalformedRecordError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("malformed record at line %d: %s (%q)", e.Line, e.Reason, e.Content)
	}
	return fmt.Sprintf("malformed record at %s:%d: %s (%q)", e.Source, e.Line, e.Reason, e.Content)
}

// Is reports whether target is ErrMalformedRecord.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// SourceNotFoundError reports a year file that disappeared before it could be read.
type SourceNotFoundError struct {
	Path string
	Err  error
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("source not found: %s", e.Path)
}

func (e *SourceNotFoundError) Unwrap() error {
	return e.Err
}
