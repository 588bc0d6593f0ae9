package session

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned when a position does not refer to a record.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrMalformedStorage is returned when a data file cannot be interpreted as a session table.
	ErrMalformedStorage = errors.New("malformed storage")
)

// MissingColumnError reports a data file without one of the required columns.
type MissingColumnError struct {
	Path   string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: required column %q is missing", e.Path, e.Column)
}

func (e *MissingColumnError) Unwrap() error {
	return ErrMalformedStorage
}

// DateParseError names a record whose date could not be parsed.
type DateParseError struct {
	Index  int
	Record Record
	Err    error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("record %d: invalid date %q: %v", e.Index, e.Record.Date, e.Err)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}

func indexError(index, length int) error {
	return fmt.Errorf("%w: %d (records: %d)", ErrIndexOutOfRange, index, length)
}
