package session

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the day-first layout dates are stored in.
const DateLayout = "02/01/2006"

// dateParseLayouts accepts one- or two-digit days and months, and ISO dates
// as written by spreadsheet tools.
var dateParseLayouts = []string{
	"2/1/2006",
	"2006-01-02",
}

// FormatDate formats t in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a stored session date.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	var firstErr error
	for _, layout := range dateParseLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// Time parses the record's date.
func (r Record) Time() (time.Time, error) {
	return ParseDate(r.Date)
}
