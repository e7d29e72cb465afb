package catalog

import (
	"strings"
	"time"
)

// addedDateLayout matches the bulk source's human date format,
// e.g. "September 25, 2021".
const addedDateLayout = "January 2, 2006"

// ParseAddedDate parses a date-added value. The source data pads some dates
// with leading whitespace, so the input is trimmed first. ok is false for
// empty or malformed values.
func ParseAddedDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(addedDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
