package catalog

import (
	"strconv"
	"strings"
)

// DurationUnit tags what a duration value counts.
type DurationUnit string

const (
	UnitMinutes DurationUnit = "min"
	UnitSeasons DurationUnit = "Season"
)

// Duration is the parsed form of the "<int> <unit>" duration column.
type Duration struct {
	Value int
	Unit  DurationUnit
}

// ParseDuration parses duration text like "90 min", "1 Season" or
// "3 Seasons". ok is false for anything that doesn't match that shape;
// callers exclude such records from duration-based reports instead of
// treating them as errors.
func ParseDuration(s string) (Duration, bool) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return Duration{}, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return Duration{}, false
	}
	switch fields[1] {
	case "min":
		return Duration{Value: n, Unit: UnitMinutes}, true
	case "Season", "Seasons":
		return Duration{Value: n, Unit: UnitSeasons}, true
	}
	return Duration{}, false
}
