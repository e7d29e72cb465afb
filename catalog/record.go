package catalog

import (
	"strings"
	"time"
)

// Kind is the content kind of a catalog record.
type Kind string

const (
	KindMovie  Kind = "Movie"
	KindSeries Kind = "Series"
)

// ParseKind maps the raw "type" column to a Kind. The bulk source labels
// series as "TV Show".
func ParseKind(s string) (Kind, bool) {
	switch strings.TrimSpace(s) {
	case "Movie":
		return KindMovie, true
	case "TV Show", "Series":
		return KindSeries, true
	}
	return "", false
}

// Record is one media catalog entry. Multi-valued fields (Cast, Countries,
// Genres) keep their original comma-delimited text; the normalize package
// splits them on demand. Director is a pointer so that an absent director is
// distinguishable from an empty string.
type Record struct {
	ID          string
	Kind        Kind
	Title       string
	Director    *string
	Cast        string
	Countries   string
	DateAdded   string
	ReleaseYear int
	Rating      string
	Duration    string
	Genres      string
	Description string
}

// HasDirector reports whether the record carries a director at all.
func (r Record) HasDirector() bool {
	return r.Director != nil
}

// DirectorName returns the director name, or "" when absent.
func (r Record) DirectorName() string {
	if r.Director == nil {
		return ""
	}
	return *r.Director
}

// AddedAt parses the record's date-added field. ok is false when the field
// is empty or malformed; such records drop out of date-filtered reports.
func (r Record) AddedAt() (t time.Time, ok bool) {
	return ParseAddedDate(r.DateAdded)
}

// Minutes returns the movie runtime in minutes. ok is false for series
// records and for malformed duration text.
func (r Record) Minutes() (int, bool) {
	d, ok := ParseDuration(r.Duration)
	if !ok || d.Unit != UnitMinutes || r.Kind != KindMovie {
		return 0, false
	}
	return d.Value, true
}

// Seasons returns the series season count. ok is false for movie records and
// for malformed duration text.
func (r Record) Seasons() (int, bool) {
	d, ok := ParseDuration(r.Duration)
	if !ok || d.Unit != UnitSeasons || r.Kind != KindSeries {
		return 0, false
	}
	return d.Value, true
}
