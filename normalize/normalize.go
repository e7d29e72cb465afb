// Package normalize splits the catalog's multi-valued delimited fields
// (cast, countries, genres) into atomic tokens.
package normalize

import (
	"strings"

	"github.com/jorro/reelstats/catalog"
)

// Field selects which multi-valued record field to explode.
type Field string

const (
	FieldCast      Field = "cast"
	FieldCountries Field = "countries"
	FieldGenres    Field = "genres"
)

// Pair is one (record, token) fan-out result.
type Pair struct {
	Record catalog.Record
	Token  string
}

// Tokens splits a comma-delimited value into trimmed, non-empty tokens.
// A value that is only whitespace or delimiters yields nil.
func Tokens(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Contains reports whether the delimited value contains the given token,
// compared case-insensitively at token level.
func Contains(raw, token string) bool {
	for _, t := range Tokens(raw) {
		if strings.EqualFold(t, token) {
			return true
		}
	}
	return false
}

// Explode fans each record out into one Pair per token of the chosen field.
// Records whose field has no surviving tokens are dropped from the result.
// A single-token field yields exactly one pair for its record.
func Explode(records []catalog.Record, field Field) []Pair {
	pairs := make([]Pair, 0, len(records))
	for _, r := range records {
		for _, token := range Tokens(fieldValue(r, field)) {
			pairs = append(pairs, Pair{Record: r, Token: token})
		}
	}
	return pairs
}

func fieldValue(r catalog.Record, field Field) string {
	switch field {
	case FieldCast:
		return r.Cast
	case FieldCountries:
		return r.Countries
	case FieldGenres:
		return r.Genres
	}
	return ""
}
