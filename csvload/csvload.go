// Package csvload reads the catalog CSV export into records. The dataset is
// known to contain inconsistent rows; anything malformed is skipped with a
// log line, never a fatal error.
package csvload

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jorro/reelstats/catalog"
)

// Column names of the expected CSV header.
const (
	colID          = "show_id"
	colKind        = "type"
	colTitle       = "title"
	colDirector    = "director"
	colCast        = "cast"
	colCountry     = "country"
	colDateAdded   = "date_added"
	colReleaseYear = "release_year"
	colRating      = "rating"
	colDuration    = "duration"
	colGenres      = "listed_in"
	colDescription = "description"
)

var requiredColumns = []string{colID, colKind, colTitle, colReleaseYear}

// LoadFile reads records from a CSV file on disk.
func LoadFile(path string) ([]catalog.Record, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close() //nolint:errcheck
	records, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", path, err)
	}
	return records, nil
}

// Load reads records from CSV data. The first row must be a header naming
// at least show_id, type, title and release_year. Rows that cannot be
// mapped to a valid record are skipped and counted.
func Load(r io.Reader) ([]catalog.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are handled per-row below

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("CSV header is missing column %q", required)
		}
	}

	var records []catalog.Record
	skipped := 0
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warnf("skipping unreadable CSV row at line %d: %v", line, err)
			skipped++
			continue
		}
		record, ok := rowToRecord(row, columns)
		if !ok {
			log.Debugf("skipping malformed row at line %d", line)
			skipped++
			continue
		}
		records = append(records, record)
	}

	if skipped > 0 {
		log.Warn("dataset loaded with skipped rows", "records", len(records), "skipped", skipped)
	} else {
		log.Info("dataset loaded", "records", len(records))
	}
	return records, nil
}

func rowToRecord(row []string, columns map[string]int) (catalog.Record, bool) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	kind, ok := catalog.ParseKind(field(colKind))
	if !ok {
		return catalog.Record{}, false
	}
	id := strings.TrimSpace(field(colID))
	title := strings.TrimSpace(field(colTitle))
	if id == "" || title == "" {
		return catalog.Record{}, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(field(colReleaseYear)))
	if err != nil {
		return catalog.Record{}, false
	}

	record := catalog.Record{
		ID:          id,
		Kind:        kind,
		Title:       title,
		Cast:        field(colCast),
		Countries:   field(colCountry),
		DateAdded:   field(colDateAdded),
		ReleaseYear: year,
		Rating:      strings.TrimSpace(field(colRating)),
		Duration:    strings.TrimSpace(field(colDuration)),
		Genres:      field(colGenres),
		Description: field(colDescription),
	}
	if director := strings.TrimSpace(field(colDirector)); director != "" {
		record.Director = &director
	}
	return record, true
}
