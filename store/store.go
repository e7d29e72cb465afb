// Package store holds the in-memory snapshot of catalog records. The store
// is load-once: after Load the record set is treated as immutable, so reads
// need no locking.
package store

import (
	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/jorro/reelstats/catalog"
)

// Store is a read-only snapshot of the full record set, kept in load order.
type Store struct {
	records []catalog.Record
}

// New creates a store holding the given records.
func New(records []catalog.Record) *Store {
	s := &Store{}
	s.Load(records)
	return s
}

// Load replaces the snapshot. Callers must not mutate the slice afterwards.
// Record identifiers are expected to be unique; duplicates are kept but
// reported, since they skew count-based reports.
func (s *Store) Load(records []catalog.Record) {
	s.records = records
	if unique := len(lo.UniqBy(records, func(r catalog.Record) string { return r.ID })); unique < len(records) {
		log.Warnf("store loaded with %d duplicate record ids", len(records)-unique)
	}
	log.Debug("store loaded", "records", len(records))
}

// Len returns the number of records in the snapshot.
func (s *Store) Len() int {
	return len(s.records)
}

// Scan returns all records in load order. The returned slice is the shared
// backing snapshot and must be treated as read-only.
func (s *Store) Scan() []catalog.Record {
	return s.records
}

// Filter returns the records matching the predicate, in load order.
func (s *Store) Filter(pred func(catalog.Record) bool) []catalog.Record {
	return lo.Filter(s.records, func(r catalog.Record, _ int) bool {
		return pred(r)
	})
}
