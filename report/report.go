// Package report holds the fixed catalog of analytical reports that run
// against the record store. Each report is a named composition of filter
// predicates, optional multi-value fan-out and an aggregation, returning a
// deterministic tabular result.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/jorro/reelstats/store"
)

// ErrNotFound is returned when a report name is not in the catalog. It is
// the only report failure that surfaces as an error; data-quality problems
// only shrink results.
var ErrNotFound = errors.New("report not found")

// Defaults carries the config-supplied parameter defaults for reports that
// accept arguments.
type Defaults struct {
	TopCountries     int
	TopActors        int
	RecentYears      int
	ActorRecentYears int
	MinSeasons       int
	ShareTopYears    int
}

// StandardDefaults are the parameter defaults used when config does not
// override them.
func StandardDefaults() Defaults {
	return Defaults{
		TopCountries:     5,
		TopActors:        10,
		RecentYears:      5,
		ActorRecentYears: 10,
		MinSeasons:       5,
		ShareTopYears:    5,
	}
}

// Params are the caller-supplied arguments of a report run. Zero values fall
// back to the catalog defaults; Name/Country/Year are required by the
// reports that use them.
type Params struct {
	Year    int
	Name    string
	Country string
	N       int
	Years   int
}

// Result is the rendered form of a report run, shared by the CLI and the
// HTTP layer.
type Result struct {
	Report  string     `json:"report"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Definition is one catalog entry.
type Definition struct {
	Name        string
	Description string
	// Args documents the accepted parameters, for the list command.
	Args string

	run func(c *Catalog, p Params) (*Result, error)
}

// Catalog is the report registry bound to one record store.
type Catalog struct {
	store    *store.Store
	defaults Defaults
	defs     []Definition
	byName   map[string]Definition

	// now is swapped out in tests; date-window reports measure from it.
	now func() time.Time
}

// New builds the catalog over the given store.
func New(s *store.Store, defaults Defaults) *Catalog {
	c := &Catalog{
		store:    s,
		defaults: defaults,
		byName:   make(map[string]Definition),
		now:      time.Now,
	}
	c.register()
	return c
}

// Definitions lists all catalog entries in registration order.
func (c *Catalog) Definitions() []Definition {
	return c.defs
}

// Run executes the named report. Unknown names fail with ErrNotFound.
func (c *Catalog) Run(name string, p Params) (*Result, error) {
	def, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return def.run(c, p)
}

func (c *Catalog) add(name, description, args string, run func(c *Catalog, p Params) (*Result, error)) {
	def := Definition{Name: name, Description: description, Args: args, run: run}
	c.defs = append(c.defs, def)
	c.byName[name] = def
}

func orDefault(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
