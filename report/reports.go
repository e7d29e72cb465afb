package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mergestat/timediff"
	"github.com/samber/lo"

	"github.com/jorro/reelstats/aggregate"
	"github.com/jorro/reelstats/catalog"
	"github.com/jorro/reelstats/normalize"
)

// ErrMissingParam is returned when a report requires a parameter the caller
// did not supply.
var ErrMissingParam = errors.New("missing required parameter")

func (c *Catalog) register() {
	c.add("content-type-counts", "Number of movies vs series", "",
		func(c *Catalog, _ Params) (*Result, error) {
			entries := c.ContentTypeCounts()
			return renderCounts("content-type-counts", "kind", kindEntries(entries)), nil
		})
	c.add("most-common-rating", "Most frequent rating per content kind", "",
		func(c *Catalog, _ Params) (*Result, error) {
			res := &Result{Report: "most-common-rating", Columns: []string{"kind", "rating", "count"}}
			for _, kr := range c.MostCommonRating() {
				res.Rows = append(res.Rows, []string{string(kr.Kind), kr.Rating, strconv.Itoa(kr.Count)})
			}
			return res, nil
		})
	c.add("movies-by-year", "Movie titles released in a given year", "--year",
		func(c *Catalog, p Params) (*Result, error) {
			if p.Year == 0 {
				return nil, fmt.Errorf("%w: year", ErrMissingParam)
			}
			res := &Result{Report: "movies-by-year", Columns: []string{"title"}}
			for _, title := range c.MoviesByYear(p.Year) {
				res.Rows = append(res.Rows, []string{title})
			}
			return res, nil
		})
	c.add("top-countries", "Countries with the most content", "--n",
		func(c *Catalog, p Params) (*Result, error) {
			entries := c.TopCountries(orDefault(p.N, c.defaults.TopCountries))
			return renderCounts("top-countries", "country", entries), nil
		})
	c.add("longest-movie", "Movie(s) with the longest runtime", "",
		func(c *Catalog, _ Params) (*Result, error) {
			res := &Result{Report: "longest-movie", Columns: []string{"title", "minutes"}}
			for _, m := range c.LongestMovies() {
				res.Rows = append(res.Rows, []string{m.Title, strconv.Itoa(m.Minutes)})
			}
			return res, nil
		})
	c.add("recent-content", "Content added within the last N years", "--years",
		func(c *Catalog, p Params) (*Result, error) {
			records := c.RecentContent(orDefault(p.Years, c.defaults.RecentYears))
			return renderRecords("recent-content", records), nil
		})
	c.add("by-director", "Content by director name (substring match)", "--name",
		func(c *Catalog, p Params) (*Result, error) {
			if p.Name == "" {
				return nil, fmt.Errorf("%w: name", ErrMissingParam)
			}
			return renderRecords("by-director", c.ByDirector(p.Name)), nil
		})
	c.add("long-series", "Series with more than N seasons", "--n",
		func(c *Catalog, p Params) (*Result, error) {
			res := &Result{Report: "long-series", Columns: []string{"title", "duration"}}
			for _, r := range c.LongSeries(orDefault(p.N, c.defaults.MinSeasons)) {
				res.Rows = append(res.Rows, []string{r.Title, r.Duration})
			}
			return res, nil
		})
	c.add("genre-counts", "Number of items per genre", "",
		func(c *Catalog, _ Params) (*Result, error) {
			return renderCounts("genre-counts", "genre", c.GenreCounts()), nil
		})
	c.add("india-year-share", "Share of India's content per year added", "--country",
		func(c *Catalog, p Params) (*Result, error) {
			country := p.Country
			if country == "" {
				country = "India"
			}
			res := &Result{Report: "india-year-share", Columns: []string{"year", "percent"}}
			for _, s := range c.CountryYearShare(country) {
				res.Rows = append(res.Rows, []string{strconv.Itoa(s.Key), formatPercent(s.Percent)})
			}
			return res, nil
		})
	c.add("documentaries", "All documentary movies", "",
		func(c *Catalog, _ Params) (*Result, error) {
			return renderRecords("documentaries", c.Documentaries()), nil
		})
	c.add("missing-director", "Content without any director", "",
		func(c *Catalog, _ Params) (*Result, error) {
			return renderRecords("missing-director", c.MissingDirector()), nil
		})
	c.add("actor-recent", "Recent movies featuring an actor", "--name, --years",
		func(c *Catalog, p Params) (*Result, error) {
			if p.Name == "" {
				return nil, fmt.Errorf("%w: name", ErrMissingParam)
			}
			records := c.ActorRecent(p.Name, orDefault(p.Years, c.defaults.ActorRecentYears))
			return renderRecords("actor-recent", records), nil
		})
	c.add("top-actors-in-country", "Actors with the most appearances in a country's content", "--country, --n",
		func(c *Catalog, p Params) (*Result, error) {
			if p.Country == "" {
				return nil, fmt.Errorf("%w: country", ErrMissingParam)
			}
			entries := c.TopActorsInCountry(p.Country, orDefault(p.N, c.defaults.TopActors))
			return renderCounts("top-actors-in-country", "actor", entries), nil
		})
	c.add("categorize-by-keywords", "Good/Bad classification from description keywords", "",
		func(c *Catalog, _ Params) (*Result, error) {
			return renderCounts("categorize-by-keywords", "category", c.CategorizeByKeywords()), nil
		})
}

// ContentTypeCounts counts records per content kind.
func (c *Catalog) ContentTypeCounts() []aggregate.Entry[catalog.Kind] {
	return aggregate.GroupCount(c.store.Scan(), func(r catalog.Record) catalog.Kind {
		return r.Kind
	}).Entries()
}

// KindRating is the winner of the per-kind rating ranking.
type KindRating struct {
	Kind   catalog.Kind
	Rating string
	Count  int
}

// MostCommonRating returns the most frequent rating per content kind.
// Records without a rating don't compete. Ties go to the rating seen first.
func (c *Catalog) MostCommonRating() []KindRating {
	rated := c.store.Filter(func(r catalog.Record) bool { return r.Rating != "" })
	ranked := aggregate.TopNPerPartition(rated,
		func(r catalog.Record) catalog.Kind { return r.Kind },
		func(r catalog.Record) string { return r.Rating },
		1)
	results := make([]KindRating, 0, len(ranked.Partitions()))
	for _, kind := range ranked.Partitions() {
		for _, e := range ranked.Top(kind) {
			results = append(results, KindRating{Kind: kind, Rating: e.Key, Count: e.Count})
		}
	}
	return results
}

// MoviesByYear lists titles of movies released in the given year.
func (c *Catalog) MoviesByYear(year int) []string {
	movies := c.store.Filter(func(r catalog.Record) bool {
		return r.Kind == catalog.KindMovie && r.ReleaseYear == year
	})
	return lo.Map(movies, func(r catalog.Record, _ int) string { return r.Title })
}

// TopCountries ranks countries by content count, one contribution per
// exploded country token.
func (c *Catalog) TopCountries(n int) []aggregate.Entry[string] {
	pairs := normalize.Explode(c.store.Scan(), normalize.FieldCountries)
	return aggregate.GroupCount(pairs, func(p normalize.Pair) string { return p.Token }).Top(n)
}

// MovieRuntime pairs a movie title with its parsed runtime.
type MovieRuntime struct {
	Title   string
	Minutes int
}

// LongestMovies returns every movie tied for the longest runtime. Movies
// with malformed duration text are excluded.
func (c *Catalog) LongestMovies() []MovieRuntime {
	movies := c.store.Filter(func(r catalog.Record) bool { return r.Kind == catalog.KindMovie })
	longest := aggregate.LongestByMetric(movies, catalog.Record.Minutes)
	return lo.Map(longest, func(r catalog.Record, _ int) MovieRuntime {
		minutes, _ := r.Minutes()
		return MovieRuntime{Title: r.Title, Minutes: minutes}
	})
}

// RecentContent returns records added within the last `years` years.
// Records with a missing or unparsable date-added drop out.
func (c *Catalog) RecentContent(years int) []catalog.Record {
	cutoff := c.now().AddDate(-years, 0, 0)
	return c.store.Filter(func(r catalog.Record) bool {
		added, ok := r.AddedAt()
		return ok && !added.Before(cutoff)
	})
}

// ByDirector returns records whose director name contains the given name,
// case-insensitively.
func (c *Catalog) ByDirector(name string) []catalog.Record {
	needle := strings.ToLower(name)
	return c.store.Filter(func(r catalog.Record) bool {
		return r.HasDirector() && strings.Contains(strings.ToLower(r.DirectorName()), needle)
	})
}

// LongSeries returns series with strictly more than minSeasons seasons.
func (c *Catalog) LongSeries(minSeasons int) []catalog.Record {
	return c.store.Filter(func(r catalog.Record) bool {
		seasons, ok := r.Seasons()
		return ok && seasons > minSeasons
	})
}

// GenreCounts counts items per genre token, keys in first-seen order.
func (c *Catalog) GenreCounts() []aggregate.Entry[string] {
	pairs := normalize.Explode(c.store.Scan(), normalize.FieldGenres)
	return aggregate.GroupCount(pairs, func(p normalize.Pair) string { return p.Token }).Entries()
}

// CountryYearShare computes, for the given country, the percentage of its
// catalog added per year, ranked descending and limited to the configured
// top years. The denominator is every record carrying the country token, so
// records with an unparsable date-added still dilute the shares; they just
// don't get a year row of their own.
func (c *Catalog) CountryYearShare(country string) []aggregate.Share[int] {
	records := c.store.Filter(func(r catalog.Record) bool {
		return normalize.Contains(r.Countries, country)
	})
	shares := aggregate.PercentageByGroup(records,
		func(r catalog.Record) int {
			added, ok := r.AddedAt()
			if !ok {
				return 0
			}
			return added.Year()
		},
		func(catalog.Record) bool { return true })
	shares = lo.Filter(shares, func(s aggregate.Share[int], _ int) bool { return s.Key != 0 })
	shares = aggregate.SortSharesDesc(shares)
	if n := c.defaults.ShareTopYears; n > 0 && len(shares) > n {
		shares = shares[:n]
	}
	return shares
}

// Documentaries returns all documentary movies.
func (c *Catalog) Documentaries() []catalog.Record {
	return c.store.Filter(func(r catalog.Record) bool {
		return r.Kind == catalog.KindMovie &&
			strings.Contains(strings.ToLower(r.Genres), "documentaries")
	})
}

// MissingDirector returns records with no director at all. Records with an
// empty-but-present director field are not included.
func (c *Catalog) MissingDirector() []catalog.Record {
	return c.store.Filter(func(r catalog.Record) bool { return !r.HasDirector() })
}

// ActorRecent returns movies featuring the named actor released within the
// last `years` years.
func (c *Catalog) ActorRecent(name string, years int) []catalog.Record {
	needle := strings.ToLower(name)
	floor := c.now().Year() - years
	return c.store.Filter(func(r catalog.Record) bool {
		return r.Kind == catalog.KindMovie &&
			r.ReleaseYear > floor &&
			strings.Contains(strings.ToLower(r.Cast), needle)
	})
}

// TopActorsInCountry ranks actors by appearances in the given country's
// content. The country filter is a token-level match against the exploded
// country field, so "India" doesn't match "United India Productions" unless
// it appears as its own token.
func (c *Catalog) TopActorsInCountry(country string, n int) []aggregate.Entry[string] {
	records := c.store.Filter(func(r catalog.Record) bool {
		return normalize.Contains(r.Countries, country)
	})
	pairs := normalize.Explode(records, normalize.FieldCast)
	return aggregate.GroupCount(pairs, func(p normalize.Pair) string { return p.Token }).Top(n)
}

// CategorizeByKeywords buckets records into "Bad" when the description
// mentions kill or violence, "Good" otherwise, and counts each bucket.
func (c *Catalog) CategorizeByKeywords() []aggregate.Entry[string] {
	return aggregate.GroupCount(c.store.Scan(), func(r catalog.Record) string {
		desc := strings.ToLower(r.Description)
		if strings.Contains(desc, "kill") || strings.Contains(desc, "violence") {
			return "Bad"
		}
		return "Good"
	}).Entries()
}

func kindEntries(entries []aggregate.Entry[catalog.Kind]) []aggregate.Entry[string] {
	return lo.Map(entries, func(e aggregate.Entry[catalog.Kind], _ int) aggregate.Entry[string] {
		return aggregate.Entry[string]{Key: string(e.Key), Count: e.Count}
	})
}

func renderCounts(name, keyColumn string, entries []aggregate.Entry[string]) *Result {
	res := &Result{Report: name, Columns: []string{keyColumn, "count"}}
	for _, e := range entries {
		res.Rows = append(res.Rows, []string{e.Key, strconv.Itoa(e.Count)})
	}
	return res
}

func renderRecords(name string, records []catalog.Record) *Result {
	res := &Result{Report: name, Columns: []string{"id", "kind", "title", "director", "release_year", "rating", "duration", "added"}}
	for _, r := range records {
		added := strings.TrimSpace(r.DateAdded)
		if t, ok := r.AddedAt(); ok {
			added = timediff.TimeDiff(t)
		}
		res.Rows = append(res.Rows, []string{
			r.ID, string(r.Kind), r.Title, r.DirectorName(),
			strconv.Itoa(r.ReleaseYear), r.Rating, r.Duration, added,
		})
	}
	return res
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}
