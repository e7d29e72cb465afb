// Package aggregate provides the grouping, ranking and percentage primitives
// the report catalog is built from. All orderings are deterministic: keys
// keep first-seen order, and rankings sort by count descending with ties
// broken by first-seen order.
package aggregate

import (
	"math"
	"sort"
)

// Entry is one (key, count) result of a counting aggregation.
type Entry[K comparable] struct {
	Key   K
	Count int
}

// Counts is an insertion-ordered key→count mapping.
type Counts[K comparable] struct {
	order  []K
	counts map[K]int
}

// NewCounts returns an empty Counts.
func NewCounts[K comparable]() *Counts[K] {
	return &Counts[K]{counts: make(map[K]int)}
}

// Add increments the count for key, registering it on first sight.
func (c *Counts[K]) Add(key K) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// Get returns the count for key, 0 when unseen.
func (c *Counts[K]) Get(key K) int {
	return c.counts[key]
}

// Len returns the number of distinct keys.
func (c *Counts[K]) Len() int {
	return len(c.order)
}

// Total returns the sum of all counts.
func (c *Counts[K]) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Entries returns all (key, count) pairs in first-seen key order.
func (c *Counts[K]) Entries() []Entry[K] {
	entries := make([]Entry[K], 0, len(c.order))
	for _, k := range c.order {
		entries = append(entries, Entry[K]{Key: k, Count: c.counts[k]})
	}
	return entries
}

// SortedDesc returns all entries sorted by count descending. Ties keep
// first-seen order, so results are stable across runs.
func (c *Counts[K]) SortedDesc() []Entry[K] {
	entries := c.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// Top returns the first n entries of SortedDesc. n <= 0 returns everything.
func (c *Counts[K]) Top(n int) []Entry[K] {
	entries := c.SortedDesc()
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// GroupCount counts items per key, keys in first-seen order.
func GroupCount[T any, K comparable](items []T, key func(T) K) *Counts[K] {
	counts := NewCounts[K]()
	for _, item := range items {
		counts.Add(key(item))
	}
	return counts
}

// TopNPerPartition counts keys within each partition and returns the top n
// entries per partition, ranked by count descending with first-seen
// tie-break. Partitions() on the result preserves first-seen partition order.
func TopNPerPartition[T any, P comparable, K comparable](items []T, partition func(T) P, key func(T) K, n int) *Partitioned[P, K] {
	p := &Partitioned[P, K]{byPartition: make(map[P]*Counts[K]), n: n}
	for _, item := range items {
		part := partition(item)
		counts, ok := p.byPartition[part]
		if !ok {
			counts = NewCounts[K]()
			p.byPartition[part] = counts
			p.order = append(p.order, part)
		}
		counts.Add(key(item))
	}
	return p
}

// Partitioned holds per-partition ranked counts.
type Partitioned[P comparable, K comparable] struct {
	order       []P
	byPartition map[P]*Counts[K]
	n           int
}

// Partitions returns the partitions in first-seen order.
func (p *Partitioned[P, K]) Partitions() []P {
	return p.order
}

// Top returns the ranked top-n entries of one partition, nil when the
// partition was never seen.
func (p *Partitioned[P, K]) Top(part P) []Entry[K] {
	counts, ok := p.byPartition[part]
	if !ok {
		return nil
	}
	return counts.Top(p.n)
}

// Share is one (key, percentage) result of PercentageByGroup.
type Share[K comparable] struct {
	Key     K
	Percent float64
}

// PercentageByGroup computes, per key, 100 × count(key) / count(items
// matching denom), rounded half-up to two decimals. A zero denominator
// yields 0.0 for every key instead of failing. Keys keep first-seen order.
func PercentageByGroup[T any, K comparable](items []T, key func(T) K, denom func(T) bool) []Share[K] {
	counts := GroupCount(items, key)
	denominator := 0
	for _, item := range items {
		if denom(item) {
			denominator++
		}
	}
	shares := make([]Share[K], 0, counts.Len())
	for _, e := range counts.Entries() {
		pct := 0.0
		if denominator > 0 {
			pct = round2(100 * float64(e.Count) / float64(denominator))
		}
		shares = append(shares, Share[K]{Key: e.Key, Percent: pct})
	}
	return shares
}

// SortSharesDesc orders shares by percentage descending, stable on ties.
func SortSharesDesc[K comparable](shares []Share[K]) []Share[K] {
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Percent > shares[j].Percent
	})
	return shares
}

// LongestByMetric returns every item whose metric equals the maximum
// observed value. Items whose metric is not ok are excluded; an input with
// no measurable item yields nil.
func LongestByMetric[T any](items []T, metric func(T) (int, bool)) []T {
	best := math.MinInt
	var winners []T
	for _, item := range items {
		v, ok := metric(item)
		if !ok {
			continue
		}
		switch {
		case v > best:
			best = v
			winners = winners[:0]
			winners = append(winners, item)
		case v == best:
			winners = append(winners, item)
		}
	}
	return winners
}

// round2 rounds to two decimals, half away from zero.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
