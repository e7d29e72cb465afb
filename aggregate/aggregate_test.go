package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupCountOrderAndSums(t *testing.T) {
	items := []string{"Movie", "Series", "Movie", "Movie", "Series"}
	counts := GroupCount(items, func(s string) string { return s })

	// keys keep first-seen order
	entries := counts.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, Entry[string]{Key: "Movie", Count: 3}, entries[0])
	assert.Equal(t, Entry[string]{Key: "Series", Count: 2}, entries[1])

	// counts sum to the number of inputs
	assert.Equal(t, len(items), counts.Total())
	assert.Equal(t, 0, counts.Get("Documentary"))
}

func TestGroupCountEmptyInput(t *testing.T) {
	counts := GroupCount(nil, func(s string) string { return s })
	assert.Equal(t, 0, counts.Len())
	assert.Empty(t, counts.Entries())
}

func TestSortedDescStableTieBreak(t *testing.T) {
	counts := NewCounts[string]()
	for _, key := range []string{"US", "India", "US", "India", "France"} {
		counts.Add(key)
	}

	entries := counts.SortedDesc()
	require.Len(t, entries, 3)
	// US and India tie at 2; US was seen first
	assert.Equal(t, "US", entries[0].Key)
	assert.Equal(t, "India", entries[1].Key)
	assert.Equal(t, "France", entries[2].Key)
}

func TestTop(t *testing.T) {
	counts := NewCounts[int]()
	for _, key := range []int{1, 2, 2, 3, 3, 3} {
		counts.Add(key)
	}

	top := counts.Top(2)
	require.Len(t, top, 2)
	assert.Equal(t, Entry[int]{Key: 3, Count: 3}, top[0])
	assert.Equal(t, Entry[int]{Key: 2, Count: 2}, top[1])

	// n <= 0 returns everything
	assert.Len(t, counts.Top(0), 3)
}

func TestTopNPerPartition(t *testing.T) {
	type item struct {
		kind   string
		rating string
	}
	items := []item{
		{"Movie", "PG"},
		{"Movie", "PG"},
		{"Movie", "R"},
		{"Series", "TV-MA"},
	}

	ranked := TopNPerPartition(items,
		func(i item) string { return i.kind },
		func(i item) string { return i.rating },
		1)

	assert.Equal(t, []string{"Movie", "Series"}, ranked.Partitions())

	movie := ranked.Top("Movie")
	require.Len(t, movie, 1)
	assert.Equal(t, Entry[string]{Key: "PG", Count: 2}, movie[0])

	series := ranked.Top("Series")
	require.Len(t, series, 1)
	assert.Equal(t, Entry[string]{Key: "TV-MA", Count: 1}, series[0])

	assert.Nil(t, ranked.Top("Documentary"))
}

func TestTopNPerPartitionNeverExceedsN(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 5}
	ranked := TopNPerPartition(items,
		func(int) string { return "all" },
		func(i int) int { return i },
		3)

	top := ranked.Top("all")
	require.Len(t, top, 3)
	// sorted by count descending
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Count, top[i].Count)
	}
	assert.Equal(t, 5, top[0].Key)
}

func TestPercentageByGroup(t *testing.T) {
	items := []string{"2020", "2020", "2021"}
	shares := PercentageByGroup(items,
		func(s string) string { return s },
		func(string) bool { return true })

	require.Len(t, shares, 2)
	assert.Equal(t, Share[string]{Key: "2020", Percent: 66.67}, shares[0])
	assert.Equal(t, Share[string]{Key: "2021", Percent: 33.33}, shares[1])

	total := 0.0
	for _, s := range shares {
		total += s.Percent
	}
	assert.InDelta(t, 100.0, total, 0.01*float64(len(shares)))
}

func TestPercentageByGroupZeroDenominator(t *testing.T) {
	items := []string{"a", "b"}
	shares := PercentageByGroup(items,
		func(s string) string { return s },
		func(string) bool { return false })

	require.Len(t, shares, 2)
	for _, s := range shares {
		assert.Equal(t, 0.0, s.Percent)
	}
}

func TestPercentageByGroupEmptyInput(t *testing.T) {
	shares := PercentageByGroup(nil,
		func(s string) string { return s },
		func(string) bool { return true })
	assert.Empty(t, shares)
}

func TestLongestByMetricReturnsAllTies(t *testing.T) {
	type movie struct {
		title   string
		minutes int
		valid   bool
	}
	items := []movie{
		{"short", 45, true},
		{"long A", 90, true},
		{"broken", 300, false},
		{"long B", 90, true},
	}

	longest := LongestByMetric(items, func(m movie) (int, bool) { return m.minutes, m.valid })
	require.Len(t, longest, 2)
	assert.Equal(t, "long A", longest[0].title)
	assert.Equal(t, "long B", longest[1].title)
}

func TestLongestByMetricNoMeasurableItems(t *testing.T) {
	longest := LongestByMetric([]int{1, 2}, func(int) (int, bool) { return 0, false })
	assert.Empty(t, longest)

	longest = LongestByMetric(nil, func(int) (int, bool) { return 0, true })
	assert.Empty(t, longest)
}
