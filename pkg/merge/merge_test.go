package merge

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedmaker/pkg/domain"
	"github.com/umputun/feedmaker/pkg/state"
)

func items(links ...string) []domain.Item {
	res := make([]domain.Item, 0, len(links))
	for _, l := range links {
		res = append(res, domain.Item{Link: "https://x/" + l, Title: l})
	}
	return res
}

func links(items []domain.Item) []string {
	res := make([]string, 0, len(items))
	for _, it := range items {
		res = append(res, it.Title)
	}
	return res
}

func TestIncremental(t *testing.T) {
	tests := []struct {
		name     string
		recent   []domain.Item
		old      []domain.Item
		max      int
		wantEmit []string
		wantNew  []string
	}{
		{name: "first run", recent: items("A", "B"), wantEmit: []string{"B", "A"}, wantNew: []string{"A", "B"}},
		{name: "unchanged", recent: items("A", "B"), old: items("A", "B"), wantEmit: []string{"B", "A"}, wantNew: []string{}},
		{name: "one new item", recent: items("C", "A", "B"), old: items("A", "B"), wantEmit: []string{"C", "B", "A"}, wantNew: []string{"C"}},
		{name: "new items reversed before old reversed", recent: items("D", "C", "A"), old: items("A", "B"),
			wantEmit: []string{"C", "D", "B", "A"}, wantNew: []string{"D", "C"}},
		{name: "capped", recent: items("C", "A", "B"), old: items("A", "B"), max: 2, wantEmit: []string{"C", "B"}, wantNew: []string{"C"}},
		{name: "duplicates in recent", recent: items("A", "A", "B"), wantEmit: []string{"B", "A"}, wantNew: []string{"A", "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Incremental(tt.recent, tt.old, tt.max)
			assert.Equal(t, tt.wantEmit, links(res.Emission))
			assert.Equal(t, tt.wantNew, links(res.New))
		})
	}
}

func TestIncrementalLatestTitleWins(t *testing.T) {
	recent := []domain.Item{{Link: "https://x/a", Title: "renamed"}}
	old := []domain.Item{{Link: "https://x/a", Title: "original"}, {Link: "https://x/b", Title: "b"}}
	res := Incremental(recent, old, 0)
	require.Len(t, res.Emission, 2)
	assert.Equal(t, domain.Item{Link: "https://x/b", Title: "b"}, res.Emission[0])
	assert.Equal(t, domain.Item{Link: "https://x/a", Title: "renamed"}, res.Emission[1])
	assert.Empty(t, res.New)
}

func TestSortKey(t *testing.T) {
	one := regexp.MustCompile(`no=(\d+)`)
	two := regexp.MustCompile(`vol(\d+)/ep(\d+)`)
	none := regexp.MustCompile(`ep\d+`)

	tests := []struct {
		re      *regexp.Regexp
		link    string
		want    string
		matched bool
	}{
		{re: one, link: "https://x/view?no=42", want: "000000042", matched: true},
		{re: one, link: "https://x/view?id=42", want: "0", matched: false},
		{re: two, link: "https://x/vol3/ep12", want: "000000003000000012", matched: true},
		{re: none, link: "https://x/ep7", want: "000000ep7", matched: true},
		{re: one, link: "https://x/view?no=1234567890", want: "1234567890", matched: true},
		{re: nil, link: "https://x/a", want: "0", matched: false},
	}
	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			got, ok := SortKey(tt.re, tt.link)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.matched, ok)
		})
	}
}

func TestCompareKeys(t *testing.T) {
	assert.Equal(t, -1, CompareKeys("000000002", "000000010"))
	assert.Equal(t, 1, CompareKeys("10", "9"), "digits compare as numbers")
	assert.Equal(t, 0, CompareKeys("007", "7"))
	assert.Equal(t, -1, CompareKeys("99999999999999999999999", "100000000000000000000000"), "no overflow on long keys")
	assert.Equal(t, 1, CompareKeys("b", "a"))
	assert.Equal(t, -1, CompareKeys("10", "9a"), "mixed keys compare lexicographically")
}

func TestSortArchive(t *testing.T) {
	re := regexp.MustCompile(`/(\d+)$`)

	in := []domain.Item{{Link: "https://x/10"}, {Link: "https://x/2"}, {Link: "https://x/nomatch"}, {Link: "https://x/1"}}
	res, sorted := SortArchive(in, re)
	require.True(t, sorted)
	var got []string
	for _, it := range res {
		got = append(got, it.Link)
	}
	assert.Equal(t, []string{"https://x/nomatch", "https://x/1", "https://x/2", "https://x/10"}, got)
	assert.Equal(t, "000000001", res[1].SortKey)
	assert.Equal(t, "https://x/10", in[0].Link, "input is not modified")

	// stable within equal keys
	eq := []domain.Item{{Link: "https://x/a/5", Title: "first"}, {Link: "https://x/b/5", Title: "second"}}
	res, sorted = SortArchive(eq, re)
	require.True(t, sorted)
	assert.Equal(t, "first", res[0].Title)
	assert.Equal(t, "second", res[1].Title)

	// fewer than half match, insertion order kept
	low := []domain.Item{{Link: "https://x/3"}, {Link: "https://x/a"}, {Link: "https://x/b"}, {Link: "https://x/1"}, {Link: "https://x/c"}}
	res, sorted = SortArchive(low, re)
	assert.False(t, sorted)
	assert.Equal(t, "https://x/3", res[0].Link)
	assert.Equal(t, "https://x/1", res[3].Link)

	res, sorted = SortArchive(nil, re)
	assert.False(t, sorted)
	assert.Empty(t, res)
}

func TestWindow(t *testing.T) {
	all := make([]domain.Item, 0, 100)
	for i := 1; i <= 100; i++ {
		all = append(all, domain.Item{Link: fmt.Sprintf("https://x/%03d", i)})
	}

	w := Window(all, 0, 10)
	require.Len(t, w, 10)
	assert.Equal(t, "https://x/001", w[0].Link)
	assert.Equal(t, "https://x/010", w[9].Link)

	w = Window(all, 5, 0)
	require.Len(t, w, DefaultWindowSize)
	assert.Equal(t, "https://x/006", w[0].Link)

	w = Window(all, 95, 10)
	require.Len(t, w, 5, "shrinks near the end")
	assert.Equal(t, "https://x/096", w[0].Link)
	assert.Equal(t, "https://x/100", w[4].Link)

	w = Window(all, 98, 10)
	require.Len(t, w, 2)
	assert.Equal(t, "https://x/099", w[0].Link)

	assert.Empty(t, Window(all, 100, 10), "exhausted archive")
	assert.Empty(t, Window(all, 120, 10))

	assert.Len(t, Window(all[:3], 0, 10), 3)
	assert.Empty(t, Window(nil, 0, 10))
}

func TestAdvance(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	c, moved := Advance(state.Cursor{Index: 0, MTime: now}, now, 5, 100)
	assert.False(t, moved)
	assert.Equal(t, 0, c.Index)

	c, moved = Advance(state.Cursor{Index: 0, MTime: now.Add(-24 * time.Hour)}, now, 5, 100)
	assert.True(t, moved)
	assert.Equal(t, 5, c.Index)
	assert.Equal(t, now, c.MTime)

	c, moved = Advance(state.Cursor{Index: 0, MTime: now.Add(-12 * time.Hour)}, now, 1, 100)
	assert.False(t, moved, "half a day at one item per day is not enough")
	assert.Equal(t, 0, c.Index)

	c, moved = Advance(state.Cursor{Index: 0, MTime: now.Add(-36 * time.Hour)}, now, 0.5, 100)
	assert.False(t, moved)
	assert.Equal(t, 0, c.Index)

	c, moved = Advance(state.Cursor{Index: 98, MTime: now.Add(-48 * time.Hour)}, now, 5, 100)
	assert.True(t, moved)
	assert.Equal(t, 100, c.Index, "clamped to the archive size")

	c, _ = Advance(state.Cursor{Index: 120, MTime: now.Add(-48 * time.Hour)}, now, 5, 100)
	assert.Equal(t, 120, c.Index, "never decreases")

	c, moved = Advance(state.Cursor{Index: 3, MTime: now.Add(time.Hour)}, now, 5, 100)
	assert.False(t, moved, "mtime in the future")
	assert.Equal(t, 3, c.Index)
}
