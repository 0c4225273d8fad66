package merge

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/umputun/feedmaker/pkg/domain"
	"github.com/umputun/feedmaker/pkg/state"
)

// DefaultWindowSize is the number of archive items a completed feed emits at once
const DefaultWindowSize = 10

const sortKeyWidth = 9

// SortKey extracts the sort key from the link. Each of the first two capture groups is left
// padded with '0' to 9 characters and concatenated. Links not matching the pattern get "0".
func SortKey(re *regexp.Regexp, link string) (string, bool) {
	if re == nil {
		return "0", false
	}
	m := re.FindStringSubmatch(link)
	if m == nil {
		return "0", false
	}
	if len(m) < 2 {
		return leftPad(m[0]), true
	}
	key := leftPad(m[1])
	if len(m) > 2 {
		key += leftPad(m[2])
	}
	return key, true
}

func leftPad(s string) string {
	if len(s) >= sortKeyWidth {
		return s
	}
	return strings.Repeat("0", sortKeyWidth-len(s)) + s
}

// CompareKeys compares two sort keys numerically when both are all digits, lexicographically otherwise
func CompareKeys(a, b string) int {
	if isDigits(a) && isDigits(b) {
		a, b = strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
		if len(a) != len(b) {
			if len(a) < len(b) {
				return -1
			}
			return 1
		}
	}
	return strings.Compare(a, b)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// SortArchive sets SortKey on every item and sorts them stably by it. If fewer than half of the
// items match the pattern the insertion order is kept and sorted is false.
func SortArchive(items []domain.Item, re *regexp.Regexp) (res []domain.Item, sorted bool) {
	res = make([]domain.Item, len(items))
	matched := 0
	for i, it := range items {
		key, ok := SortKey(re, it.Link)
		if ok {
			matched++
		}
		it.SortKey = key
		res[i] = it
	}
	if len(res) == 0 || matched*2 < len(res) {
		return res, false
	}
	sort.SliceStable(res, func(i, j int) bool { return CompareKeys(res[i].SortKey, res[j].SortKey) < 0 })
	return res, true
}

// Window returns items in [start, start+size), shrinking near the end of the archive.
// Returns nil once start reaches the end.
func Window(items []domain.Item, start, size int) []domain.Item {
	if size <= 0 {
		size = DefaultWindowSize
	}
	if start < 0 || start >= len(items) {
		return nil
	}
	end := min(start+size, len(items))
	return items[start:end]
}

// Advance moves the cursor by floor(elapsed days * unitPerDay) items. The index never decreases
// and is clamped to total. Returns the new cursor and true if it moved.
func Advance(c state.Cursor, now time.Time, unitPerDay float64, total int) (state.Cursor, bool) {
	elapsed := now.Sub(c.MTime).Seconds()
	inc := int(math.Floor(elapsed * unitPerDay / 86400))
	if inc <= 0 {
		return c, false
	}
	idx := min(c.Index+inc, total)
	if idx < c.Index {
		idx = c.Index
	}
	return state.Cursor{Index: idx, MTime: now}, true
}
