package domain

// Item represents a single syndication entry discovered on a list page.
// Identity is Link; Title may change between crawls and the latest observed title wins.
type Item struct {
	Link    string
	Title   string
	SortKey string // set only for completed feeds
}

// Emitted represents an item rendered into the published feed
type Emitted struct {
	Item
	Body      string // artifact content, possibly truncated
	Truncated bool
}

// Dedup removes items with duplicate links, keeping the first occurrence
func Dedup(items []Item) []Item {
	seen := make(map[string]bool, len(items))
	res := make([]Item, 0, len(items))
	for _, it := range items {
		if seen[it.Link] {
			continue
		}
		seen[it.Link] = true
		res = append(res, it)
	}
	return res
}

// Reverse returns a reversed copy of items
func Reverse(items []Item) []Item {
	res := make([]Item, len(items))
	for i, it := range items {
		res[len(items)-1-i] = it
	}
	return res
}
