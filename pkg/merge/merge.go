// Package merge decides which items a feed emits: the diff of the recent crawl against prior
// state for incremental feeds, and a sliding window over the sorted archive for completed ones.
package merge

import (
	"github.com/umputun/feedmaker/pkg/domain"
)

// Result of an incremental merge
type Result struct {
	Emission []domain.Item // items to materialize and publish, in feed order
	New      []domain.Item // recent items absent from old, in recent order
}

// Incremental computes new = recent \ old keyed by link and returns reverse(new) ++ reverse(old),
// capped to maxItems if positive. Old items seen again in recent take the recent title.
func Incremental(recent, old []domain.Item, maxItems int) Result {
	recent = domain.Dedup(recent)
	old = domain.Dedup(old)

	recentTitles := make(map[string]string, len(recent))
	for _, it := range recent {
		recentTitles[it.Link] = it.Title
	}
	oldLinks := make(map[string]bool, len(old))
	updatedOld := make([]domain.Item, 0, len(old))
	for _, it := range old {
		oldLinks[it.Link] = true
		if title, ok := recentTitles[it.Link]; ok && title != "" {
			it.Title = title
		}
		updatedOld = append(updatedOld, it)
	}

	var newItems []domain.Item
	for _, it := range recent {
		if !oldLinks[it.Link] {
			newItems = append(newItems, it)
		}
	}

	emission := append(domain.Reverse(newItems), domain.Reverse(updatedOld)...)
	if maxItems > 0 && len(emission) > maxItems {
		emission = emission[:maxItems]
	}
	return Result{Emission: emission, New: newItems}
}
