package feed

import (
	"fmt"
	"os"
	"time"

	"github.com/mmcdole/gofeed"
)

// Info summarizes a published feed document
type Info struct {
	Title     string    `json:"title"`
	Size      int64     `json:"size"`
	ItemCount int       `json:"item_count"`
	ModTime   time.Time `json:"mod_time"`
	Links     []string  `json:"-"`
}

// Inspect parses the published document at path
func Inspect(path string) (Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, fmt.Errorf("stat feed: %w", err)
	}

	fh, err := os.Open(path) //nolint:gosec // path built by the engine
	if err != nil {
		return Info{}, fmt.Errorf("open feed: %w", err)
	}
	defer fh.Close()

	// parse feed
	parser := gofeed.NewParser()
	feed, err := parser.Parse(fh)
	if err != nil {
		return Info{}, fmt.Errorf("parse feed: %w", err)
	}

	res := Info{
		Title:     feed.Title,
		Size:      fi.Size(),
		ItemCount: len(feed.Items),
		ModTime:   fi.ModTime(),
		Links:     make([]string, 0, len(feed.Items)),
	}
	for _, item := range feed.Items {
		res.Links = append(res.Links, item.Link)
	}
	return res, nil
}
