package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/feedmaker/pkg/config"
	"github.com/umputun/feedmaker/pkg/domain"
	"github.com/umputun/feedmaker/pkg/urlutil"
)

// DefaultGenerator is reported in the generator element when rss.generator is not set
const DefaultGenerator = "feedmaker"

// Generator renders RSS documents of a single feed
type Generator struct {
	channel config.RSSConfig
}

// NewGenerator creates a new feed generator for the channel metadata
func NewGenerator(channel config.RSSConfig) *Generator {
	if channel.Generator == "" {
		channel.Generator = DefaultGenerator
	}
	return &Generator{channel: channel}
}

// GenerateRSS creates an RSS 2.0 document from emitted items, keeping their order
func (g *Generator) GenerateRSS(items []domain.Emitted, now time.Time) ([]byte, error) {
	date := now.Format(time.RFC1123Z)

	// convert items to RSS items
	rssItems := make([]*RSSItem, 0, len(items))
	for _, item := range items {
		rssItems = append(rssItems, &RSSItem{
			Title:       item.Title,
			Link:        item.Link,
			GUID:        RSSGUID{Value: g.guid(item.Link), IsPermaLink: true},
			PubDate:     date,
			Description: item.Body,
		})
	}

	// create RSS structure
	feed := &RSS{
		Version:     "2.0",
		BlogChannel: BlogChannelNS,
		Channel: &RSSChannel{
			Title:         g.channel.Title,
			Link:          g.channel.Link,
			Description:   g.channel.Description,
			LastBuildDate: date,
			Language:      g.channel.Language,
			Copyright:     g.channel.Copyright,
			Generator:     g.channel.Generator,
			Items:         rssItems,
		},
	}

	// marshal to XML
	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal RSS: %w", err)
	}

	// add XML declaration
	return []byte(xml.Header + string(output) + "\n"), nil
}

// guid is the item link, or url_prefix_for_guid followed by the link path when the prefix is set
func (g *Generator) guid(link string) string {
	if g.channel.URLPrefixForGUID == "" {
		return link
	}
	return strings.TrimSuffix(g.channel.URLPrefixForGUID, "/") + urlutil.Path(link)
}
