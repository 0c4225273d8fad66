package feed

import (
	"bytes"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedmaker/pkg/config"
	"github.com/umputun/feedmaker/pkg/domain"
)

func testItems() []domain.Emitted {
	return []domain.Emitted{
		{Item: domain.Item{Link: "https://example.com/b?id=2", Title: "Article B"}, Body: "<p>Body B</p>"},
		{Item: domain.Item{Link: "https://example.com/a?id=1", Title: "Article A"}, Body: "<p>Body A</p>"},
	}
}

func TestGenerator_GenerateRSS(t *testing.T) {
	generator := NewGenerator(config.RSSConfig{
		Title:       "Example Feed",
		Link:        "https://example.com/",
		Description: "Example description",
		Language:    "en",
		Copyright:   "Example Co",
	})
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.FixedZone("KST", 9*3600))

	t.Run("channel and items", func(t *testing.T) {
		data, err := generator.GenerateRSS(testItems(), now)
		require.NoError(t, err)
		rss := string(data)

		// check basic structure
		assert.Contains(t, rss, `<?xml version="1.0" encoding="UTF-8"?>`)
		assert.Contains(t, rss, `<rss version="2.0" xmlns:blogChannel="http://backend.userland.com/blogChannelModule">`)
		assert.Contains(t, rss, `<title>Example Feed</title>`)
		assert.Contains(t, rss, `<link>https://example.com/</link>`)
		assert.Contains(t, rss, `<description>Example description</description>`)
		assert.Contains(t, rss, `<lastBuildDate>Mon, 01 Jan 2024 12:00:00 +0900</lastBuildDate>`)
		assert.Contains(t, rss, `<language>en</language>`)
		assert.Contains(t, rss, `<copyright>Example Co</copyright>`)
		assert.Contains(t, rss, `<generator>feedmaker</generator>`)

		// check items
		assert.Contains(t, rss, `<guid isPermaLink="true">https://example.com/a?id=1</guid>`)
		assert.Contains(t, rss, `<pubDate>Mon, 01 Jan 2024 12:00:00 +0900</pubDate>`)
		assert.Contains(t, rss, `<description>&lt;p&gt;Body A&lt;/p&gt;</description>`)
		assert.Less(t, bytes.Index(data, []byte("Article B")), bytes.Index(data, []byte("Article A")), "emission order kept")
	})

	t.Run("empty items", func(t *testing.T) {
		data, err := generator.GenerateRSS(nil, now)
		require.NoError(t, err)

		assert.Contains(t, string(data), `<channel>`)
		assert.NotContains(t, string(data), `<item>`)
	})

	t.Run("guid with prefix", func(t *testing.T) {
		gen := NewGenerator(config.RSSConfig{Title: "t", URLPrefixForGUID: "https://mirror.example.com/", Generator: "custom"})
		data, err := gen.GenerateRSS(testItems()[:1], now)
		require.NoError(t, err)

		assert.Contains(t, string(data), `<guid isPermaLink="true">https://mirror.example.com/b</guid>`)
		assert.Contains(t, string(data), `<generator>custom</generator>`)
	})
}

func TestGenerator_RoundTrip(t *testing.T) {
	generator := NewGenerator(config.RSSConfig{Title: "Round Trip", Link: "https://example.com/"})
	items := testItems()

	data, err := generator.GenerateRSS(items, time.Now())
	require.NoError(t, err)

	parsed, err := gofeed.NewParser().ParseString(string(data))
	require.NoError(t, err)
	assert.Equal(t, "Round Trip", parsed.Title)
	require.Len(t, parsed.Items, len(items))
	for i, it := range parsed.Items {
		assert.Equal(t, items[i].Title, it.Title)
		assert.Equal(t, items[i].Link, it.Link)
		assert.Equal(t, items[i].Link, it.GUID)
		assert.Equal(t, items[i].Body, it.Description)
		require.NotNil(t, it.PublishedParsed)
	}

	// re-rendering the same items at another time is not a change
	again, err := generator.GenerateRSS(items, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, Changed(data, again))
}
