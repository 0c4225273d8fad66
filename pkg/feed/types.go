package feed

import (
	"encoding/xml"
)

// BlogChannelNS is the namespace declared on the rss element
const BlogChannelNS = "http://backend.userland.com/blogChannelModule"

// RSS represents the root RSS 2.0 element
type RSS struct {
	XMLName     xml.Name    `xml:"rss"`
	Version     string      `xml:"version,attr"`
	BlogChannel string      `xml:"xmlns:blogChannel,attr"`
	Channel     *RSSChannel `xml:"channel"`
}

// RSSChannel represents an RSS channel
type RSSChannel struct {
	XMLName       xml.Name   `xml:"channel"`
	Title         string     `xml:"title"`
	Link          string     `xml:"link"`
	Description   string     `xml:"description"`
	LastBuildDate string     `xml:"lastBuildDate"`
	Language      string     `xml:"language,omitempty"`
	Copyright     string     `xml:"copyright,omitempty"`
	Generator     string     `xml:"generator,omitempty"`
	Items         []*RSSItem `xml:"item"`
}

// RSSGUID represents the guid element of an item
type RSSGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

// RSSItem represents an item in an RSS feed
type RSSItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	GUID        RSSGUID `xml:"guid"`
	PubDate     string  `xml:"pubDate"`
	Description string  `xml:"description"`
}
