package transform

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/umputun/feedmaker/pkg/urlutil"
)

// LinkCapture turns list page html into "link<TAB>title" lines, one per anchor with text
type LinkCapture struct {
	BaseURL string
}

// Transform emits anchors in document order, relative hrefs are resolved against BaseURL
func (l *LinkCapture) Transform(_ context.Context, in []byte) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(in))
	if err != nil {
		return nil, fmt.Errorf("parse list html: %w", err)
	}

	var out bytes.Buffer
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
			return
		}
		title := strings.Join(strings.Fields(a.Text()), " ")
		if title == "" {
			title = strings.Join(strings.Fields(a.AttrOr("title", "")), " ")
		}
		if title == "" {
			return
		}
		link := href
		if l.BaseURL != "" {
			if abs, err := urlutil.Resolve(l.BaseURL, href); err == nil {
				link = abs
			}
		}
		out.WriteString(link + "\t" + title + "\n")
	})
	return out.Bytes(), nil
}
