package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/umputun/feedmaker/pkg/urlutil"
)

var (
	reHidden   = regexp.MustCompile(`display\s*:\s*none|visibility\s*:\s*hidden`)
	reAbsolute = regexp.MustCompile(`^((https?:)?//|data:image/)`)
)

// lazyAttrs are checked in order before src, lazy loading pages keep the real image url there
var lazyAttrs = []string{"data-lazy-src", "lazy-src", "lazysrc", "data-src", "data-original", "o_src"}

func isHidden(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Key == "style" && reHidden.MatchString(a.Val) {
			return true
		}
	}
	return false
}

// clean removes scripts, styles, comments and hidden elements, and makes img and a urls absolute
func clean(s *goquery.Selection, pageURL string) {
	s.Find("script,style").Remove()
	s.Find("[style]").FilterFunction(func(_ int, el *goquery.Selection) bool {
		return isHidden(el.Nodes[0])
	}).Remove()
	for _, n := range s.Nodes {
		removeComments(n)
	}

	s.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := imageSource(img)
		for _, a := range lazyAttrs {
			img.RemoveAttr(a)
		}
		if src == "" {
			img.Remove()
			return
		}
		img.SetAttr("src", absoluteURL(pageURL, src))
	})

	s.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
			return
		}
		a.SetAttr("href", absoluteURL(pageURL, href))
	})
}

func imageSource(img *goquery.Selection) string {
	for _, a := range lazyAttrs {
		if v := strings.TrimSpace(img.AttrOr(a, "")); v != "" {
			return v
		}
	}
	return strings.TrimSpace(img.AttrOr("src", ""))
}

// absoluteURL resolves u against the page, protocol relative urls become https
func absoluteURL(pageURL, u string) string {
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	if reAbsolute.MatchString(u) || pageURL == "" {
		return u
	}
	res, err := urlutil.Resolve(pageURL, u)
	if err != nil {
		return u
	}
	return res
}

func removeComments(n *html.Node) {
	var comments []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.CommentNode {
				comments = append(comments, c)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	for _, c := range comments {
		c.Parent.RemoveChild(c)
	}
}
