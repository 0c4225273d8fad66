package transform

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	log "github.com/go-pkgz/lgr"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/umputun/feedmaker/pkg/cache"
	"github.com/umputun/feedmaker/pkg/fetch"
	"github.com/umputun/feedmaker/pkg/fsutil"
	"github.com/umputun/feedmaker/pkg/urlutil"
)

// ImageCache stores images referenced by the html under ImageDir/FeedName and rewrites
// their src to the public cache url. Images failing to download point to the placeholder.
type ImageCache struct {
	Fetcher   Fetcher
	Options   fetch.Options
	FeedName  string
	ImageDir  string
	URLPrefix string
	PageURL   string // base for relative image urls
}

// Transform downloads every not yet cached image and rewrites the html. The input is parsed as
// body content, so no html/head/body wrapper is added to the output.
func (c *ImageCache) Transform(ctx context.Context, in []byte) ([]byte, error) {
	if c.ImageDir == "" || c.URLPrefix == "" {
		return in, nil
	}

	root := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(bytes.NewReader(in), root)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	doc := goquery.NewDocumentFromNode(root)

	var ctxErr error
	doc.Find("img[src]").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src := strings.TrimSpace(img.AttrOr("src", "")) // attribute values come unescaped
		if src == "" || strings.HasPrefix(src, c.URLPrefix) {
			return true
		}
		if ctxErr = ctx.Err(); ctxErr != nil {
			return false
		}
		if strings.HasPrefix(src, "//") {
			src = "https:" + src
		} else if !strings.HasPrefix(src, "http") && !strings.HasPrefix(src, "data:image") && c.PageURL != "" {
			if abs, err := urlutil.Resolve(c.PageURL, src); err == nil {
				src = abs
			}
		}
		img.SetAttr("src", c.store(ctx, src))
		return true
	})
	if ctxErr != nil {
		return nil, ctxErr
	}

	res, err := doc.Html()
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return []byte(res), nil
}

// store saves the image and returns its public url, or the placeholder url on failure
func (c *ImageCache) store(ctx context.Context, src string) string {
	path := cache.AssetPath(c.ImageDir, c.FeedName, src, "", 0)
	publicURL := cache.AssetURL(c.URLPrefix, c.FeedName, src, "", 0)
	if a := cache.Stat(path); a.Size > 0 {
		return publicURL
	}

	data, err := c.load(ctx, src)
	if err != nil || len(data) == 0 {
		log.Printf("[WARN] can't cache image %s for %s: %v", truncate(src, 80), c.FeedName, err)
		return cache.NotFoundURL(c.URLPrefix)
	}
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil { //nolint:gosec // served publicly
		log.Printf("[WARN] can't write image %s: %v", path, err)
		return cache.NotFoundURL(c.URLPrefix)
	}
	log.Printf("[DEBUG] cached image %s as %s", truncate(src, 80), path)
	return publicURL
}

func (c *ImageCache) load(ctx context.Context, src string) ([]byte, error) {
	if strings.HasPrefix(src, "data:image") {
		idx := strings.Index(src, ",")
		if idx < 0 {
			return nil, fmt.Errorf("malformed data url")
		}
		if !strings.Contains(src[:idx], ";base64") {
			return []byte(src[idx+1:]), nil
		}
		return base64.StdEncoding.DecodeString(src[idx+1:])
	}
	if c.Fetcher == nil {
		return nil, fmt.Errorf("no fetcher")
	}
	res, err := c.Fetcher.Fetch(ctx, src, c.Options)
	if err != nil {
		return nil, err
	}
	return res.Body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
