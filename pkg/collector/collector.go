// Package collector crawls the list pages of a feed and turns them into a deduplicated list snapshot.
package collector

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/feedmaker/pkg/config"
	"github.com/umputun/feedmaker/pkg/domain"
	"github.com/umputun/feedmaker/pkg/extract"
	"github.com/umputun/feedmaker/pkg/fetch"
	"github.com/umputun/feedmaker/pkg/state"
	"github.com/umputun/feedmaker/pkg/transform"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor

// Fetcher retrieves list pages
type Fetcher interface {
	Fetch(ctx context.Context, url string, opts fetch.Options) (fetch.Result, error)
}

// Extractor selects the part of a list page the capture script works on
type Extractor interface {
	Extract(data []byte, sel extract.Selectors, opts extract.Options) (string, error)
}

// Collector runs fetch, capture and post-process stages for every list url of a feed
type Collector struct {
	Fetcher    Fetcher
	Extractor  Extractor
	RetryDelay time.Duration // delay before the single retry of a failed list fetch
}

// Collect crawls list_url_list in order and returns the deduplicated items, the first occurrence of a link wins.
// Any stage failure fails the whole collection with domain.ErrCollectionFailed, nothing is saved in this case.
func (c *Collector) Collect(ctx context.Context, feed domain.Feed, cfg config.CollectionConfig) ([]domain.Item, error) {
	var items []domain.Item
	for _, listURL := range cfg.ListURLList {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("collect %s: %w", feed.ID(), err)
		}
		res, err := c.collectURL(ctx, feed, cfg, listURL)
		if err != nil {
			return nil, err
		}
		log.Printf("[DEBUG] collected %d items from %s for %s", len(res), listURL, feed.ID())
		items = append(items, res...)
	}

	items = domain.Dedup(items)
	if len(items) == 0 {
		return nil, fmt.Errorf("no items in list of %s: %w", feed.ID(), domain.ErrCollectionFailed)
	}
	return items, nil
}

// CollectAndSave collects items and stores them as the snapshot of the given day
func (c *Collector) CollectAndSave(ctx context.Context, feed domain.Feed, cfg config.CollectionConfig, day time.Time) ([]domain.Item, error) {
	items, err := c.Collect(ctx, feed, cfg)
	if err != nil {
		return nil, err
	}
	if err := state.WriteSnapshot(feed.Dir, day, items); err != nil {
		return nil, fmt.Errorf("save snapshot of %s: %w", feed.ID(), err)
	}
	return items, nil
}

func (c *Collector) collectURL(ctx context.Context, feed domain.Feed, cfg config.CollectionConfig, listURL string) ([]domain.Item, error) {
	page, err := c.fetch(ctx, listURL, cfg)
	if err != nil {
		return nil, fmt.Errorf("fetch list %s: %v: %w", listURL, err, domain.ErrCollectionFailed)
	}

	sel := extract.Selectors{IDs: cfg.ElementIDList, Classes: cfg.ElementClassList, Paths: cfg.ElementPathList}
	fragment, err := c.Extractor.Extract(page.Body, sel, extract.Options{Encoding: cfg.Encoding, PageURL: page.URL})
	if err != nil {
		return nil, fmt.Errorf("extract list %s: %v: %w", listURL, err, domain.ErrCollectionFailed)
	}

	env := transform.Env{FeedDir: feed.Dir, FeedName: feed.Name, PageURL: page.URL}
	scripts := append([]string{captureScript(cfg)}, cfg.PostProcessScriptList...)
	chain, err := transform.ResolveChain(scripts, env)
	if err != nil {
		return nil, fmt.Errorf("resolve scripts of %s: %v: %w", feed.ID(), err, domain.ErrCollectionFailed)
	}

	out, err := chain.Transform(ctx, []byte(fragment))
	if err != nil {
		return nil, fmt.Errorf("capture list %s: %v: %w", listURL, err, domain.ErrCollectionFailed)
	}

	items, err := ParseLines(out)
	if err != nil {
		return nil, fmt.Errorf("parse captured list %s: %v: %w", listURL, err, domain.ErrCollectionFailed)
	}
	return items, nil
}

// fetch retrieves the list page with a single retry
func (c *Collector) fetch(ctx context.Context, listURL string, cfg config.CollectionConfig) (fetch.Result, error) {
	opts := fetch.Options{
		UserAgent: cfg.UserAgent,
		Headers:   cfg.Headers,
		VerifySSL: cfg.VerifySSL,
		Timeout:   cfg.RequestTimeout(),
		RenderJS:  cfg.RenderJS,
	}

	var res fetch.Result
	var lastErr error
	err := repeater.NewFixed(2, c.RetryDelay).Do(ctx, func() error {
		r, err := c.Fetcher.Fetch(ctx, listURL, opts)
		if err != nil {
			log.Printf("[DEBUG] fetch %s failed: %v", listURL, err)
			lastErr = err
			return err
		}
		res, lastErr = r, nil
		return nil
	})
	if err != nil {
		if lastErr != nil && ctx.Err() == nil {
			return fetch.Result{}, lastErr
		}
		return fetch.Result{}, err
	}
	return res, nil
}

func captureScript(cfg config.CollectionConfig) string {
	if strings.TrimSpace(cfg.ItemCaptureScript) == "" {
		return config.DefaultCaptureScript
	}
	return cfg.ItemCaptureScript
}

// ParseLines parses captured "link<TAB>title" lines. Blank lines and lines starting with '#' are skipped,
// any other line must have exactly two tab separated fields with a non-empty link and title.
func ParseLines(data []byte) ([]domain.Item, error) {
	var res []domain.Item
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 || strings.TrimSpace(fields[0]) == "" || strings.TrimSpace(fields[1]) == "" {
			return nil, fmt.Errorf("line %d: expected link<TAB>title, got %q", lineNum, line)
		}
		res = append(res, domain.Item{Link: strings.TrimSpace(fields[0]), Title: strings.TrimSpace(fields[1])})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return res, nil
}
