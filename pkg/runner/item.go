package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/feedmaker/pkg/cache"
	"github.com/umputun/feedmaker/pkg/config"
	"github.com/umputun/feedmaker/pkg/domain"
	"github.com/umputun/feedmaker/pkg/extract"
	"github.com/umputun/feedmaker/pkg/feed"
	"github.com/umputun/feedmaker/pkg/fetch"
	"github.com/umputun/feedmaker/pkg/transform"
)

// emit materializes the emission list in order, renders it and publishes the feed document
func (r *Runner) emit(ctx context.Context, f domain.Feed, cfg *config.FeedConfig, emission []domain.Item, now time.Time, rep *Report) error {
	rep.Considered = len(emission)
	items, err := r.materializeAll(ctx, f, cfg, emission, rep)
	if err != nil {
		return err
	}
	rep.Emitted = len(items)
	if len(items) == 0 {
		return fmt.Errorf("no items materialized for %s: %w", f.ID(), domain.ErrNothingToPublish)
	}

	data, err := feed.NewGenerator(cfg.RSS).GenerateRSS(items, now)
	if err != nil {
		return fmt.Errorf("render %s: %v: %w", f.ID(), err, domain.ErrPublishFailed)
	}
	path := filepath.Join(f.Dir, f.Name+".xml")
	if rep.Published, err = feed.Publish(path, data); err != nil {
		return err
	}
	return feed.Mirror(path, r.params.PublicDir, f.Name, rep.Published)
}

// materializeAll returns the items with artifacts, dropping the ones failed to extract
func (r *Runner) materializeAll(ctx context.Context, f domain.Feed, cfg *config.FeedConfig, emission []domain.Item, rep *Report) ([]domain.Emitted, error) {
	res := make([]domain.Emitted, 0, len(emission))
	fetched := false
	for _, it := range emission {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		art := cache.Stat(cache.ArtifactPath(f.Dir, it.Link))
		if !art.Present {
			if fetched && cfg.Extraction.ForceSleepBetweenArticles {
				if err := sleep(ctx, r.params.ItemPause); err != nil {
					return nil, err
				}
			}
			fetched = true
			if err := r.materialize(ctx, f, cfg, it.Link); err != nil {
				if ctx.Err() != nil {
					return nil, err
				}
				log.Printf("[WARN] drop item %s of %s, kind=%s: %v", it.Link, f.ID(), domain.KindOf(err), err)
				rep.Dropped++
				continue
			}
		}

		body, truncated, err := cache.ReadBody(art.Path)
		if err != nil {
			log.Printf("[WARN] drop item %s of %s: %v", it.Link, f.ID(), err)
			rep.Dropped++
			continue
		}
		if truncated {
			log.Printf("[DEBUG] body of %s truncated to %d bytes", it.Link, cache.MaxBodySize)
		}
		res = append(res, domain.Emitted{Item: it, Body: body, Truncated: truncated})
	}
	return res, nil
}

// materialize fetches, extracts and post-processes the item page and stores the artifact.
// A failed attempt is retried once after RetryDelay, an empty extraction is not retried.
func (r *Runner) materialize(ctx context.Context, f domain.Feed, cfg *config.FeedConfig, link string) error {
	opts := fetch.Options{
		UserAgent: cfg.Extraction.UserAgent,
		Headers:   cfg.Extraction.Headers,
		VerifySSL: cfg.Extraction.VerifySSL,
		Timeout:   cfg.Extraction.RequestTimeout(),
		RenderJS:  cfg.Extraction.RenderJS,
	}
	sel := extract.Selectors{
		IDs:     cfg.Extraction.ElementIDList,
		Classes: cfg.Extraction.ElementClassList,
		Paths:   cfg.Extraction.ElementPathList,
	}
	if cfg.Extraction.BypassElementExtraction {
		sel = extract.Selectors{}
	}

	env := transform.Env{
		FeedDir:        f.Dir,
		FeedName:       f.Name,
		PageURL:        link,
		LinkArg:        true,
		Fetcher:        r.fetcher,
		FetchOptions:   opts,
		ImageDir:       r.imageDir(),
		ImageURLPrefix: r.params.ImageURLPrefix,
	}
	chain, err := transform.ResolveChain(cfg.Extraction.PostProcessScriptList, env)
	if err != nil {
		return fmt.Errorf("resolve post-processors: %w", err)
	}

	var body string
	var lastErr error
	err = repeater.NewFixed(2, r.params.RetryDelay).Do(ctx, func() error {
		body, lastErr = r.extractItem(ctx, link, sel, opts, cfg.Extraction.Encoding, chain)
		if errors.Is(lastErr, domain.ErrExtractionEmpty) {
			return nil // the page is there but has nothing to extract, a retry won't help
		}
		if lastErr != nil {
			log.Printf("[DEBUG] extract %s failed: %v", link, lastErr)
		}
		return lastErr
	})
	if ctx.Err() != nil {
		return fmt.Errorf("extract %s: %w", link, ctx.Err())
	}
	if lastErr != nil {
		return lastErr
	}
	if err != nil {
		return fmt.Errorf("extract %s: %w", link, err)
	}

	_, ok, err := cache.WriteArtifact(f.Dir, f.Name, r.params.WebBaseURL, link, body)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("post-processed content of %s is empty: %w", link, domain.ErrExtractionEmpty)
	}
	return nil
}

func (r *Runner) extractItem(ctx context.Context, link string, sel extract.Selectors, opts fetch.Options,
	encoding string, chain transform.Chain) (string, error) {
	page, err := r.fetcher.Fetch(ctx, link, opts)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	pageURL := page.URL
	if pageURL == "" {
		pageURL = link
	}
	fragment, err := r.extractor.Extract(page.Body, sel, extract.Options{Encoding: encoding, PageURL: pageURL, Sanitize: true})
	if err != nil {
		return "", fmt.Errorf("extract: %w", err)
	}
	out, err := chain.Transform(ctx, []byte(fragment))
	if err != nil {
		return "", fmt.Errorf("post-process: %w", err)
	}
	return string(out), nil
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
