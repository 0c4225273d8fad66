// Package runner drives feeds end to end: collection, diff or window selection, per-item
// materialization, rss rendering and atomic publish. It also runs housekeeping.
package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/feedmaker/pkg/collector"
	"github.com/umputun/feedmaker/pkg/config"
	"github.com/umputun/feedmaker/pkg/domain"
	"github.com/umputun/feedmaker/pkg/extract"
	"github.com/umputun/feedmaker/pkg/fetch"
	"github.com/umputun/feedmaker/pkg/fsutil"
	"github.com/umputun/feedmaker/pkg/merge"
	"github.com/umputun/feedmaker/pkg/state"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor

// Fetcher retrieves list pages, item pages and images
type Fetcher interface {
	Fetch(ctx context.Context, url string, opts fetch.Options) (fetch.Result, error)
}

// Extractor selects and cleans the content of fetched pages
type Extractor interface {
	Extract(data []byte, sel extract.Selectors, opts extract.Options) (string, error)
}

// Params holds engine level settings shared by all feeds
type Params struct {
	WebBaseURL          string        // base of the tracking pixel url
	ImageURLPrefix      string        // public url of the image cache
	PublicDir           string        // mirror of published feeds, images are cached under <public>/img
	RetryDelay          time.Duration // delay before the single retry of a failed fetch
	ItemPause           time.Duration // pause between freshly fetched items with force_sleep_between_articles
	MaxWorkers          int
	FeedTimeout         time.Duration // wall-clock limit of a single feed run
	HTMLArchivingPeriod int           // days
	ListArchivingPeriod int           // days
}

// Options of a single run
type Options struct {
	CollectOnly bool // collect and store today's snapshot, skip materialization and publish
}

// Report is the outcome of a feed run
type Report struct {
	Feed       domain.Feed
	Considered int // items in the emission list
	Emitted    int
	Dropped    int
	Published  bool // a new document replaced the previous one
	Duration   time.Duration
	Err        error
}

// Runner processes feeds
type Runner struct {
	fetcher   Fetcher
	extractor Extractor
	collector *collector.Collector
	params    Params
	now       func() time.Time
}

// New makes a runner with the given fetcher and extractor
func New(fetcher Fetcher, extractor Extractor, params Params) *Runner {
	if params.MaxWorkers <= 0 {
		params.MaxWorkers = 1
	}
	if params.ItemPause == 0 {
		params.ItemPause = time.Second
	}
	if params.ListArchivingPeriod <= 0 {
		params.ListArchivingPeriod = 7
	}
	if params.HTMLArchivingPeriod <= 0 {
		params.HTMLArchivingPeriod = 30
	}
	return &Runner{
		fetcher:   fetcher,
		extractor: extractor,
		collector: &collector.Collector{Fetcher: fetcher, Extractor: extractor, RetryDelay: params.RetryDelay},
		params:    params,
		now:       time.Now,
	}
}

// Run processes a single feed under its exclusive lock. It succeeds if at least one item was
// materialized and the feed document was either published or found unchanged.
func (r *Runner) Run(ctx context.Context, f domain.Feed, opts Options) (rep Report, err error) {
	start := time.Now()
	rep = Report{Feed: f}
	runID := uuid.NewString()[:8]
	log.Printf("[DEBUG] run %s started for %s", runID, f.ID())

	defer func() {
		rep.Duration = time.Since(start)
		rep.Err = err
		logReport(rep)
	}()

	lock, err := fsutil.TryLock(f.Dir)
	if err != nil {
		return rep, fmt.Errorf("run %s: %w", f.ID(), err)
	}
	defer func() {
		if e := lock.Unlock(); e != nil {
			log.Printf("[WARN] failed to unlock %s: %v", f.ID(), e)
		}
	}()

	if r.params.FeedTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.params.FeedTimeout)
		defer cancel()
	}

	cfg, err := config.LoadFeedConfig(f.Dir)
	if err != nil {
		return rep, fmt.Errorf("load config of %s: %w", f.ID(), err)
	}

	if cfg.Collection.IsCompleted {
		err = r.runCompleted(ctx, f, cfg, opts, &rep)
	} else {
		err = r.runIncremental(ctx, f, cfg, opts, &rep)
	}
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return rep, fmt.Errorf("run %s: %v: %w", f.ID(), err, domain.ErrDeadlineExceeded)
	}
	log.Printf("[DEBUG] run %s finished for %s", runID, f.ID())
	return rep, err
}

// runIncremental emits new items of the recent crawl followed by the previously known ones
func (r *Runner) runIncremental(ctx context.Context, f domain.Feed, cfg *config.FeedConfig, opts Options, rep *Report) error {
	now := r.now()

	// old items are loaded before today's snapshot is written
	var old []domain.Item
	if !cfg.Collection.IgnoreOldList {
		var err error
		if old, err = state.LatestItems(f.Dir, now, r.params.ListArchivingPeriod); err != nil {
			return fmt.Errorf("load old items of %s: %w", f.ID(), err)
		}
	}

	recent, err := r.collector.CollectAndSave(ctx, f, cfg.Collection, now)
	if err != nil {
		return err
	}
	if opts.CollectOnly {
		log.Printf("[INFO] collected %d items for %s", len(recent), f.ID())
		return nil
	}

	res := merge.Incremental(recent, old, cfg.Collection.MaxItems)
	log.Printf("[DEBUG] %s: %d recent, %d old, %d new", f.ID(), len(recent), len(old), len(res.New))
	return r.emit(ctx, f, cfg, res.Emission, now, rep)
}

// runCompleted emits a window over the sorted archive and advances the window cursor
func (r *Runner) runCompleted(ctx context.Context, f domain.Feed, cfg *config.FeedConfig, opts Options, rep *Report) error {
	now := r.now()

	if _, err := r.collector.CollectAndSave(ctx, f, cfg.Collection, now); err != nil {
		snaps, lerr := state.ListSnapshots(f.Dir)
		if lerr != nil || len(snaps) == 0 || ctx.Err() != nil {
			return err
		}
		log.Printf("[WARN] collection of %s failed, using %d stored snapshots: %v", f.ID(), len(snaps), err)
	}
	if opts.CollectOnly {
		return nil
	}

	archive, err := state.AllItems(f.Dir)
	if err != nil {
		return fmt.Errorf("load archive of %s: %w", f.ID(), err)
	}
	re, err := cfg.SortPattern()
	if err != nil {
		return fmt.Errorf("sort pattern of %s: %v: %w", f.ID(), err, domain.ErrConfigInvalid)
	}
	archive, sorted := merge.SortArchive(archive, re)
	if re != nil && !sorted {
		log.Printf("[WARN] fewer than half of %d links of %s match %q, keeping collection order",
			len(archive), f.ID(), cfg.Collection.SortFieldPattern)
	}

	cur, found, err := state.LoadCursor(f.Dir)
	if err != nil {
		return fmt.Errorf("load cursor of %s: %w", f.ID(), err)
	}
	if !found {
		cur = state.Cursor{Index: 0, MTime: now}
	}
	window := merge.Window(archive, cur.Index, cfg.Collection.WindowSize)
	next, moved := merge.Advance(cur, now, cfg.Collection.UnitSizePerDay, len(archive))
	log.Printf("[DEBUG] %s: archive %d, window %d from %d, next index %d", f.ID(), len(archive), len(window), cur.Index, next.Index)
	if len(window) == 0 && len(archive) > 0 {
		// the published document stays as it was
		log.Printf("[INFO] archive of %s exhausted at %d of %d items", f.ID(), cur.Index, len(archive))
		return nil
	}

	if err := r.emit(ctx, f, cfg, window, now, rep); err != nil {
		return err
	}

	// the cursor is written only after a successful run
	if !found || moved {
		if err := state.StoreCursor(f.Dir, next); err != nil {
			return fmt.Errorf("store cursor of %s: %w", f.ID(), err)
		}
	}
	return nil
}

// RunAll runs feeds with at most MaxWorkers in parallel. A failure of one feed does not affect others.
func (r *Runner) RunAll(ctx context.Context, feeds []domain.Feed, opts Options) []Report {
	log.Printf("[INFO] running %d feeds", len(feeds))

	reports := make([]Report, len(feeds))
	var g errgroup.Group
	g.SetLimit(r.params.MaxWorkers)
	for i, f := range feeds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				reports[i] = Report{Feed: f, Err: err}
				return nil
			}
			reports[i], _ = r.Run(ctx, f, opts)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, rep := range reports {
		if rep.Err != nil {
			failed++
		}
	}
	log.Printf("[INFO] run completed, %d feeds, %d failed", len(feeds), failed)
	return reports
}

func (r *Runner) imageDir() string {
	if r.params.PublicDir == "" {
		return ""
	}
	return filepath.Join(r.params.PublicDir, "img")
}

func logReport(rep Report) {
	if rep.Err != nil {
		log.Printf("[WARN] feed %s failed, kind=%s: %v", rep.Feed.ID(), domain.KindOf(rep.Err), rep.Err)
		return
	}
	log.Printf("[INFO] feed %s done, considered=%d emitted=%d dropped=%d published=%v in %v",
		rep.Feed.ID(), rep.Considered, rep.Emitted, rep.Dropped, rep.Published, rep.Duration.Truncate(time.Millisecond))
}
