package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/feedmaker/pkg/domain"
	"github.com/umputun/feedmaker/pkg/runner"
)

//go:generate moq -out mocks/feed_lister.go -pkg mocks -skip-ensure -fmt goimports . FeedLister
//go:generate moq -out mocks/runner.go -pkg mocks -skip-ensure -fmt goimports . Runner

// Scheduler runs all feeds and housekeeping periodically in daemon mode
type Scheduler struct {
	feeds                FeedLister
	runner               Runner
	runInterval          time.Duration
	housekeepingInterval time.Duration
	options              runner.Options
	wg                   sync.WaitGroup
	cancel               context.CancelFunc
	passMu               sync.Mutex // one run-all pass at a time
}

// FeedLister discovers enabled feeds
type FeedLister interface {
	Discover() ([]domain.Feed, error)
}

// Runner processes feeds
type Runner interface {
	Run(ctx context.Context, f domain.Feed, opts runner.Options) (runner.Report, error)
	RunAll(ctx context.Context, feeds []domain.Feed, opts runner.Options) []runner.Report
	Housekeep(ctx context.Context, feeds []domain.Feed) (runner.HousekeepingStats, error)
}

// Params of the scheduler, zero interval disables the corresponding worker
type Params struct {
	Feeds                FeedLister
	Runner               Runner
	RunInterval          time.Duration
	HousekeepingInterval time.Duration
	Options              runner.Options
}

// NewScheduler creates a new scheduler instance
func NewScheduler(params Params) *Scheduler {
	return &Scheduler{
		feeds:                params.Feeds,
		runner:               params.Runner,
		runInterval:          params.RunInterval,
		housekeepingInterval: params.HousekeepingInterval,
		options:              params.Options,
	}
}

// Start begins the scheduler
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	if s.runInterval > 0 {
		s.wg.Add(1)
		go s.runWorker(ctx)
	}

	if s.housekeepingInterval > 0 {
		s.wg.Add(1)
		go s.housekeepingWorker(ctx)
	}

	lgr.Printf("[INFO] scheduler started with run interval %v, housekeeping interval %v", s.runInterval, s.housekeepingInterval)
}

// Stop gracefully stops the scheduler, waits for the running pass to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// runWorker runs all feeds immediately and then on every tick
func (s *Scheduler) runWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.runInterval)
	defer ticker.Stop()

	if _, err := s.RunAllNow(ctx); err != nil {
		lgr.Printf("[ERROR] run all feeds: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.RunAllNow(ctx); err != nil {
				lgr.Printf("[ERROR] run all feeds: %v", err)
			}
		}
	}
}

// housekeepingWorker cleans caches on every tick
func (s *Scheduler) housekeepingWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.housekeepingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.HousekeepNow(ctx); err != nil {
				lgr.Printf("[ERROR] housekeeping: %v", err)
			}
		}
	}
}

// RunAllNow discovers feeds and runs all of them. Individual feed failures are in the reports.
func (s *Scheduler) RunAllNow(ctx context.Context) ([]runner.Report, error) {
	s.passMu.Lock()
	defer s.passMu.Unlock()

	feeds, err := s.feeds.Discover()
	if err != nil {
		return nil, fmt.Errorf("discover feeds: %w", err)
	}
	lgr.Printf("[INFO] running %d feeds", len(feeds))
	st := time.Now()
	reports := s.runner.RunAll(ctx, feeds, s.options)

	failed := 0
	for _, rep := range reports {
		if rep.Err != nil {
			failed++
		}
	}
	lgr.Printf("[INFO] run of %d feeds completed in %v, failed %d", len(reports), time.Since(st).Truncate(time.Millisecond), failed)
	return reports, nil
}

// RunFeedNow runs a single feed out of schedule
func (s *Scheduler) RunFeedNow(ctx context.Context, f domain.Feed) (runner.Report, error) {
	lgr.Printf("[INFO] triggered immediate run of %s", f.ID())
	return s.runner.Run(ctx, f, s.options)
}

// HousekeepNow runs a housekeeping pass over all enabled feeds
func (s *Scheduler) HousekeepNow(ctx context.Context) (runner.HousekeepingStats, error) {
	feeds, err := s.feeds.Discover()
	if err != nil {
		return runner.HousekeepingStats{}, fmt.Errorf("discover feeds: %w", err)
	}
	stats, err := s.runner.Housekeep(ctx, feeds)
	if err != nil {
		return stats, fmt.Errorf("housekeep: %w", err)
	}
	lgr.Printf("[DEBUG] housekeeping pass of %d feeds finished, busy=%d", len(feeds), stats.Busy)
	return stats, nil
}
