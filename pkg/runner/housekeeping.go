package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/feedmaker/pkg/cache"
	"github.com/umputun/feedmaker/pkg/config"
	"github.com/umputun/feedmaker/pkg/domain"
	"github.com/umputun/feedmaker/pkg/fsutil"
	"github.com/umputun/feedmaker/pkg/state"
)

// HousekeepingStats counts what housekeeping removed
type HousekeepingStats struct {
	Assets    int // zero-size cached images
	Artifacts int // expired artifacts and artifacts with missing images
	Snapshots int
	Busy      int // feeds skipped because a run held the lock
}

// Housekeep cleans every feed under its lock, feeds being run are skipped
func (r *Runner) Housekeep(ctx context.Context, feeds []domain.Feed) (HousekeepingStats, error) {
	var stats HousekeepingStats
	for _, f := range feeds {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if err := r.housekeepFeed(f, &stats); err != nil {
			if errors.Is(err, domain.ErrFeedBusy) {
				log.Printf("[INFO] skip housekeeping of %s, feed is busy", f.ID())
				stats.Busy++
				continue
			}
			log.Printf("[WARN] housekeeping of %s failed: %v", f.ID(), err)
		}
	}
	log.Printf("[INFO] housekeeping done, removed %d assets, %d artifacts, %d snapshots",
		stats.Assets, stats.Artifacts, stats.Snapshots)
	return stats, nil
}

func (r *Runner) housekeepFeed(f domain.Feed, stats *HousekeepingStats) error {
	lock, err := fsutil.TryLock(f.Dir)
	if err != nil {
		return err
	}
	defer func() {
		if e := lock.Unlock(); e != nil {
			log.Printf("[WARN] failed to unlock %s: %v", f.ID(), e)
		}
	}()
	now := r.now()

	// empty images first, so artifacts referring to them are found incomplete below
	if imageDir := r.imageDir(); imageDir != "" {
		removed, err := cache.RemoveEmptyAssets(filepath.Join(imageDir, f.Name))
		if err != nil {
			log.Printf("[WARN] remove empty assets of %s: %v", f.ID(), err)
		}
		stats.Assets += len(removed)
	}

	n, err := r.removeStaleArtifacts(f, now)
	stats.Artifacts += n
	if err != nil {
		log.Printf("[WARN] remove artifacts of %s: %v", f.ID(), err)
	}

	cfg, err := config.LoadFeedConfig(f.Dir)
	if err != nil {
		log.Printf("[WARN] skip snapshot pruning of %s: %v", f.ID(), err)
		return nil
	}
	if cfg.Collection.IsCompleted {
		return nil // snapshots of a completed feed are its archive
	}
	pruned, err := state.PruneSnapshots(f.Dir, now, r.params.ListArchivingPeriod)
	stats.Snapshots += len(pruned)
	return err
}

// removeStaleArtifacts deletes artifacts older than the archiving period and the ones referring to missing images
func (r *Runner) removeStaleArtifacts(f domain.Feed, now time.Time) (int, error) {
	entries, err := os.ReadDir(filepath.Join(f.Dir, cache.HTMLDir))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := now.AddDate(0, 0, -r.params.HTMLArchivingPeriod)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".html") {
			continue
		}
		path := filepath.Join(f.Dir, cache.HTMLDir, e.Name())
		info, err := e.Info()
		if err != nil {
			continue
		}

		reason := ""
		if info.ModTime().Before(cutoff) {
			reason = "expired"
		} else if imageDir := r.imageDir(); imageDir != "" {
			missing, err := cache.IncompleteAssets(path, r.params.ImageURLPrefix, imageDir)
			if err != nil {
				log.Printf("[WARN] check assets of %s: %v", path, err)
				continue
			}
			if len(missing) > 0 {
				reason = "missing images " + strings.Join(missing, ", ")
			}
		}
		if reason == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return removed, err
		}
		log.Printf("[DEBUG] removed artifact %s of %s, %s", e.Name(), f.ID(), reason)
		removed++
	}
	return removed, nil
}
