package workspace

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/feedmaker/pkg/cache"
	"github.com/umputun/feedmaker/pkg/config"
	"github.com/umputun/feedmaker/pkg/domain"
	"github.com/umputun/feedmaker/pkg/feed"
	"github.com/umputun/feedmaker/pkg/fsutil"
	"github.com/umputun/feedmaker/pkg/merge"
	"github.com/umputun/feedmaker/pkg/state"
)

// Progress reports how far a completed feed is through its archive
type Progress struct {
	Completed   bool      `json:"completed"`
	Index       int       `json:"index"`
	Total       int       `json:"total"`
	Ratio       int       `json:"ratio"` // percent
	ETA         time.Time `json:"eta"`
	LastCollect time.Time `json:"last_collect"`
}

// ReadConfig returns the raw conf.json of the feed
func (w *Workspace) ReadConfig(group, name string) ([]byte, error) {
	f, err := w.Feed(group, name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(f.Dir, config.FeedFileName)) //nolint:gosec // path built from validated names
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config of %s: %w", f.ID(), ErrNotFound)
		}
		return nil, fmt.Errorf("read config of %s: %w", f.ID(), err)
	}
	return data, nil
}

// WriteConfig validates and stores conf.json, the feed directory is created for a new feed
func (w *Workspace) WriteConfig(group, name string, data []byte) error {
	if !validName(group) || !validName(name) {
		return fmt.Errorf("feed %s/%s: %w", group, name, ErrNotFound)
	}
	if _, err := config.ParseFeedConfig(data); err != nil {
		return err
	}
	dir := filepath.Join(w.WorkDir, group, name)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("make feed dir: %w", err)
	}
	f := domain.NewFeed(dir)
	return withLock(f, func() error {
		return fsutil.WriteFileAtomic(filepath.Join(dir, config.FeedFileName), data, 0o644) //nolint:gosec // not sensitive
	})
}

// Toggle enables a disabled feed or disables an enabled one by switching the "_" prefix, returns the new name
func (w *Workspace) Toggle(group, name string) (string, error) {
	newName := toggledName(name)
	if err := w.Rename(group, name, newName); err != nil {
		return "", err
	}
	return newName, nil
}

// ToggleGroup enables or disables the whole group, returns the new group name
func (w *Workspace) ToggleGroup(group string) (string, error) {
	if !validName(group) {
		return "", fmt.Errorf("group %q: %w", group, ErrNotFound)
	}
	feeds, err := w.Feeds(group)
	if err != nil {
		return "", err
	}
	newName := toggledName(group)
	dst := filepath.Join(w.WorkDir, newName)
	if fsutil.Exists(dst) {
		return "", fmt.Errorf("group %s: %w", newName, ErrExists)
	}

	// hold every feed lock of the group while renaming it
	var locks []*fsutil.Lock
	defer func() {
		for _, l := range locks {
			_ = l.Unlock()
		}
	}()
	for _, fe := range feeds {
		l, err := fsutil.TryLock(filepath.Join(w.WorkDir, group, fe.Name))
		if err != nil {
			return "", err
		}
		locks = append(locks, l)
	}
	if err := os.Rename(filepath.Join(w.WorkDir, group), dst); err != nil {
		return "", fmt.Errorf("rename group %s: %w", group, err)
	}
	log.Printf("[INFO] group %s renamed to %s", group, newName)
	return newName, nil
}

// Rename renames the feed directory and moves its published copy and image cache along
func (w *Workspace) Rename(group, name, newName string) error {
	f, err := w.Feed(group, name)
	if err != nil {
		return err
	}
	if !validName(newName) {
		return fmt.Errorf("invalid feed name %q: %w", newName, domain.ErrConfigInvalid)
	}
	dst := filepath.Join(w.WorkDir, group, newName)
	if fsutil.Exists(dst) {
		return fmt.Errorf("feed %s/%s: %w", group, newName, ErrExists)
	}

	return withLock(f, func() error {
		if err := os.Rename(f.Dir, dst); err != nil {
			return fmt.Errorf("rename feed %s: %w", f.ID(), err)
		}
		if err := moveIfExists(filepath.Join(dst, name+".xml"), filepath.Join(dst, newName+".xml")); err != nil {
			return err
		}
		if w.PublicDir != "" {
			if err := moveIfExists(filepath.Join(w.PublicDir, name+".xml"), filepath.Join(w.PublicDir, newName+".xml")); err != nil {
				return err
			}
			if err := moveIfExists(filepath.Join(w.PublicDir, "img", name), filepath.Join(w.PublicDir, "img", newName)); err != nil {
				return err
			}
		}
		log.Printf("[INFO] feed %s renamed to %s/%s", f.ID(), group, newName)
		return nil
	})
}

// RemoveFeed deletes the feed directory with its published copy and image cache
func (w *Workspace) RemoveFeed(group, name string) error {
	f, err := w.Feed(group, name)
	if err != nil {
		return err
	}
	return withLock(f, func() error {
		if w.PublicDir != "" {
			if err := os.Remove(filepath.Join(w.PublicDir, name+".xml")); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("remove published feed: %w", err)
			}
			if err := os.RemoveAll(filepath.Join(w.PublicDir, "img", name)); err != nil {
				return fmt.Errorf("remove images: %w", err)
			}
		}
		if err := os.RemoveAll(f.Dir); err != nil {
			return fmt.Errorf("remove feed dir: %w", err)
		}
		log.Printf("[INFO] feed %s removed", f.ID())
		return nil
	})
}

// RemoveSnapshots deletes all list snapshots of the feed
func (w *Workspace) RemoveSnapshots(group, name string) error {
	return w.removeSubdir(group, name, state.ListDir)
}

// RemoveArtifacts deletes all item artifacts of the feed
func (w *Workspace) RemoveArtifacts(group, name string) error {
	return w.removeSubdir(group, name, cache.HTMLDir)
}

// RemoveArtifact deletes a single artifact file of the feed
func (w *Workspace) RemoveArtifact(group, name, file string) error {
	f, err := w.Feed(group, name)
	if err != nil {
		return err
	}
	if !validName(file) || !strings.HasSuffix(file, ".html") {
		return fmt.Errorf("artifact %q: %w", file, ErrNotFound)
	}
	return withLock(f, func() error {
		if err := os.Remove(filepath.Join(f.Dir, cache.HTMLDir, file)); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("artifact %s: %w", file, ErrNotFound)
			}
			return fmt.Errorf("remove artifact %s: %w", file, err)
		}
		return nil
	})
}

func (w *Workspace) removeSubdir(group, name, sub string) error {
	f, err := w.Feed(group, name)
	if err != nil {
		return err
	}
	return withLock(f, func() error {
		if err := os.RemoveAll(filepath.Join(f.Dir, sub)); err != nil {
			return fmt.Errorf("remove %s of %s: %w", sub, f.ID(), err)
		}
		log.Printf("[INFO] removed %s of %s", sub, f.ID())
		return nil
	})
}

// Progress returns the window position of a completed feed. For other feeds only the
// last collection date and the size of the latest snapshot are reported.
func (w *Workspace) Progress(group, name string, now time.Time) (Progress, error) {
	f, err := w.Feed(group, name)
	if err != nil {
		return Progress{}, err
	}
	cfg, err := config.LoadFeedConfig(f.Dir)
	if err != nil {
		return Progress{}, err
	}

	var res Progress
	snaps, err := state.ListSnapshots(f.Dir)
	if err != nil {
		return Progress{}, err
	}
	if len(snaps) > 0 {
		res.LastCollect = snaps[len(snaps)-1].Date
	}

	if !cfg.Collection.IsCompleted {
		if len(snaps) > 0 {
			items, err := state.ReadSnapshot(snaps[len(snaps)-1].Path)
			if err != nil {
				return Progress{}, err
			}
			res.Total = len(domain.Dedup(items))
		}
		return res, nil
	}

	res.Completed = true
	items, err := state.AllItems(f.Dir)
	if err != nil {
		return Progress{}, err
	}
	res.Total = len(items)
	cur, _, err := state.LoadCursor(f.Dir)
	if err != nil {
		return Progress{}, err
	}
	res.Index = cur.Index

	window := cfg.Collection.WindowSize
	if window <= 0 {
		window = merge.DefaultWindowSize
	}
	res.Ratio = min(100, (res.Index+window)*100/(res.Total+1))

	remaining := res.Total - res.Index - window
	res.ETA = now
	if remaining > 0 && cfg.Collection.UnitSizePerDay > 0 {
		days := int(math.Ceil(float64(remaining) / cfg.Collection.UnitSizePerDay))
		res.ETA = now.AddDate(0, 0, days)
	}
	return res, nil
}

// PublishInfo returns size, item count and modification time of the published document
func (w *Workspace) PublishInfo(group, name string) (feed.Info, error) {
	f, err := w.Feed(group, name)
	if err != nil {
		return feed.Info{}, err
	}
	path := XMLPath(f)
	if !fsutil.Exists(path) {
		return feed.Info{}, fmt.Errorf("published feed of %s: %w", f.ID(), ErrNotFound)
	}
	return feed.Inspect(path)
}

func toggledName(name string) string {
	if strings.HasPrefix(name, DisabledPrefix) {
		return strings.TrimPrefix(name, DisabledPrefix)
	}
	return DisabledPrefix + name
}

func moveIfExists(src, dst string) error {
	if !fsutil.Exists(src) {
		return nil
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("move %s: %w", src, err)
	}
	return nil
}
