// Package state keeps per-feed persistent state on the filesystem: daily list snapshots
// under newlist/ and the window cursor of completed feeds.
package state

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/umputun/feedmaker/pkg/domain"
	"github.com/umputun/feedmaker/pkg/fsutil"
)

// ListDir is the snapshot directory name inside the feed directory
const ListDir = "newlist"

const dateLayout = "20060102"

// Snapshot is a list snapshot file with the collection date parsed from its name
type Snapshot struct {
	Path string
	Date time.Time
}

// SnapshotPath returns the snapshot path for the given day
func SnapshotPath(feedDir string, day time.Time) string {
	return filepath.Join(feedDir, ListDir, day.Format(dateLayout)+".txt")
}

// WriteSnapshot stores items as link<TAB>title lines, replacing the snapshot of the same day
func WriteSnapshot(feedDir string, day time.Time, items []domain.Item) error {
	var buf bytes.Buffer
	for _, it := range items {
		buf.WriteString(it.Link + "\t" + it.Title + "\n")
	}
	if err := fsutil.WriteFileAtomic(SnapshotPath(feedDir, day), buf.Bytes(), 0o644); err != nil { //nolint:gosec // not sensitive
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot reads a snapshot file, blank and malformed lines are skipped
func ReadSnapshot(path string) ([]domain.Item, error) {
	f, err := os.Open(path) //nolint:gosec // path built by the engine
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	defer f.Close()

	var res []domain.Item
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		link, title, ok := strings.Cut(line, "\t")
		if !ok || strings.TrimSpace(link) == "" {
			continue
		}
		res = append(res, domain.Item{Link: strings.TrimSpace(link), Title: strings.TrimSpace(title)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	return res, nil
}

// ListSnapshots returns snapshots sorted by date, oldest first. Files not named YYYYMMDD.txt are ignored.
func ListSnapshots(feedDir string) ([]Snapshot, error) {
	entries, err := os.ReadDir(filepath.Join(feedDir, ListDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot dir: %w", err)
	}
	var res []Snapshot
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		day, err := time.ParseInLocation(dateLayout, strings.TrimSuffix(e.Name(), ".txt"), time.Local)
		if err != nil {
			continue
		}
		res = append(res, Snapshot{Path: filepath.Join(feedDir, ListDir, e.Name()), Date: day})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Date.Before(res[j].Date) })
	return res, nil
}

// LatestItems returns the items of the most recent snapshot within the last period days,
// walking back from now and stopping at the first non-empty one.
func LatestItems(feedDir string, now time.Time, period int) ([]domain.Item, error) {
	if period <= 0 {
		period = 1
	}
	for i := 0; i < period; i++ {
		path := SnapshotPath(feedDir, now.AddDate(0, 0, -i))
		if !fsutil.Exists(path) {
			continue
		}
		items, err := ReadSnapshot(path)
		if err != nil {
			return nil, err
		}
		if len(items) > 0 {
			return domain.Dedup(items), nil
		}
	}
	return nil, nil
}

// AllItems returns the union of all snapshots, oldest first, each link once at its first
// position with the most recently observed title.
func AllItems(feedDir string) ([]domain.Item, error) {
	snaps, err := ListSnapshots(feedDir)
	if err != nil {
		return nil, err
	}
	pos := map[string]int{}
	var res []domain.Item
	for _, s := range snaps {
		items, err := ReadSnapshot(s.Path)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			if i, ok := pos[it.Link]; ok {
				res[i].Title = it.Title
				continue
			}
			pos[it.Link] = len(res)
			res = append(res, it)
		}
	}
	return res, nil
}

// PruneSnapshots removes snapshots older than period days, the most recent one is always kept
func PruneSnapshots(feedDir string, now time.Time, period int) ([]string, error) {
	snaps, err := ListSnapshots(feedDir)
	if err != nil {
		return nil, err
	}
	if len(snaps) < 2 {
		return nil, nil
	}
	cutoff := startOfDay(now).AddDate(0, 0, -period)
	var removed []string
	for _, s := range snaps[:len(snaps)-1] {
		if !s.Date.Before(cutoff) {
			continue
		}
		if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("remove snapshot %s: %w", s.Path, err)
		}
		removed = append(removed, filepath.Base(s.Path))
	}
	return removed, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
