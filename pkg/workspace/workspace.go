// Package workspace maps the work directory layout <work>/<group>/<feed> to feeds and implements
// the administrative operations on them.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/umputun/feedmaker/pkg/config"
	"github.com/umputun/feedmaker/pkg/domain"
	"github.com/umputun/feedmaker/pkg/fsutil"
)

// ErrNotFound is returned for a missing group, feed or file
var ErrNotFound = errors.New("not found")

// ErrExists is returned when a rename or toggle target is taken
var ErrExists = errors.New("already exists")

// DisabledPrefix marks disabled groups and feeds
const DisabledPrefix = "_"

// Workspace holds the work and public directories
type Workspace struct {
	WorkDir   string
	PublicDir string
}

// Group describes a group directory
type Group struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Feeds   int    `json:"feeds"`
}

// FeedEntry describes a feed directory
type FeedEntry struct {
	Group   string `json:"group"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// New makes a workspace for the given directories
func New(workDir, publicDir string) *Workspace {
	return &Workspace{WorkDir: workDir, PublicDir: publicDir}
}

// Discover returns enabled feeds, i.e. directories with conf.json whose group and feed names
// don't start with "_". Hidden directories are ignored.
func (w *Workspace) Discover() ([]domain.Feed, error) {
	groups, err := w.Groups()
	if err != nil {
		return nil, err
	}
	var res []domain.Feed
	for _, g := range groups {
		if !g.Enabled {
			continue
		}
		feeds, err := w.Feeds(g.Name)
		if err != nil {
			return nil, err
		}
		for _, f := range feeds {
			if f.Enabled {
				res = append(res, domain.NewFeed(filepath.Join(w.WorkDir, g.Name, f.Name)))
			}
		}
	}
	return res, nil
}

// Groups lists group directories, disabled ones included
func (w *Workspace) Groups() ([]Group, error) {
	entries, err := os.ReadDir(w.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("read work dir: %w", err)
	}
	var res []Group
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		feeds, err := w.Feeds(e.Name())
		if err != nil {
			return nil, err
		}
		res = append(res, Group{Name: e.Name(), Enabled: !strings.HasPrefix(e.Name(), DisabledPrefix), Feeds: len(feeds)})
	}
	return res, nil
}

// Feeds lists feed directories of the group, disabled ones included
func (w *Workspace) Feeds(group string) ([]FeedEntry, error) {
	if !validName(group) {
		return nil, fmt.Errorf("group %q: %w", group, ErrNotFound)
	}
	entries, err := os.ReadDir(filepath.Join(w.WorkDir, group))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("group %q: %w", group, ErrNotFound)
		}
		return nil, fmt.Errorf("read group %s: %w", group, err)
	}
	var res []FeedEntry
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if !fsutil.Exists(filepath.Join(w.WorkDir, group, e.Name(), config.FeedFileName)) {
			continue
		}
		f := domain.Feed{Group: group, Name: e.Name()}
		res = append(res, FeedEntry{Group: group, Name: e.Name(), Enabled: f.Enabled()})
	}
	return res, nil
}

// Feed returns the feed of an existing feed directory
func (w *Workspace) Feed(group, name string) (domain.Feed, error) {
	if !validName(group) || !validName(name) {
		return domain.Feed{}, fmt.Errorf("feed %s/%s: %w", group, name, ErrNotFound)
	}
	dir := filepath.Join(w.WorkDir, group, name)
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return domain.Feed{}, fmt.Errorf("feed %s/%s: %w", group, name, ErrNotFound)
	}
	return domain.NewFeed(dir), nil
}

// XMLPath returns the path of the published document of the feed
func XMLPath(f domain.Feed) string {
	return filepath.Join(f.Dir, f.Name+".xml")
}

// withLock runs fn holding the feed lock, fails with domain.ErrFeedBusy if a run holds it
func withLock(f domain.Feed, fn func() error) error {
	lock, err := fsutil.TryLock(f.Dir)
	if err != nil {
		return err
	}
	defer lock.Unlock() //nolint:errcheck // the lock file may be gone with the directory
	return fn()
}

func validName(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}
