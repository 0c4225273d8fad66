package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedmaker/pkg/cache"
	"github.com/umputun/feedmaker/pkg/domain"
	"github.com/umputun/feedmaker/pkg/fsutil"
	"github.com/umputun/feedmaker/pkg/state"
)

func TestRunner_Housekeep(t *testing.T) {
	root := t.TempDir()
	public := filepath.Join(root, "public")
	imageDir := filepath.Join(public, "img")
	prefix := "https://feeds.example.com/img"
	now := time.Now()

	writeArtifact := func(f domain.Feed, link, body string, age time.Duration) string {
		path := cache.ArtifactPath(f.Dir, link)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(cache.HeaderTemplate+body), 0o600))
		mt := now.Add(-age)
		require.NoError(t, os.Chtimes(path, mt, mt))
		return path
	}

	f := makeFeed(t, root, "feed", incrementalConf(""))
	fresh := writeArtifact(f, "https://x.com/fresh", "<p>fresh</p>", time.Hour)
	expired := writeArtifact(f, "https://x.com/old", "<p>old</p>", 31*24*time.Hour)
	withImage := writeArtifact(f, "https://x.com/img", "<img src='"+prefix+"/feed/abc.png'/>", time.Hour)
	withMissing := writeArtifact(f, "https://x.com/missing", "<img src='"+prefix+"/feed/gone.png'/>", time.Hour)
	withEmpty := writeArtifact(f, "https://x.com/empty", "<img src='"+prefix+"/feed/empty.png'/>", time.Hour)
	withPlaceholder := writeArtifact(f, "https://x.com/ph", "<img src='"+prefix+"/"+cache.ImageNotFound+"'/>", time.Hour)

	require.NoError(t, os.MkdirAll(filepath.Join(imageDir, "feed"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(imageDir, "feed", "abc.png"), []byte("png"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(imageDir, "feed", "empty.png"), nil, 0o600))

	for _, days := range []int{0, 3, 10, 20} {
		require.NoError(t, state.WriteSnapshot(f.Dir, now.AddDate(0, 0, -days), []domain.Item{{Link: "https://x.com/a", Title: "A"}}))
	}

	completed := makeFeed(t, root, "archive", `{"configuration": {
		"collection": {"list_url_list": ["https://x.com/l"], "is_completed": true},
		"extraction": {}, "rss": {"title": "Archive"}}}`)
	for _, days := range []int{0, 30} {
		require.NoError(t, state.WriteSnapshot(completed.Dir, now.AddDate(0, 0, -days), []domain.Item{{Link: "https://x.com/a", Title: "A"}}))
	}

	busy := makeFeed(t, root, "busy", incrementalConf(""))
	busyExpired := writeArtifact(busy, "https://x.com/old", "<p>old</p>", 40*24*time.Hour)
	lock, err := fsutil.TryLock(busy.Dir)
	require.NoError(t, err)
	defer lock.Unlock() //nolint:errcheck // test cleanup

	r := New(nil, nil, Params{PublicDir: public, ImageURLPrefix: prefix, HTMLArchivingPeriod: 30, ListArchivingPeriod: 7})
	stats, err := r.Housekeep(context.Background(), []domain.Feed{f, completed, busy})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Assets)
	assert.Equal(t, 4, stats.Artifacts)
	assert.Equal(t, 2, stats.Snapshots)
	assert.Equal(t, 1, stats.Busy)

	assert.FileExists(t, fresh)
	assert.FileExists(t, withImage)
	assert.NoFileExists(t, expired)
	assert.NoFileExists(t, withMissing)
	assert.NoFileExists(t, withEmpty)
	assert.NoFileExists(t, withPlaceholder)
	assert.NoFileExists(t, filepath.Join(imageDir, "feed", "empty.png"))
	assert.FileExists(t, busyExpired)

	snaps, err := state.ListSnapshots(f.Dir)
	require.NoError(t, err)
	assert.Len(t, snaps, 2)

	snaps, err = state.ListSnapshots(completed.Dir)
	require.NoError(t, err)
	assert.Len(t, snaps, 2, "completed feed snapshots kept")
}
