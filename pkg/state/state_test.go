package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedmaker/pkg/domain"
)

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2024, 3, 5, 10, 0, 0, 0, time.Local)
	items := []domain.Item{{Link: "https://x/a", Title: "A"}, {Link: "https://x/b", Title: "B"}}

	require.NoError(t, WriteSnapshot(dir, day, items))
	path := SnapshotPath(dir, day)
	assert.Equal(t, filepath.Join(dir, "newlist", "20240305.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://x/a\tA\nhttps://x/b\tB\n", string(data))

	got, err := ReadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, items, got)

	// same day overwrites
	require.NoError(t, WriteSnapshot(dir, day, items[:1]))
	got, err = ReadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, items[:1], got)
}

func TestReadSnapshotSkipsBadLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.txt")
	require.NoError(t, os.WriteFile(path, []byte("https://x/a\tA\n\nno tab here\nhttps://x/b\tB\r\n"), 0o600))
	got, err := ReadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{{Link: "https://x/a", Title: "A"}, {Link: "https://x/b", Title: "B"}}, got)

	_, err = ReadSnapshot(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestListSnapshots(t *testing.T) {
	dir := t.TempDir()
	snaps, err := ListSnapshots(dir)
	require.NoError(t, err)
	assert.Empty(t, snaps)

	for _, d := range []string{"20240310", "20240301", "20240305"} {
		day, err := time.ParseInLocation("20060102", d, time.Local)
		require.NoError(t, err)
		require.NoError(t, WriteSnapshot(dir, day, []domain.Item{{Link: "https://x/" + d, Title: d}}))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, ListDir, "notes.md"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ListDir, "garbage.txt"), []byte("x"), 0o600))

	snaps, err = ListSnapshots(dir)
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	assert.Equal(t, "20240301.txt", filepath.Base(snaps[0].Path))
	assert.Equal(t, "20240305.txt", filepath.Base(snaps[1].Path))
	assert.Equal(t, "20240310.txt", filepath.Base(snaps[2].Path))
}

func TestLatestItems(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)

	items, err := LatestItems(dir, now, 7)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, WriteSnapshot(dir, now.AddDate(0, 0, -3), []domain.Item{{Link: "https://x/old", Title: "old"}}))
	require.NoError(t, WriteSnapshot(dir, now.AddDate(0, 0, -1), []domain.Item{
		{Link: "https://x/a", Title: "A"}, {Link: "https://x/a", Title: "A2"}, {Link: "https://x/b", Title: "B"}}))
	require.NoError(t, WriteSnapshot(dir, now.AddDate(0, 0, -20), []domain.Item{{Link: "https://x/ancient", Title: "x"}}))

	items, err = LatestItems(dir, now, 7)
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{{Link: "https://x/a", Title: "A"}, {Link: "https://x/b", Title: "B"}}, items)

	// empty most recent snapshot is skipped
	require.NoError(t, WriteSnapshot(dir, now, nil))
	items, err = LatestItems(dir, now, 7)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	// outside of the horizon
	items, err = LatestItems(dir, now.AddDate(0, 0, 30), 7)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAllItems(t *testing.T) {
	dir := t.TempDir()
	d1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	d2 := d1.AddDate(0, 0, 1)
	require.NoError(t, WriteSnapshot(dir, d1, []domain.Item{{Link: "https://x/1", Title: "one"}, {Link: "https://x/2", Title: "two"}}))
	require.NoError(t, WriteSnapshot(dir, d2, []domain.Item{{Link: "https://x/3", Title: "three"}, {Link: "https://x/1", Title: "one renamed"}}))

	items, err := AllItems(dir)
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{
		{Link: "https://x/1", Title: "one renamed"},
		{Link: "https://x/2", Title: "two"},
		{Link: "https://x/3", Title: "three"},
	}, items)
}

func TestPruneSnapshots(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.Local)
	for _, back := range []int{30, 10, 7, 2} {
		require.NoError(t, WriteSnapshot(dir, now.AddDate(0, 0, -back), []domain.Item{{Link: "https://x", Title: "x"}}))
	}

	removed, err := PruneSnapshots(dir, now, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"20240219.txt", "20240310.txt"}, removed)

	snaps, err := ListSnapshots(dir)
	require.NoError(t, err)
	assert.Len(t, snaps, 2)

	// the most recent snapshot survives even when it is old
	removed, err = PruneSnapshots(dir, now.AddDate(1, 0, 0), 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"20240313.txt"}, removed)
	snaps, err = ListSnapshots(dir)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, "20240318.txt", filepath.Base(snaps[0].Path))
}

func TestCursor(t *testing.T) {
	dir := t.TempDir()

	_, ok, err := LoadCursor(dir)
	require.NoError(t, err)
	assert.False(t, ok)

	c := Cursor{Index: 15, MTime: time.Unix(1700000000, 0)}
	require.NoError(t, StoreCursor(dir, c))
	data, err := os.ReadFile(filepath.Join(dir, CursorFileName))
	require.NoError(t, err)
	assert.Equal(t, "15\t1700000000\n", string(data))

	got, ok, err := LoadCursor(dir)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 15, got.Index)
	assert.True(t, c.MTime.Equal(got.MTime))

	require.NoError(t, os.WriteFile(filepath.Join(dir, CursorFileName), []byte("garbage"), 0o600))
	_, _, err = LoadCursor(dir)
	assert.Error(t, err)
}

func TestParseCursor(t *testing.T) {
	c, err := ParseCursor("3\t2024-03-01T10:00:00+09:00\n")
	require.NoError(t, err)
	assert.Equal(t, 3, c.Index)
	assert.Equal(t, int64(1709254800), c.MTime.Unix())

	_, err = ParseCursor("-1\t100")
	assert.Error(t, err)
	_, err = ParseCursor("1\tyesterday")
	assert.Error(t, err)
	_, err = ParseCursor("")
	assert.Error(t, err)
}
