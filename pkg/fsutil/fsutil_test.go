package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedmaker/pkg/domain"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "file.txt")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), 0o600))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	require.NoError(t, WriteFileAtomic(path, []byte("second"), 0o600))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestCopyFileAtomic(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.xml")
	require.NoError(t, os.WriteFile(src, []byte("<rss/>"), 0o600))

	dst := filepath.Join(dir, "public", "dst.xml")
	require.NoError(t, CopyFileAtomic(src, dst))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "<rss/>", string(data))
	assert.True(t, Exists(dst))

	err = CopyFileAtomic(filepath.Join(dir, "missing"), dst)
	assert.Error(t, err)
}

func TestTempPath(t *testing.T) {
	p1, p2 := TempPath("/a/b/feed.xml"), TempPath("/a/b/feed.xml")
	assert.NotEqual(t, p1, p2)
	assert.Equal(t, "/a/b", filepath.Dir(p1))
}

func TestTryLock(t *testing.T) {
	dir := t.TempDir()

	l1, err := TryLock(dir)
	require.NoError(t, err)

	_, err = TryLock(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrFeedBusy))

	require.NoError(t, l1.Unlock())
	require.NoError(t, l1.Unlock(), "second unlock is a no-op")

	l2, err := TryLock(dir)
	require.NoError(t, err)
	require.NoError(t, l2.Unlock())

	var nilLock *Lock
	assert.NoError(t, nilLock.Unlock())
}
