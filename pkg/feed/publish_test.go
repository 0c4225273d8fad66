package feed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedmaker/pkg/domain"
)

func TestChanged(t *testing.T) {
	base := "<rss>\n  <lastBuildDate>Mon, 01 Jan 2024 12:00:00 +0000</lastBuildDate>\n  <item>\n" +
		"    <title>A</title>\n    <pubDate>Mon, 01 Jan 2024 12:00:00 +0000</pubDate>\n  </item>\n</rss>\n"

	tests := []struct {
		name string
		next string
		want bool
	}{
		{name: "identical", next: base, want: false},
		{name: "dates only", next: "<rss>\n  <lastBuildDate>Tue, 02 Jan 2024 12:00:00 +0000</lastBuildDate>\n  <item>\n" +
			"    <title>A</title>\n    <pubDate>Tue, 02 Jan 2024 12:00:00 +0000</pubDate>\n  </item>\n</rss>\n", want: false},
		{name: "title changed", next: "<rss>\n  <lastBuildDate>Mon, 01 Jan 2024 12:00:00 +0000</lastBuildDate>\n  <item>\n" +
			"    <title>B</title>\n    <pubDate>Mon, 01 Jan 2024 12:00:00 +0000</pubDate>\n  </item>\n</rss>\n", want: true},
		{name: "line added", next: base + "<!-- x -->\n", want: true},
		{name: "empty", next: "", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Changed([]byte(base), []byte(tt.next)))
		})
	}
}

func TestPublish(t *testing.T) {
	t.Run("first publish", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "feed", "feed.xml")
		published, err := Publish(path, []byte("<rss>1</rss>\n"))
		require.NoError(t, err)
		assert.True(t, published)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<rss>1</rss>\n", string(data))
		assert.NoFileExists(t, path+OldSuffix)
		assertNoTemp(t, filepath.Dir(path))
	})

	t.Run("unchanged keeps file and skips rotation", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "feed.xml")
		_, err := Publish(path, []byte("<rss>\n<lastBuildDate>one</lastBuildDate>\n<title>a</title>\n</rss>\n"))
		require.NoError(t, err)

		published, err := Publish(path, []byte("<rss>\n<lastBuildDate>two</lastBuildDate>\n<title>a</title>\n</rss>\n"))
		require.NoError(t, err)
		assert.False(t, published)
		assert.NoFileExists(t, path+OldSuffix)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "one", "existing file left in place")
		assertNoTemp(t, filepath.Dir(path))
	})

	t.Run("changed rotates previous to old", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "feed.xml")
		_, err := Publish(path, []byte("<rss>1</rss>\n"))
		require.NoError(t, err)

		published, err := Publish(path, []byte("<rss>2</rss>\n"))
		require.NoError(t, err)
		assert.True(t, published)

		cur, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<rss>2</rss>\n", string(cur))
		old, err := os.ReadFile(path + OldSuffix)
		require.NoError(t, err)
		assert.Equal(t, "<rss>1</rss>\n", string(old))

		// third publish replaces .old with the second version
		_, err = Publish(path, []byte("<rss>3</rss>\n"))
		require.NoError(t, err)
		old, err = os.ReadFile(path + OldSuffix)
		require.NoError(t, err)
		assert.Equal(t, "<rss>2</rss>\n", string(old))
		assertNoTemp(t, filepath.Dir(path))
	})

	t.Run("unwritable dir", func(t *testing.T) {
		if os.Getuid() == 0 {
			t.Skip("permissions are not enforced for root")
		}
		dir := t.TempDir()
		require.NoError(t, os.Chmod(dir, 0o500))
		defer os.Chmod(dir, 0o700) //nolint:errcheck // test cleanup

		_, err := Publish(filepath.Join(dir, "feed.xml"), []byte("<rss/>"))
		require.ErrorIs(t, err, domain.ErrPublishFailed)
	})
}

func TestMirror(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "feed.xml")
	require.NoError(t, os.WriteFile(src, []byte("v1"), 0o600))
	public := filepath.Join(dir, "public")

	t.Run("no public dir", func(t *testing.T) {
		require.NoError(t, Mirror(src, "", "feed", true))
	})

	t.Run("missing mirror is created", func(t *testing.T) {
		require.NoError(t, Mirror(src, public, "feed", false))
		data, err := os.ReadFile(filepath.Join(public, "feed.xml"))
		require.NoError(t, err)
		assert.Equal(t, "v1", string(data))
	})

	t.Run("unpublished keeps existing mirror", func(t *testing.T) {
		require.NoError(t, os.WriteFile(src, []byte("v2"), 0o600))
		require.NoError(t, Mirror(src, public, "feed", false))
		data, err := os.ReadFile(filepath.Join(public, "feed.xml"))
		require.NoError(t, err)
		assert.Equal(t, "v1", string(data))
	})

	t.Run("published refreshes mirror", func(t *testing.T) {
		require.NoError(t, Mirror(src, public, "feed", true))
		data, err := os.ReadFile(filepath.Join(public, "feed.xml"))
		require.NoError(t, err)
		assert.Equal(t, "v2", string(data))
	})
}

func assertNoTemp(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
