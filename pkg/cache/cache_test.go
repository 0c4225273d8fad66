package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedmaker/pkg/urlutil"
)

func TestArtifactPath(t *testing.T) {
	p1 := ArtifactPath("/work/g/f", "https://x/a")
	p2 := ArtifactPath("/work/g/f", "https://x/a")
	assert.Equal(t, p1, p2)
	assert.Equal(t, "/work/g/f/html/"+urlutil.ShortHash("https://x/a")+".html", p1)
}

func TestStat(t *testing.T) {
	dir := t.TempDir()

	a := Stat(filepath.Join(dir, "missing.html"))
	assert.False(t, a.Present)
	assert.Zero(t, a.Size)

	headerOnly := filepath.Join(dir, "header.html")
	require.NoError(t, os.WriteFile(headerOnly, []byte(HeaderTemplate), 0o600))
	a = Stat(headerOnly)
	assert.False(t, a.Present, "file equal to header size is not present")
	assert.Equal(t, int64(len(HeaderTemplate)), a.Size)

	full := filepath.Join(dir, "full.html")
	require.NoError(t, os.WriteFile(full, []byte(HeaderTemplate+"<p>x</p>"), 0o600))
	assert.True(t, Stat(full).Present)
}

func TestWriteArtifact(t *testing.T) {
	dir := t.TempDir()
	link := "https://x/a"

	a, ok, err := WriteArtifact(dir, "myfeed", "https://feeds.example.com/", link, "<p>body</p>")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, a.Present)
	assert.Equal(t, ArtifactPath(dir, link), a.Path)

	data, err := os.ReadFile(a.Path)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, HeaderTemplate))
	assert.Contains(t, content, "<p>body</p>")
	assert.Contains(t, content, "<img src='https://feeds.example.com/img/1x1.jpg?feed=myfeed.xml&item="+urlutil.ShortHash(link)+"'/>")

	_, ok, err = WriteArtifact(dir, "myfeed", "https://feeds.example.com", "https://x/empty", "  \n")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, Stat(ArtifactPath(dir, "https://x/empty")).Present)
}

func TestReadBody(t *testing.T) {
	dir := t.TempDir()

	small := filepath.Join(dir, "small.html")
	require.NoError(t, os.WriteFile(small, []byte("<p>small</p>"), 0o600))
	body, truncated, err := ReadBody(small)
	require.NoError(t, err)
	assert.False(t, truncated)
	assert.Equal(t, "<p>small</p>", body)

	// multi-byte runes make sure the cut lands on a rune boundary
	big := filepath.Join(dir, "big.html")
	require.NoError(t, os.WriteFile(big, []byte(strings.Repeat("가", MaxBodySize)), 0o600))
	body, truncated, err = ReadBody(big)
	require.NoError(t, err)
	assert.True(t, truncated)
	assert.True(t, strings.HasPrefix(body, TruncationNotice))
	assert.LessOrEqual(t, len(body), MaxBodySize+len(TruncationNotice))
	assert.True(t, utf8.ValidString(body))

	_, _, err = ReadBody(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestAssetName(t *testing.T) {
	h := urlutil.ShortHash("https://img.com/a.png")
	assert.Equal(t, h, AssetName("https://img.com/a.png", "", 0))
	assert.Equal(t, h+"_thumb", AssetName("https://img.com/a.png", "thumb", 0))
	assert.Equal(t, h+"_thumb.2", AssetName("https://img.com/a.png", "thumb", 2))
	assert.Equal(t, h+".3", AssetName("https://img.com/a.png", "", 3))

	data := "data:image/png;base64,AAAA"
	assert.Equal(t, urlutil.ShortHash(data)+".1", AssetName(data, "", 1))

	// postfix and index are ignored for other schemes
	assert.Equal(t, urlutil.ShortHash("ftp://x/y"), AssetName("ftp://x/y", "p", 1))

	assert.Equal(t, filepath.Join("/pub/img", "feed", h), AssetPath("/pub/img", "feed", "https://img.com/a.png", "", 0))
	assert.Equal(t, "https://x.com/img/feed/"+h, AssetURL("https://x.com/img/", "feed", "https://img.com/a.png", "", 0))
	assert.Equal(t, "https://x.com/img/image-not-found.png", NotFoundURL("https://x.com/img"))
}

func TestIncompleteAssets(t *testing.T) {
	dir := t.TempDir()
	feedDir := filepath.Join(dir, "work", "group", "feed")
	imageDir := filepath.Join(dir, "img")
	require.NoError(t, os.MkdirAll(filepath.Join(feedDir, HTMLDir), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(imageDir, "feed"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(imageDir, "feed", "aaaaaaa"), []byte("png"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(imageDir, "feed", "bbbbbbb"), nil, 0o600))

	path := filepath.Join(feedDir, HTMLDir, "1234567.html")
	content := HeaderTemplate +
		"<img src='https://x.com/img/feed/aaaaaaa'/>\n" +
		"<img src='http://x.com/img/feed/bbbbbbb'/>\n" +
		"<img src=\"https://x.com/img/feed/ccccccc\"/>\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	res, err := IncompleteAssets(path, "https://x.com/img", imageDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"bbbbbbb", "ccccccc"}, res)

	require.NoError(t, os.WriteFile(path, []byte(HeaderTemplate+"<img src='https://x.com/img/image-not-found.png'/>\n"), 0o600))
	res, err = IncompleteAssets(path, "https://x.com/img", imageDir)
	require.NoError(t, err)
	assert.Equal(t, []string{ImageNotFound}, res)

	_, err = IncompleteAssets(filepath.Join(dir, "missing"), "https://x.com/img", imageDir)
	assert.Error(t, err)
}

func TestIncompleteAssets_AttributeOrder(t *testing.T) {
	dir := t.TempDir()
	feedDir := filepath.Join(dir, "work", "group", "feed")
	imageDir := filepath.Join(dir, "img")
	require.NoError(t, os.MkdirAll(filepath.Join(feedDir, HTMLDir), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(imageDir, "feed"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(imageDir, "feed", "present.jpg"), []byte("jpg"), 0o600))

	path := filepath.Join(feedDir, HTMLDir, "1234567.html")
	content := HeaderTemplate +
		`<p><img alt="pic" src="https://x.com/img/feed/abc.jpg"></p>` + "\n" +
		`<img width="10" class="a" src='https://x.com/img/feed/present.jpg' alt="ok">` + "\n" +
		`<img data-src="https://x.com/img/feed/lazy.jpg" src="https://other.com/p.jpg">` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	res, err := IncompleteAssets(path, "https://x.com/img", imageDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc.jpg"}, res, "src after other attributes, data-src ignored")
}

func TestRemoveEmptyAssets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty"), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "full"), []byte("x"), 0o600))

	removed, err := RemoveEmptyAssets(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"empty"}, removed)
	_, err = os.Stat(filepath.Join(dir, "full"))
	assert.NoError(t, err)

	removed, err = RemoveEmptyAssets(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, removed)
}
