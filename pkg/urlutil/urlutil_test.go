package urlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortHash(t *testing.T) {
	h := ShortHash("https://x/a")
	assert.Equal(t, "3a1b40c", h)
	assert.Equal(t, h, ShortHash("https://x/a"), "hash must be deterministic")
	assert.NotEqual(t, h, ShortHash("https://x/b"))
	assert.Equal(t, "d41d8cd", ShortHash(""))
}

func TestDecompose(t *testing.T) {
	u := "https://example.com/path/to/page.html?id=1#top"
	assert.Equal(t, "https://", Scheme(u))
	assert.Equal(t, "example.com", Domain(u))
	assert.Equal(t, "https://example.com", Prefix(u))
	assert.Equal(t, "/path/to/page.html", Path(u))
	assert.Equal(t, "https://example.com/path/to/page.html", ExceptQuery(u))

	assert.Equal(t, "/", Path("https://example.com"))
	assert.Equal(t, "example.com", Domain("https://example.com?x=1"))
	assert.Equal(t, "", Scheme("example.com/x"))
}

func TestResolve(t *testing.T) {
	base := "https://example.com/list/page.html?p=1"
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{name: "empty", ref: "", want: base},
		{name: "hash", ref: "#", want: base},
		{name: "absolute", ref: "http://other.com/x", want: "http://other.com/x"},
		{name: "root relative", ref: "/item/1", want: "https://example.com/item/1"},
		{name: "bare relative", ref: "item.html", want: "https://example.com/list/item.html"},
		{name: "bare relative with query", ref: "view?id=3", want: "https://example.com/list/view?id=3"},
		{name: "parent", ref: "../up.html", want: "https://example.com/up.html"},
		{name: "protocol relative", ref: "//cdn.com/a.png", want: "https://cdn.com/a.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(base, tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Resolve("http://[::1", "x")
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	assert.Equal(t, "https://x.com/a%20b", Encode("https://x.com/a b"))
	assert.Equal(t, "https://x.com/%ED%95%9C?q=%EA%B8%80", Encode("https://x.com/한?q=글"))
	assert.Equal(t, "https://x.com/plain?a=1&b=2", Encode("https://x.com/plain?a=1&b=2"))
}
