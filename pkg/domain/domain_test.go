package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tbl := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{errors.New("boom"), "unknown"},
		{ErrFeedBusy, "FeedBusy"},
		{fmt.Errorf("lock /work/a/b: %w", ErrFeedBusy), "FeedBusy"},
		{fmt.Errorf("fetch list: %v: %w", errors.New("timeout"), ErrCollectionFailed), "CollectionFailed"},
		{fmt.Errorf("run: %w", fmt.Errorf("publish: %w", ErrPublishFailed)), "PublishFailed"},
	}
	for _, tt := range tbl {
		assert.Equal(t, tt.want, KindOf(tt.err), "%v", tt.err)
	}
}

func TestDedup(t *testing.T) {
	items := []Item{{Link: "a", Title: "1"}, {Link: "b", Title: "2"}, {Link: "a", Title: "3"}}
	assert.Equal(t, []Item{{Link: "a", Title: "1"}, {Link: "b", Title: "2"}}, Dedup(items))
	assert.Empty(t, Dedup(nil))
}

func TestReverse(t *testing.T) {
	items := []Item{{Link: "a"}, {Link: "b"}, {Link: "c"}}
	assert.Equal(t, []Item{{Link: "c"}, {Link: "b"}, {Link: "a"}}, Reverse(items))
	assert.Equal(t, "a", items[0].Link, "input untouched")
}

func TestFeed(t *testing.T) {
	f := NewFeed("/work/news/site/")
	assert.Equal(t, Feed{Group: "news", Name: "site", Dir: "/work/news/site"}, f)
	assert.Equal(t, "news/site", f.ID())
	assert.True(t, f.Enabled())
	assert.False(t, NewFeed("/work/_news/site").Enabled())
	assert.False(t, NewFeed("/work/news/_site").Enabled())
}
