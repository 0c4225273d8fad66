// Package cache implements the content-addressed on-disk store for item artifacts and fetched assets.
//
// An artifact lives at <feed>/html/<hash>.html where hash is the short md5 of the item link.
// Its content is HeaderTemplate, the sanitized body and a tracking pixel. Assets live at
// <image_dir>/<feed>/<hash>[_postfix][.index].
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/umputun/feedmaker/pkg/fsutil"
	"github.com/umputun/feedmaker/pkg/urlutil"
)

// HeaderTemplate is the fixed preamble of every artifact, also used as the size threshold for empty extractions
const HeaderTemplate = `<meta http-equiv="Content-Type" content="text/html; charset=UTF-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1.0, maximum-scale=1.0, minimum-scale=1.0, user-scalable=no"/>
<style>img { max-width: 100%; margin-top: 0; margin-bottom: 0; padding-top: 0; padding-bottom: 0; } table { border-width: thin; border-style: dashed; }</style>

`

// MaxBodySize limits the artifact body placed into an rss description
const MaxBodySize = 64 * 1024

// TruncationNotice is prepended to a description cut at MaxBodySize
const TruncationNotice = "<p>This article is too long to be included in the feed and was truncated, open the link to read the rest.</p>\n"

// ImageNotFound is the placeholder image name used when an asset could not be downloaded
const ImageNotFound = "image-not-found.png"

// HTMLDir is the artifact directory name inside the feed directory
const HTMLDir = "html"

// Artifact describes a cached item artifact on disk
type Artifact struct {
	Path    string
	Size    int64
	Present bool // exists and is larger than HeaderTemplate
}

// ArtifactPath returns the deterministic artifact path for the item link
func ArtifactPath(feedDir, link string) string {
	return filepath.Join(feedDir, HTMLDir, urlutil.ShortHash(link)+".html")
}

// Stat returns the artifact state for path, a missing file is reported as not present
func Stat(path string) Artifact {
	res := Artifact{Path: path}
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return res
	}
	res.Size = fi.Size()
	res.Present = fi.Size() > int64(len(HeaderTemplate))
	return res
}

// TrackingPixel returns the 1x1 image tag appended to artifacts, its query carries the feed and artifact key
func TrackingPixel(baseURL, feedName, hash string) string {
	return fmt.Sprintf("<img src='%s/img/1x1.jpg?feed=%s.xml&item=%s'/>\n", strings.TrimSuffix(baseURL, "/"), feedName, hash)
}

// WriteArtifact stores the extracted body for link atomically. It returns false without writing
// when the content is not larger than HeaderTemplate, i.e. the extraction produced nothing.
func WriteArtifact(feedDir, feedName, baseURL, link, body string) (Artifact, bool, error) {
	path := ArtifactPath(feedDir, link)
	content := HeaderTemplate + body
	if strings.TrimSpace(body) == "" || len(content) <= len(HeaderTemplate) {
		return Artifact{Path: path}, false, nil
	}
	content += "\n" + TrackingPixel(baseURL, feedName, urlutil.ShortHash(link))
	if err := fsutil.WriteFileAtomic(path, []byte(content), 0o644); err != nil { //nolint:gosec // served publicly
		return Artifact{Path: path}, false, fmt.Errorf("write artifact for %s: %w", link, err)
	}
	return Stat(path), true, nil
}

// ReadBody reads the artifact and cuts it to MaxBodySize on a rune boundary.
// A truncated body gets TruncationNotice prepended.
func ReadBody(path string) (body string, truncated bool, err error) {
	data, err := os.ReadFile(path) //nolint:gosec // path built by the engine
	if err != nil {
		return "", false, fmt.Errorf("read artifact %s: %w", path, err)
	}
	if len(data) <= MaxBodySize {
		return string(data), false, nil
	}
	cut := MaxBodySize
	for cut > 0 && !utf8.RuneStart(data[cut]) {
		cut--
	}
	return TruncationNotice + string(data[:cut]), true, nil
}

// AssetName returns the cache file name for an asset url. Postfix and index are applied only
// to http and data:image urls, index 0 is ignored.
func AssetName(assetURL, postfix string, index int) string {
	name := urlutil.ShortHash(assetURL)
	if !strings.HasPrefix(assetURL, "http") && !strings.HasPrefix(assetURL, "data:image") {
		return name
	}
	if postfix != "" {
		name += "_" + postfix
	}
	if index != 0 {
		name += "." + strconv.Itoa(index)
	}
	return name
}

// AssetPath returns the on-disk path of the cached asset
func AssetPath(imageDir, feedName, assetURL, postfix string, index int) string {
	return filepath.Join(imageDir, feedName, AssetName(assetURL, postfix, index))
}

// AssetURL returns the public url of the cached asset
func AssetURL(imageURLPrefix, feedName, assetURL, postfix string, index int) string {
	return strings.TrimSuffix(imageURLPrefix, "/") + "/" + feedName + "/" + AssetName(assetURL, postfix, index)
}

// NotFoundURL returns the public url of the placeholder image
func NotFoundURL(imageURLPrefix string) string {
	return strings.TrimSuffix(imageURLPrefix, "/") + "/" + ImageNotFound
}
