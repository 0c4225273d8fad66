package feed

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/feedmaker/pkg/domain"
	"github.com/umputun/feedmaker/pkg/fsutil"
)

// OldSuffix is appended to the previously published document on rotation
const OldSuffix = ".old"

var volatileLine = regexp.MustCompile(`^\s*<(pubDate|lastBuildDate)>[^<]*</(pubDate|lastBuildDate)>\s*$`)

// Changed reports whether two rendered documents differ in anything but pubDate and lastBuildDate lines
func Changed(prev, next []byte) bool {
	a, b := relevantLines(prev), relevantLines(next)
	if len(a) != len(b) {
		return true
	}
	for i := range a {
		if a[i] != b[i] {
			return true
		}
	}
	return false
}

func relevantLines(data []byte) []string {
	var res []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for scanner.Scan() {
		line := scanner.Text()
		if volatileLine.MatchString(line) {
			continue
		}
		res = append(res, line)
	}
	return res
}

// Publish writes data to a temp sibling of path and replaces path with it if the content changed.
// The current document is kept as path.old and path is never absent once published.
// Returns false if the existing document is unchanged.
func Publish(path string, data []byte) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return false, fmt.Errorf("make dir for %s: %v: %w", path, err, domain.ErrPublishFailed)
	}
	tmp := fsutil.TempPath(path)
	if err := os.WriteFile(tmp, data, 0o644); err != nil { //nolint:gosec // published feed is world readable
		_ = os.Remove(tmp)
		return false, fmt.Errorf("write temp file: %v: %w", err, domain.ErrPublishFailed)
	}

	prev, err := os.ReadFile(path) //nolint:gosec // path built by the engine
	switch {
	case err == nil:
		if !Changed(prev, data) {
			_ = os.Remove(tmp)
			log.Printf("[DEBUG] %s unchanged, not published", path)
			return false, nil
		}
		if err = rotate(path); err != nil {
			_ = os.Remove(tmp)
			return false, fmt.Errorf("rotate %s: %v: %w", path, err, domain.ErrPublishFailed)
		}
	case !os.IsNotExist(err):
		_ = os.Remove(tmp)
		return false, fmt.Errorf("read %s: %v: %w", path, err, domain.ErrPublishFailed)
	}

	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return false, fmt.Errorf("rename %s: %v: %w", tmp, err, domain.ErrPublishFailed)
	}
	return true, nil
}

// rotate makes path.old a copy of path while path itself stays in place
func rotate(path string) error {
	old := path + OldSuffix
	if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", old, err)
	}
	if err := os.Link(path, old); err == nil {
		return nil
	}
	// hard links may be unsupported, fall back to a copy
	return fsutil.CopyFileAtomic(path, old)
}

// Mirror copies the published document into publicDir/<name>.xml.
// Does nothing when publicDir is empty, or when the document was not republished and the mirror exists.
func Mirror(path, publicDir, name string, published bool) error {
	if publicDir == "" {
		return nil
	}
	dst := filepath.Join(publicDir, name+".xml")
	if !published && fsutil.Exists(dst) {
		return nil
	}
	if err := fsutil.CopyFileAtomic(path, dst); err != nil {
		return fmt.Errorf("mirror %s: %v: %w", name, err, domain.ErrPublishFailed)
	}
	return nil
}
