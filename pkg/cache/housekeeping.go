package cache

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// IncompleteAssets returns asset names referenced by the artifact which are missing or empty
// under <imageDir>/<feed>, plus ImageNotFound if the artifact uses the placeholder.
func IncompleteAssets(path, imageURLPrefix, imageDir string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // path built by the engine
	if err != nil {
		return nil, fmt.Errorf("open artifact %s: %w", path, err)
	}
	defer f.Close()

	feedName := filepath.Base(filepath.Dir(filepath.Dir(path)))
	re := assetRefRegexp(imageURLPrefix)

	var res []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, ImageNotFound) {
			res = append(res, ImageNotFound)
		}
		if re == nil {
			continue
		}
		for _, m := range re.FindAllStringSubmatch(line, -1) {
			name := m[1]
			if name == ImageNotFound {
				continue
			}
			fi, err := os.Stat(filepath.Join(imageDir, feedName, name))
			if err != nil || fi.Size() == 0 {
				res = append(res, name)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan artifact %s: %w", path, err)
	}
	return res, nil
}

// assetRefRegexp matches src='<prefix>/<feed>/<name>' at any attribute position of an img tag,
// http and https prefixes are treated the same
func assetRefRegexp(imageURLPrefix string) *regexp.Regexp {
	if imageURLPrefix == "" {
		return nil
	}
	prefix := regexp.QuoteMeta(strings.TrimSuffix(imageURLPrefix, "/"))
	prefix = strings.Replace(prefix, "https", "https?", 1)
	if !strings.Contains(prefix, "https?") {
		prefix = strings.Replace(prefix, "http", "https?", 1)
	}
	return regexp.MustCompile(`(?i)<img\b[^>]*?\ssrc=["']` + prefix + `/[^/'"]+/([^'"\s]+)["']`)
}

// RemoveEmptyAssets deletes zero-size files from the feed asset directory and returns their names
func RemoveEmptyAssets(feedImageDir string) ([]string, error) {
	entries, err := os.ReadDir(feedImageDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read asset dir %s: %w", feedImageDir, err)
	}
	var removed []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		fi, err := e.Info()
		if err != nil || fi.Size() != 0 {
			continue
		}
		if err := os.Remove(filepath.Join(feedImageDir, e.Name())); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("remove empty asset %s: %w", e.Name(), err)
		}
		removed = append(removed, e.Name())
	}
	return removed, nil
}
