package domain

import (
	"path/filepath"
	"strings"
)

// Feed identifies a configured feed by its directory under the work dir
type Feed struct {
	Group string
	Name  string
	Dir   string // <work>/<group>/<feed>
}

// NewFeed makes Feed from the feed directory path
func NewFeed(dir string) Feed {
	dir = filepath.Clean(dir)
	return Feed{Group: filepath.Base(filepath.Dir(dir)), Name: filepath.Base(dir), Dir: dir}
}

// ID returns group/name used in log and report lines
func (f Feed) ID() string {
	return f.Group + "/" + f.Name
}

// Enabled reports whether neither the feed nor its group is disabled with the "_" prefix
func (f Feed) Enabled() bool {
	return !strings.HasPrefix(f.Name, "_") && !strings.HasPrefix(f.Group, "_")
}
