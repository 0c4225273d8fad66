package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/feedmaker/pkg/fsutil"
)

// CursorFileName is the window cursor file inside the feed directory
const CursorFileName = "start_idx.txt"

// Cursor is the window position over the sorted archive of a completed feed
type Cursor struct {
	Index int
	MTime time.Time // when the cursor last advanced
}

// LoadCursor reads the cursor, ok is false if the file is missing or unreadable
func LoadCursor(feedDir string) (c Cursor, ok bool, err error) {
	data, err := os.ReadFile(filepath.Join(feedDir, CursorFileName)) //nolint:gosec // path built by the engine
	if err != nil {
		if os.IsNotExist(err) {
			return Cursor{}, false, nil
		}
		return Cursor{}, false, fmt.Errorf("read cursor: %w", err)
	}
	c, err = ParseCursor(string(data))
	if err != nil {
		return Cursor{}, false, err
	}
	return c, true, nil
}

// ParseCursor parses "<index>\t<unix-seconds>", an RFC3339 time is accepted as well
func ParseCursor(s string) (Cursor, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return Cursor{}, fmt.Errorf("malformed cursor %q", strings.TrimSpace(s))
	}
	idx, err := strconv.Atoi(fields[0])
	if err != nil || idx < 0 {
		return Cursor{}, fmt.Errorf("malformed cursor index %q", fields[0])
	}
	if sec, err := strconv.ParseInt(fields[1], 10, 64); err == nil {
		return Cursor{Index: idx, MTime: time.Unix(sec, 0)}, nil
	}
	t, err := time.Parse(time.RFC3339, fields[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("malformed cursor time %q: %w", fields[1], err)
	}
	return Cursor{Index: idx, MTime: t}, nil
}

// String formats the cursor as stored on disk
func (c Cursor) String() string {
	return fmt.Sprintf("%d\t%d\n", c.Index, c.MTime.Unix())
}

// StoreCursor writes the cursor atomically
func StoreCursor(feedDir string, c Cursor) error {
	if err := fsutil.WriteFileAtomic(filepath.Join(feedDir, CursorFileName), []byte(c.String()), 0o644); err != nil { //nolint:gosec // not sensitive
		return fmt.Errorf("write cursor: %w", err)
	}
	return nil
}
