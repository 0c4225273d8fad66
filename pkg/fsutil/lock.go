package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/umputun/feedmaker/pkg/domain"
)

// LockFileName is the per-feed lock file kept in the feed directory
const LockFileName = ".feedmaker.lock"

// Lock is an exclusive advisory lock on a feed directory.
// The kernel drops it when the holder dies, so a left-over lock file is harmless.
type Lock struct {
	f *os.File
}

// TryLock takes the exclusive lock on dir without waiting, returns domain.ErrFeedBusy if another holder has it
func TryLock(dir string) (*Lock, error) {
	path := filepath.Join(dir, LockFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600) //nolint:gosec // path built by the engine
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", path, err)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, fmt.Errorf("lock %s: %w", dir, domain.ErrFeedBusy)
		}
		return nil, fmt.Errorf("lock %s: %w", dir, err)
	}
	return &Lock{f: f}, nil
}

// Unlock releases the lock, safe to call on nil
func (l *Lock) Unlock() error {
	if l == nil || l.f == nil {
		return nil
	}
	defer func() { l.f = nil }()
	if err := unix.Flock(int(l.f.Fd()), unix.LOCK_UN); err != nil {
		_ = l.f.Close()
		return fmt.Errorf("unlock: %w", err)
	}
	return l.f.Close()
}
