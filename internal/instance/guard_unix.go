//go:build !windows

package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// AcquireIn takes an exclusive flock on dir/<name>.lock. The kernel drops the
// lock when the holding process dies.
func AcquireIn(dir, name string) (*Guard, error) {
	path := filepath.Join(dir, name+".lock")

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		file.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("flock %s: %w", path, err)
	}

	g := newGuard(name, func() error {
		_ = unix.Flock(int(file.Fd()), unix.LOCK_UN)
		return file.Close()
	})

	// Holder details are informational only; the flock is what matters.
	if err := file.Truncate(0); err == nil {
		_, _ = fmt.Fprintf(file, "%d %s\n", os.Getpid(), g.token)
	}

	return g, nil
}
