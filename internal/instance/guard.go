package instance

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// DefaultName identifies the application to the OS exclusivity primitive.
const DefaultName = "BrightnessControlApp"

// ErrAlreadyRunning is returned by Acquire when another live process holds
// the guard.
var ErrAlreadyRunning = errors.New("brightness control is already running")

// Guard is the held instance lock. The OS reclaims it when the process exits
// for any reason, so Release is optional.
type Guard struct {
	name  string
	token string

	once    sync.Once
	release func() error
	err     error
}

func newGuard(name string, release func() error) *Guard {
	return &Guard{name: name, token: uuid.NewString(), release: release}
}

// Name returns the lock name.
func (g *Guard) Name() string {
	return g.name
}

// Token is a random id for this holder, useful to tell restarts apart.
func (g *Guard) Token() string {
	return g.token
}

// Release drops the lock. Calling it more than once is a no-op.
func (g *Guard) Release() error {
	g.once.Do(func() {
		if g.release != nil {
			g.err = g.release()
		}
	})
	return g.err
}

// Close implements io.Closer.
func (g *Guard) Close() error {
	return g.Release()
}

// RuntimeDir returns the per-user directory for lock and socket files.
func RuntimeDir() string {
	base := os.Getenv("XDG_RUNTIME_DIR")
	if base == "" {
		base = os.TempDir()
	}

	dir := filepath.Join(base, "brightkeep")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return os.TempDir()
	}
	return dir
}

// Acquire takes the process-wide lock called name. It must run before any
// other component touches hardware or persisted state.
func Acquire(name string) (*Guard, error) {
	return AcquireIn(RuntimeDir(), name)
}
