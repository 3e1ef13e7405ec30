//go:build windows

package instance

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

// AcquireIn creates the named mutex. dir is unused on Windows; the mutex
// lives in the session namespace and is destroyed with its last handle.
func AcquireIn(_ string, name string) (*Guard, error) {
	ptr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, fmt.Errorf("mutex name %q: %w", name, err)
	}

	handle, err := windows.CreateMutex(nil, true, ptr)
	if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
		if handle != 0 {
			windows.CloseHandle(handle)
		}
		return nil, ErrAlreadyRunning
	}
	if err != nil {
		return nil, fmt.Errorf("create mutex %q: %w", name, err)
	}

	return newGuard(name, func() error {
		_ = windows.ReleaseMutex(handle)
		return windows.CloseHandle(handle)
	}), nil
}
