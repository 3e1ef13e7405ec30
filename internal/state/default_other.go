//go:build !windows

package state

import "go.uber.org/zap"

// NewDefault returns the platform store. An empty path means DefaultPath.
func NewDefault(path string, log *zap.Logger) (Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return NewFileStore(path, log), nil
}
