//go:build windows

package state

import "go.uber.org/zap"

// NewDefault returns the registry store unless an explicit file path is
// configured.
func NewDefault(path string, log *zap.Logger) (Store, error) {
	if path != "" {
		return NewFileStore(path, log), nil
	}
	return NewRegistryStore(log), nil
}
