//go:build !linux && !windows

package operation

import (
	"context"

	"github.com/hoppxi/brightkeep/pkg/brightness"
)

// noBackend exposes no devices, so Apply is always a no-op.
type noBackend struct{}

func (noBackend) Devices(context.Context) ([]Device, error) { return nil, nil }

func (noBackend) SetBrightness(context.Context, Device, brightness.Level) error { return nil }

func defaultBackend() Backend {
	return noBackend{}
}
