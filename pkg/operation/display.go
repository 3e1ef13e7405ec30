package operation

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hoppxi/brightkeep/pkg/brightness"
)

// Device is one brightness-capable display exposed by a backend.
type Device struct {
	Name string
	Max  int
}

// Backend talks to the platform's display management interface.
type Backend interface {
	Devices(ctx context.Context) ([]Device, error)
	SetBrightness(ctx context.Context, dev Device, level brightness.Level) error
}

// Setter applies a brightness level to the hardware.
type Setter interface {
	Apply(ctx context.Context, level brightness.Level) error
}

type DisplayController struct {
	backend Backend
	log     *zap.Logger
}

// Display is the exported instance for the current platform.
var Display = NewDisplay(defaultBackend(), nil)

// NewDisplay wraps backend. A nil logger discards output.
func NewDisplay(backend Backend, log *zap.Logger) *DisplayController {
	if log == nil {
		log = zap.NewNop()
	}
	return &DisplayController{backend: backend, log: log}
}

// WithLogger returns a copy of d that logs to log.
func (d *DisplayController) WithLogger(log *zap.Logger) *DisplayController {
	return NewDisplay(d.backend, log)
}

// Apply sets every capable device to level. No devices is a silent no-op.
// Platform failures, panics included, come back as *HardwareError values,
// joined when more than one device fails.
func (d *DisplayController) Apply(ctx context.Context, level brightness.Level) (err error) {
	level = level.Clamp()

	defer func() {
		if r := recover(); r != nil {
			err = &HardwareError{Op: "apply", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	devices, err := d.backend.Devices(ctx)
	if err != nil {
		return &HardwareError{Op: "enumerate", Err: err}
	}
	if len(devices) == 0 {
		d.log.Debug("no brightness-capable display, nothing to apply")
		return nil
	}

	var errs []error
	for _, dev := range devices {
		if err := d.setOne(ctx, dev, level); err != nil {
			errs = append(errs, err)
			continue
		}
		d.log.Debug("brightness applied", zap.String("device", dev.Name), zap.Int("level", int(level)))
	}
	return errors.Join(errs...)
}

func (d *DisplayController) setOne(ctx context.Context, dev Device, level brightness.Level) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &HardwareError{Device: dev.Name, Op: "set", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := d.backend.SetBrightness(ctx, dev, level); err != nil {
		return &HardwareError{Device: dev.Name, Op: "set", Err: err}
	}
	return nil
}

// RawValue scales a percentage to a device's native range, rounding to the
// nearest step.
func RawValue(level brightness.Level, maxVal int) int {
	if maxVal <= 0 {
		return 0
	}
	return (int(level.Clamp())*maxVal + 50) / 100
}
