package operation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hoppxi/brightkeep/pkg/brightness"
	"github.com/hoppxi/brightkeep/pkg/displayinfo"
)

// LogindFunc asks a session manager to set a device's raw brightness.
type LogindFunc func(ctx context.Context, subsystem, name string, value uint32) error

// SysfsBackend drives /sys/class/backlight. Writes go through logind first
// since it does not need root, and fall back to writing the sysfs file.
type SysfsBackend struct {
	Root   string
	Logind LogindFunc
}

func (b *SysfsBackend) root() string {
	if b.Root == "" {
		return displayinfo.SysfsRoot
	}
	return b.Root
}

func (b *SysfsBackend) Devices(ctx context.Context) ([]Device, error) {
	infos, err := displayinfo.ReadSysfs(b.root())
	if err != nil {
		return nil, err
	}

	devices := make([]Device, 0, len(infos))
	for _, info := range infos {
		devices = append(devices, Device{Name: info.Name, Max: info.Max})
	}
	return devices, nil
}

func (b *SysfsBackend) SetBrightness(ctx context.Context, dev Device, level brightness.Level) error {
	raw := RawValue(level, dev.Max)

	var logindErr error
	if b.Logind != nil {
		logindErr = b.Logind(ctx, "backlight", dev.Name, uint32(raw))
		if logindErr == nil {
			return nil
		}
	}

	path := filepath.Join(b.root(), dev.Name, "brightness")
	if err := os.WriteFile(path, []byte(strconv.Itoa(raw)), 0o644); err != nil {
		if logindErr != nil {
			return errors.Join(fmt.Errorf("logind: %w", logindErr), fmt.Errorf("sysfs: %w", err))
		}
		return fmt.Errorf("sysfs: %w", err)
	}
	return nil
}
