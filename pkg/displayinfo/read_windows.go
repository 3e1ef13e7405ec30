//go:build windows

package displayinfo

import (
	"fmt"

	"github.com/yusufpapurcu/wmi"
)

// WmiMonitorBrightness mirrors the root\wmi class of the same name.
type WmiMonitorBrightness struct {
	InstanceName      string
	CurrentBrightness uint8
	Active            bool
}

func readDevices() ([]DeviceInfo, error) {
	var dst []WmiMonitorBrightness
	query := "SELECT InstanceName, CurrentBrightness, Active FROM WmiMonitorBrightness"

	if err := wmi.QueryNamespace(query, &dst, `root\wmi`); err != nil {
		return nil, fmt.Errorf("WMI query failed: %w", err)
	}

	devices := make([]DeviceInfo, 0, len(dst))
	for _, m := range dst {
		if !m.Active {
			continue
		}
		devices = append(devices, DeviceInfo{
			Name:  m.InstanceName,
			Level: int(m.CurrentBrightness),
			Raw:   int(m.CurrentBrightness),
			Max:   100,
		})
	}
	return devices, nil
}
