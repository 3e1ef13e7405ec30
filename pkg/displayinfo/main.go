package displayinfo

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// SysfsRoot is where Linux exposes backlight devices.
const SysfsRoot = "/sys/class/backlight"

type DeviceInfo struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
	Raw   int    `json:"raw"`
	Max   int    `json:"max"`
}

type DisplayInfo struct {
	Level   int          `json:"level"`
	Devices []DeviceInfo `json:"devices"`
}

// ErrNoDevices means the platform exposes no brightness-capable display.
var ErrNoDevices = errors.New("no backlight devices found")

func readInt(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	s := strings.TrimSpace(string(data))
	return strconv.Atoi(s)
}

// Percent converts a raw device value to a clamped percentage.
func Percent(raw, maxVal int) int {
	if maxVal <= 0 {
		return 0
	}
	percent := int(float64(raw)/float64(maxVal)*100.0 + 0.5)
	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}
	return percent
}

// ReadSysfs lists every backlight device under root with its current level.
// Devices without a readable, positive max_brightness are skipped.
func ReadSysfs(root string) ([]DeviceInfo, error) {
	paths, err := filepath.Glob(filepath.Join(root, "*"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var devices []DeviceInfo
	for _, device := range paths {
		maxVal, err := readInt(filepath.Join(device, "max_brightness"))
		if err != nil || maxVal <= 0 {
			continue
		}

		current, err := readInt(filepath.Join(device, "brightness"))
		if err != nil {
			current = -1
		}

		info := DeviceInfo{Name: filepath.Base(device), Raw: current, Max: maxVal, Level: -1}
		if current >= 0 {
			info.Level = Percent(current, maxVal)
		}
		devices = append(devices, info)
	}
	return devices, nil
}

// GetDisplayInfo reports the hardware level of every device. Level is the
// first readable device's level.
func GetDisplayInfo() (*DisplayInfo, error) {
	devices, err := readDevices()
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, ErrNoDevices
	}

	info := &DisplayInfo{Level: -1, Devices: devices}
	for _, d := range devices {
		if d.Level >= 0 {
			info.Level = d.Level
			break
		}
	}
	return info, nil
}

func GetDisplayInfoJSON() ([]byte, error) {
	info, err := GetDisplayInfo()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(info, "", "  ")
}
