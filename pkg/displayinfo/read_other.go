//go:build !windows

package displayinfo

func readDevices() ([]DeviceInfo, error) {
	return ReadSysfs(SysfsRoot)
}
