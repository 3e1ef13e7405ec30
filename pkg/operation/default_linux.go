//go:build linux

package operation

func defaultBackend() Backend {
	return &SysfsBackend{Logind: LogindSetBrightness}
}
