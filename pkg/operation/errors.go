package operation

import "fmt"

// HardwareError is a failed platform call. It is never fatal: callers log it
// and keep running.
type HardwareError struct {
	Device string
	Op     string
	Err    error
}

func (e *HardwareError) Error() string {
	if e.Device == "" {
		return fmt.Sprintf("failed to %s brightness: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("failed to %s brightness on %s: %v", e.Op, e.Device, e.Err)
}

func (e *HardwareError) Unwrap() error {
	return e.Err
}
