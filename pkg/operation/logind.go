package operation

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	logindService = "org.freedesktop.login1"
	logindSession = "/org/freedesktop/login1/session/auto"
)

// LogindSetBrightness calls org.freedesktop.login1.Session.SetBrightness on
// the caller's session over the system bus.
func LogindSetBrightness(ctx context.Context, subsystem, name string, value uint32) error {
	conn, err := dbus.ConnectSystemBus(dbus.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to connect to system bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object(logindService, logindSession)
	call := obj.CallWithContext(ctx, logindService+".Session.SetBrightness", 0, subsystem, name, value)
	if call.Err != nil {
		return fmt.Errorf("SetBrightness %s/%s: %w", subsystem, name, call.Err)
	}
	return nil
}
