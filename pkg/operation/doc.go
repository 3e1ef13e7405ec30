// Package operation applies brightness to the physical display.
//
// Display enumerates every brightness-capable device the platform exposes
// and sets each one. Linux goes through logind over D-Bus and falls back to
// /sys/class/backlight; Windows uses WmiMonitorBrightnessMethods. Having no
// capable device is not an error.
package operation
