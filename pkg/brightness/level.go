package brightness

import (
	"fmt"
	"strconv"
	"strings"
)

// Level is a display backlight intensity in percent.
type Level int

const (
	Min Level = 0
	Max Level = 100

	// Default is used when no valid level has been persisted.
	Default Level = Max
)

// Clamp limits v to [Min, Max].
func Clamp(v int) Level {
	switch {
	case v < int(Min):
		return Min
	case v > int(Max):
		return Max
	default:
		return Level(v)
	}
}

// Clamp returns l limited to [Min, Max].
func (l Level) Clamp() Level {
	return Clamp(int(l))
}

func (l Level) String() string {
	return strconv.Itoa(int(l)) + "%"
}

// Parse resolves a user request against the current level. "40" and "40%"
// are absolute, "+10" and "-5" are relative to current. The result is
// clamped, so "200" yields 100.
func Parse(current Level, arg string) (Level, error) {
	s := strings.TrimSuffix(strings.TrimSpace(arg), "%")
	if s == "" {
		return current, fmt.Errorf("empty brightness value")
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return current, fmt.Errorf("invalid brightness value %q", arg)
	}

	if s[0] == '+' || s[0] == '-' {
		return Clamp(int(current) + n), nil
	}
	return Clamp(n), nil
}

// Tooltip is the text shown by the tray icon for l.
func Tooltip(l Level) string {
	return fmt.Sprintf("Brightness Control - %d%%", int(l))
}

// Label is the text shown next to the slider for l.
func Label(l Level) string {
	return fmt.Sprintf("Brightness: %d%%", int(l))
}
