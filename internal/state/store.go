package state

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hoppxi/brightkeep/pkg/brightness"
)

// Store persists the last confirmed brightness level for the current user.
// Implementations do not cache: every call hits the backing store.
type Store interface {
	// Load returns the stored level, or brightness.Default when the value is
	// absent, unreadable or malformed. Out of range values are clamped.
	Load() brightness.Level
	// Save writes the clamped level, creating the storage location if needed.
	Save(level brightness.Level) error
}

// parseValue converts a raw stored value into a level.
func parseValue(raw any) (brightness.Level, error) {
	switch v := raw.(type) {
	case int:
		return brightness.Clamp(v), nil
	case int64:
		return clamp64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return brightness.Max, nil
		}
		return clamp64(int64(v)), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return brightness.Default, fmt.Errorf("%w: %q", ErrMalformed, v)
		}
		return brightness.Clamp(n), nil
	default:
		return brightness.Default, fmt.Errorf("%w: %v", ErrMalformed, raw)
	}
}

func clamp64(v int64) brightness.Level {
	switch {
	case v < int64(brightness.Min):
		return brightness.Min
	case v > int64(brightness.Max):
		return brightness.Max
	default:
		return brightness.Level(v)
	}
}
