//go:build windows

package state

import (
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sys/windows/registry"

	"github.com/hoppxi/brightkeep/pkg/brightness"
)

const (
	// RegistryKey is relative to HKEY_CURRENT_USER.
	RegistryKey   = `SOFTWARE\BrightnessControl`
	RegistryValue = "BrightnessLevel"
)

// RegistryStore keeps the level as a DWORD under HKCU.
type RegistryStore struct {
	log *zap.Logger
}

func NewRegistryStore(log *zap.Logger) *RegistryStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &RegistryStore{log: log}
}

func (s *RegistryStore) Load() brightness.Level {
	key, err := registry.OpenKey(registry.CURRENT_USER, RegistryKey, registry.QUERY_VALUE)
	if err != nil {
		s.log.Debug("no persisted brightness, using default", zap.Error(err))
		return brightness.Default
	}
	defer key.Close()

	if v, _, err := key.GetIntegerValue(RegistryValue); err == nil {
		// DWORDs written from a signed int keep their sign.
		return brightness.Clamp(int(int32(uint32(v))))
	} else if !errors.Is(err, registry.ErrUnexpectedType) {
		s.log.Debug("no persisted brightness, using default", zap.Error(err))
		return brightness.Default
	}

	str, _, err := key.GetStringValue(RegistryValue)
	if err != nil {
		s.log.Warn("ignoring persisted brightness", zap.Error(err))
		return brightness.Default
	}
	n, err := strconv.Atoi(strings.TrimSpace(str))
	if err != nil {
		s.log.Warn("ignoring persisted brightness", zap.Error(ErrMalformed), zap.String("value", str))
		return brightness.Default
	}
	return brightness.Clamp(n)
}

func (s *RegistryStore) Save(level brightness.Level) error {
	key, _, err := registry.CreateKey(registry.CURRENT_USER, RegistryKey, registry.SET_VALUE)
	if err != nil {
		return &PersistenceError{Op: "save", Path: `HKCU\` + RegistryKey, Err: err}
	}
	defer key.Close()

	if err := key.SetDWordValue(RegistryValue, uint32(level.Clamp())); err != nil {
		return &PersistenceError{Op: "save", Path: `HKCU\` + RegistryKey, Err: err}
	}
	return nil
}
