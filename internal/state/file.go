package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/hoppxi/brightkeep/pkg/brightness"
)

// Key is the name of the persisted brightness entry.
const Key = "brightness_level"

type record struct {
	BrightnessLevel int `yaml:"brightness_level"`
}

// FileStore keeps the level in a small yaml file.
type FileStore struct {
	path string
	log  *zap.Logger
}

// DefaultPath returns <UserConfigDir>/brightkeep/state.yaml.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, "brightkeep", "state.yaml"), nil
}

// NewFileStore returns a store backed by path. A nil logger discards output.
func NewFileStore(path string, log *zap.Logger) *FileStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileStore{path: path, log: log}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() brightness.Level {
	level, err := s.read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Debug("no persisted brightness, using default", zap.String("path", s.path))
		} else {
			s.log.Warn("ignoring persisted brightness", zap.String("path", s.path), zap.Error(err))
		}
		return brightness.Default
	}
	return level
}

func (s *FileStore) read() (brightness.Level, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return brightness.Default, err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return brightness.Default, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	raw, ok := doc[Key]
	if !ok || raw == nil {
		return brightness.Default, fs.ErrNotExist
	}
	return parseValue(raw)
}

func (s *FileStore) Save(level brightness.Level) error {
	data, err := yaml.Marshal(&record{BrightnessLevel: int(level.Clamp())})
	if err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".state-*.yaml")
	if err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}

	s.log.Debug("persisted brightness", zap.Int("level", int(level.Clamp())), zap.String("path", s.path))
	return nil
}
