package manager

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hoppxi/brightkeep/internal/instance"
	"github.com/hoppxi/brightkeep/internal/scheduler"
)

// MinInterval is the shortest accepted reapplication period.
const MinInterval = time.Second

// Settings is the daemon configuration. The brightness level itself is not
// configuration; it lives in the state store.
type Settings struct {
	Interval  time.Duration
	LogLevel  string
	LockName  string
	StatePath string
	Dialog    bool
}

type ConfigManager struct {
	once sync.Once
	path string
	v    *viper.Viper
	err  error
}

var Config = NewConfigManager("")

// NewConfigManager reads path, or <UserConfigDir>/brightkeep/config.yaml when
// path is empty.
func NewConfigManager(path string) *ConfigManager {
	return &ConfigManager{path: path}
}

func defaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "brightkeep", "config.yaml"), nil
}

// Load reads the config file once. A missing file is not an error.
func (c *ConfigManager) Load() (*viper.Viper, error) {
	c.once.Do(func() {
		v := viper.New()
		v.SetDefault("interval", scheduler.DefaultInterval)
		v.SetDefault("log_level", "info")
		v.SetDefault("lock_name", instance.DefaultName)
		v.SetDefault("state_path", "")
		v.SetDefault("dialog", true)

		v.SetEnvPrefix("BRIGHTKEEP")
		v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		v.AutomaticEnv()
		c.v = v

		if c.path == "" {
			p, err := defaultConfigPath()
			if err != nil {
				return
			}
			c.path = p
		}

		v.SetConfigFile(c.path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.err = fmt.Errorf("failed to read config: %w", err)
		}
	})

	return c.v, c.err
}

// Path returns the config file location.
func (c *ConfigManager) Path() string {
	return c.path
}

// BindFlags lets command-line flags override file and env values.
func (c *ConfigManager) BindFlags(flags *pflag.FlagSet) error {
	v, _ := c.Load()
	for key, name := range map[string]string{
		"interval":   "interval",
		"log_level":  "log-level",
		"state_path": "state-path",
		"dialog":     "dialog",
	} {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// Settings returns the current configuration.
func (c *ConfigManager) Settings() Settings {
	v, _ := c.Load()

	interval := v.GetDuration("interval")
	if interval <= 0 {
		interval = scheduler.DefaultInterval
	} else if interval < MinInterval {
		interval = MinInterval
	}

	lockName := v.GetString("lock_name")
	if lockName == "" {
		lockName = instance.DefaultName
	}

	return Settings{
		Interval:  interval,
		LogLevel:  v.GetString("log_level"),
		LockName:  lockName,
		StatePath: v.GetString("state_path"),
		Dialog:    v.GetBool("dialog"),
	}
}

// Watch calls onChange with fresh settings whenever the config file changes.
// It reports false when there is no file to watch.
func (c *ConfigManager) Watch(onChange func(Settings)) bool {
	v, _ := c.Load()
	if _, err := os.Stat(c.path); err != nil {
		return false
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		onChange(c.Settings())
	})
	v.WatchConfig()
	return true
}
