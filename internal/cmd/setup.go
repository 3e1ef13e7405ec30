package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hoppxi/brightkeep/config"
	"github.com/hoppxi/brightkeep/internal/instance"
	"github.com/hoppxi/brightkeep/internal/manager"
)

type fileConfig struct {
	Interval  string `yaml:"interval"`
	LogLevel  string `yaml:"log_level"`
	LockName  string `yaml:"lock_name"`
	StatePath string `yaml:"state_path"`
	Dialog    bool   `yaml:"dialog"`
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Generate the daemon config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := manager.Config.Load(); err != nil {
			fmt.Printf("Warning: %v\n", err)
		}
		path := manager.Config.Path()
		if path == "" {
			return fmt.Errorf("cannot resolve the user config directory")
		}

		reader := bufio.NewReader(cmd.InOrStdin())
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Warning: config already exists at %s\n", path)
			if !confirm(reader, "Overwrite it?") {
				return nil
			}
		}

		var data []byte
		if useDefaults, _ := cmd.Flags().GetBool("defaults"); useDefaults {
			data = config.DefaultConfig()
		} else {
			d, err := generateConfig(reader)
			if err != nil {
				return err
			}
			data = d
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		fmt.Println("Config written to", path)
		return nil
	},
}

func generateConfig(reader *bufio.Reader) ([]byte, error) {
	conf := fileConfig{}
	conf.Interval = prompt(reader, "Reapply interval", "60s")
	if _, err := time.ParseDuration(conf.Interval); err != nil {
		return nil, fmt.Errorf("invalid interval %q: %w", conf.Interval, err)
	}
	conf.LogLevel = prompt(reader, "Log level", "info")
	conf.LockName = prompt(reader, "Instance lock name", instance.DefaultName)
	conf.StatePath = prompt(reader, "State file (empty for default)", "")
	conf.Dialog = confirm(reader, "Show a dialog when already running?")

	return yaml.Marshal(&conf)
}

func prompt(r *bufio.Reader, label, defaultValue string) string {
	fmt.Printf("%s [%s]: ", label, defaultValue)
	input, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return defaultValue
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultValue
	}
	return input
}

func confirm(r *bufio.Reader, message string) bool {
	fmt.Printf("%s (y/N): ", message)
	input, _ := r.ReadString('\n')
	input = strings.ToLower(strings.TrimSpace(input))
	return input == "y" || input == "yes"
}

func init() {
	setupCmd.Flags().Bool("defaults", false, "Write the default config without prompting")
}
