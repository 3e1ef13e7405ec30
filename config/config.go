package config

import (
	_ "embed"
)

//go:embed default.yaml
var defaultConfig []byte

// DefaultConfig returns the commented default config.yaml.
func DefaultConfig() []byte {
	return defaultConfig
}
