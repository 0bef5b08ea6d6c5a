// Package config loads run settings from an optional YAML file, merged
// under command-line flags.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/splitdiff/internal/gitdiff"
	"github.com/dshills/splitdiff/internal/outname"
)

// DefaultFile is the per-project config file looked up in the working
// directory when no --config flag names one.
const DefaultFile = ".splitdiff.yaml"

// Config carries the settings a run starts from. Flags override per field.
type Config struct {
	OutDir      string `yaml:"out_dir"`
	Base        string `yaml:"base"`
	MaxAttempts int    `yaml:"max_attempts"`
	LogLevel    string `yaml:"log_level"`
}

// Default returns the settings used when neither file nor flags say
// otherwise.
func Default() Config {
	return Config{
		OutDir:      ".",
		Base:        gitdiff.DefaultBase,
		MaxAttempts: outname.DefaultMaxAttempts,
		LogLevel:    "info",
	}
}

// Load reads path and overlays it on the defaults, so fields absent from
// the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config.Load: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config.Load: parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefaultFile loads DefaultFile when the working directory has one and
// returns plain defaults when it does not.
func LoadDefaultFile() (Config, error) {
	if _, err := os.Stat(DefaultFile); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("config.LoadDefaultFile: %w", err)
	}
	return Load(DefaultFile)
}

// Dump renders c as the YAML Load accepts.
func (c Config) Dump() (string, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("config.Dump: %w", err)
	}
	return string(b), nil
}
