// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Data       DataConfig       `toml:"data"`
	Experiment ExperimentConfig `toml:"experiment"`
	Log        LogConfig        `toml:"log"`
}

// DataConfig maps dataset source settings.
type DataConfig struct {
	URL      *string `toml:"url"`
	File     *string `toml:"file"`
	Column   *string `toml:"column"`
	Timeout  *string `toml:"timeout"`
	Snapshot *bool   `toml:"snapshot"`
}

// ExperimentConfig maps experiment settings.
type ExperimentConfig struct {
	Seed *int64 `toml:"seed"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	File  *string `toml:"file"`
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
