package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvDataURL  = "CHARTAB_DATA_URL"
	EnvDataFile = "CHARTAB_DATA_FILE"
	EnvLogFile  = "CHARTAB_LOG_FILE"
	EnvLogLevel = "CHARTAB_LOG_LEVEL"
)

// LoadDotEnv loads variables from a .env file without overriding the
// existing environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays environment values on top of the file config.
func ApplyEnv(cfg *FileConfig) {
	if v, ok := lookupEnv(EnvDataURL); ok {
		cfg.Data.URL = &v
	}
	if v, ok := lookupEnv(EnvDataFile); ok {
		cfg.Data.File = &v
	}
	if v, ok := lookupEnv(EnvLogFile); ok {
		cfg.Log.File = &v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok {
		cfg.Log.Level = &v
	}
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}
