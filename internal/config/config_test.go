package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Data.URL != nil || cfg.Log.Level != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[data]
url = "https://example.com/data.csv"
column = "payment"
timeout = "5s"
snapshot = false

[experiment]
seed = 42

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Data.URL == nil || *cfg.Data.URL != "https://example.com/data.csv" {
		t.Fatalf("unexpected url: %v", cfg.Data.URL)
	}
	if cfg.Data.Timeout == nil || *cfg.Data.Timeout != "5s" {
		t.Fatalf("unexpected timeout: %v", cfg.Data.Timeout)
	}
	if cfg.Data.Snapshot == nil || *cfg.Data.Snapshot {
		t.Fatalf("expected snapshot=false")
	}
	if cfg.Experiment.Seed == nil || *cfg.Experiment.Seed != 42 {
		t.Fatalf("unexpected seed: %v", cfg.Experiment.Seed)
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("unexpected level: %v", cfg.Log.Level)
	}
	if cfg.Data.File != nil {
		t.Fatalf("expected file to stay unset")
	}
}

func TestLoadConfigRejectsEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestApplyEnvOverridesFile(t *testing.T) {
	fileURL := "https://example.com/file.csv"
	cfg := FileConfig{Data: DataConfig{URL: &fileURL}}
	t.Setenv(EnvDataURL, "https://example.com/env.csv")
	t.Setenv(EnvLogLevel, "  ")

	ApplyEnv(&cfg)
	if cfg.Data.URL == nil || *cfg.Data.URL != "https://example.com/env.csv" {
		t.Fatalf("expected env url to win, got %v", cfg.Data.URL)
	}
	if cfg.Log.Level != nil {
		t.Fatalf("blank env value must not override, got %q", *cfg.Log.Level)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := LoadDotEnv(filepath.Join(dir, ".env")); err != nil {
		t.Fatalf("missing .env should be ignored, got %v", err)
	}

	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("CHARTAB_DATA_FILE=/tmp/rides.csv\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv(EnvDataFile, "")
	if err := os.Unsetenv(EnvDataFile); err != nil {
		t.Fatalf("unset env: %v", err)
	}
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load .env: %v", err)
	}
	if got := os.Getenv(EnvDataFile); got != "/tmp/rides.csv" {
		t.Fatalf("expected value from .env, got %q", got)
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "chartab", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "chartab", "snapshots.db") {
		t.Fatalf("unexpected db path %q", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/data", "chartab", "chartab.log") {
		t.Fatalf("unexpected log path %q", got)
	}
}
