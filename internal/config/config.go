// Package config loads the optional bootstrap configuration: which storage
// backend to use and where its files live. Everything the user can change
// at runtime lives in the store's settings table instead.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	BackendSQLite = "sqlite"
	BackendSheet  = "sheet"
)

type StorageConfig struct {
	Backend   string `yaml:"backend"`
	DBPath    string `yaml:"db_path"`
	SheetPath string `yaml:"sheet_path"`
}

type DebugConfig struct {
	LogFile string `yaml:"log_file"`
}

type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Debug   DebugConfig   `yaml:"debug"`
}

// Load reads the YAML config at path. A missing or empty file yields the
// defaults; environment variables override whatever the file set.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Storage: StorageConfig{Backend: BackendSQLite},
	}

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("open config: %w", err)
	}

	overrideFromEnv(cfg)

	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendSQLite
	}
	if cfg.Storage.Backend != BackendSQLite && cfg.Storage.Backend != BackendSheet {
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	return cfg, nil
}

func overrideFromEnv(cfg *Config) {
	if backend := os.Getenv("HABIT_BACKEND"); backend != "" {
		cfg.Storage.Backend = backend
	}
	if path := os.Getenv("HABIT_DB_PATH"); path != "" {
		cfg.Storage.DBPath = path
	}
	if path := os.Getenv("HABIT_SHEET_PATH"); path != "" {
		cfg.Storage.SheetPath = path
	}
	if path := os.Getenv("HABIT_LOG_FILE"); path != "" {
		cfg.Debug.LogFile = path
	}
}

// DefaultPath returns ~/.config/habit-tracker/config.yaml
func DefaultPath() (string, error) {
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, "habit-tracker", "config.yaml"), nil
}
