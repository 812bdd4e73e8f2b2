package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Fatalf("expected sqlite default, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.DBPath != "" || cfg.Debug.LogFile != "" {
		t.Fatalf("paths should default empty: %+v", cfg)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Fatalf("expected sqlite default, got %q", cfg.Storage.Backend)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "storage:\n  backend: sheet\n  sheet_path: /data/habits.csv\ndebug:\n  log_file: /tmp/habit.log\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.Backend != BackendSheet {
		t.Fatalf("expected sheet, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.SheetPath != "/data/habits.csv" {
		t.Fatalf("sheet path wrong: %q", cfg.Storage.SheetPath)
	}
	if cfg.Debug.LogFile != "/tmp/habit.log" {
		t.Fatalf("log file wrong: %q", cfg.Debug.LogFile)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "debug:\n  log_file: /tmp/habit.log\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Fatal("unset backend should keep the default")
	}
	if cfg.Debug.LogFile != "/tmp/habit.log" {
		t.Fatalf("log file wrong: %q", cfg.Debug.LogFile)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "storage:\n  backend: sqlite\n  db_path: /from/file.db\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("HABIT_BACKEND", "sheet")
	t.Setenv("HABIT_DB_PATH", "/from/env.db")
	t.Setenv("HABIT_SHEET_PATH", "/from/env.csv")
	t.Setenv("HABIT_LOG_FILE", "/from/env.log")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.Backend != BackendSheet {
		t.Fatal("env should override file backend")
	}
	if cfg.Storage.DBPath != "/from/env.db" {
		t.Fatalf("db path wrong: %q", cfg.Storage.DBPath)
	}
	if cfg.Storage.SheetPath != "/from/env.csv" {
		t.Fatalf("sheet path wrong: %q", cfg.Storage.SheetPath)
	}
	if cfg.Debug.LogFile != "/from/env.log" {
		t.Fatalf("log file wrong: %q", cfg.Debug.LogFile)
	}
}

func TestLoadUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "storage:\n  backend: postgres\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}
