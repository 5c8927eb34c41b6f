package config

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func newTestDatabase(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE pipeline_config (key TEXT PRIMARY KEY, value TEXT)`); err != nil {
		t.Fatal(err)
	}
	rows := map[string]string{
		"input_dir":  "/data/differences",
		"output_dir": "/data/out",
		"features":   "shading, pollution",
		"debug":      "true",
	}
	for k, v := range rows {
		if _, err := db.Exec(`INSERT INTO pipeline_config (key, value) VALUES (?, ?)`, k, v); err != nil {
			t.Fatal(err)
		}
	}
	return path
}

func TestSQLiteProviderLoadConfig(t *testing.T) {
	provider, err := NewSQLiteProvider(newTestDatabase(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer provider.Close()

	cfg, err := provider.LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.InputDir != "/data/differences" {
		t.Errorf("unexpected input_dir: %s", cfg.InputDir)
	}
	if cfg.OutputDir != "/data/out" {
		t.Errorf("unexpected output_dir: %s", cfg.OutputDir)
	}
	if len(cfg.Features) != 2 || cfg.Features[0] != "shading" || cfg.Features[1] != "pollution" {
		t.Errorf("unexpected features: %v", cfg.Features)
	}
	if !cfg.Debug {
		t.Error("expected debug to be true")
	}
	if provider.IsReadOnly() {
		t.Error("SQLite provider should not be read-only")
	}
}
