package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithNoFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Defaults()
	if cfg != want {
		t.Errorf("Load(\"\") = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "redsearch.yaml")
	body := "listen: \":9999\"\nstore: redis\nredis_addr: db:6379\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != ":9999" || cfg.Store != StoreRedis || cfg.RedisAddr != "db:6379" || cfg.LogLevel != "debug" {
		t.Errorf("Load(%s) = %+v, want overridden fields", path, cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("REDSEARCH_LISTEN", ":7000")
	t.Setenv("REDSEARCH_STORE", "memory")

	dir := t.TempDir()
	path := filepath.Join(dir, "redsearch.yaml")
	os.WriteFile(path, []byte("listen: \":9999\"\nstore: redis\n"), 0o644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != ":7000" {
		t.Errorf("Listen = %q, want env override :7000", cfg.Listen)
	}
	if cfg.Store != StoreMemory {
		t.Errorf("Store = %q, want env override memory", cfg.Store)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load("/nonexistent/redsearch.yaml"); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
