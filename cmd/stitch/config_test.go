package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenAddr != "127.0.0.1:3000" {
		t.Fatalf("got listen addr %q, want 127.0.0.1:3000", cfg.ListenAddr)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("got log level %q, want info", cfg.LogLevel)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stitch.toml")
	data := `process_prefix = "org.mozilla"
listen_addr = "127.0.0.1:4000"
log_level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ProcessPrefix != "org.mozilla" {
		t.Fatalf("got process prefix %q, want org.mozilla", cfg.ProcessPrefix)
	}
	if cfg.ListenAddr != "127.0.0.1:4000" {
		t.Fatalf("got listen addr %q, want 127.0.0.1:4000", cfg.ListenAddr)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stitch.toml")
	if err := os.WriteFile(path, []byte(`log_level = "debug"`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STITCH_LOG_LEVEL", "warn")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("got log level %q, want warn", cfg.LogLevel)
	}
}
