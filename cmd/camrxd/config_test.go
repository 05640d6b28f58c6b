package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDaemonConfigDefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "config.toml")
	content := `
device = "/dev/ttyUSB3"
baud = 921600
read_timeout = "250ms"
cors_origins = ["http://localhost:3000", "  "]
	`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadDaemonConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Device != "/dev/ttyUSB3" {
		t.Fatalf("unexpected device: %q", cfg.Device)
	}
	if cfg.Baud != 921600 {
		t.Fatalf("unexpected baud: %d", cfg.Baud)
	}
	if cfg.ReadTimeout != 250*time.Millisecond {
		t.Fatalf("unexpected read timeout: %v", cfg.ReadTimeout)
	}
	// Keys absent from the file keep their defaults.
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("unexpected listen addr: %q", cfg.ListenAddr)
	}
	if cfg.PollInterval != 100*time.Millisecond {
		t.Fatalf("unexpected poll interval: %v", cfg.PollInterval)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
}

func TestLoadDaemonConfigRejectsBadValues(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name    string
		content string
	}{
		{name: "zero baud", content: `baud = 0`},
		{name: "negative read timeout", content: `read_timeout = "-1s"`},
		{name: "unparseable duration", content: `poll_interval = "fast"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, "bad.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := loadDaemonConfig(path); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestLoadDaemonConfigMissingFile(t *testing.T) {
	if _, err := loadDaemonConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
