package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type daemonConfig struct {
	Device       string
	Baud         int
	ReadTimeout  time.Duration
	PollInterval time.Duration
	ListenAddr   string
	CORSOrigins  []string
}

func defaultDaemonConfig() daemonConfig {
	return daemonConfig{
		Device:       "/dev/ttyAMA0",
		Baud:         115200,
		ReadTimeout:  time.Second,
		PollInterval: 100 * time.Millisecond,
		ListenAddr:   ":8080",
	}
}

type fileConfig struct {
	Device       string   `toml:"device"`
	Baud         int      `toml:"baud"`
	ReadTimeout  string   `toml:"read_timeout"`
	PollInterval string   `toml:"poll_interval"`
	ListenAddr   string   `toml:"listen_addr"`
	CORSOrigins  []string `toml:"cors_origins"`
}

func loadDaemonConfig(path string) (daemonConfig, error) {
	cfg := defaultDaemonConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return daemonConfig{}, fmt.Errorf("load camrxd config: %w", err)
	}

	if meta.IsDefined("device") {
		device := strings.TrimSpace(raw.Device)
		if device != "" {
			cfg.Device = device
		}
	}

	if meta.IsDefined("baud") {
		if raw.Baud <= 0 {
			return daemonConfig{}, fmt.Errorf("camrxd config: baud must be positive, got %d", raw.Baud)
		}
		cfg.Baud = raw.Baud
	}

	if meta.IsDefined("read_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ReadTimeout))
		if err != nil {
			return daemonConfig{}, fmt.Errorf("parse read_timeout: %w", err)
		}
		if d <= 0 {
			return daemonConfig{}, fmt.Errorf("camrxd config: read_timeout must be positive, got %v", d)
		}
		cfg.ReadTimeout = d
	}

	if meta.IsDefined("poll_interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.PollInterval))
		if err != nil {
			return daemonConfig{}, fmt.Errorf("parse poll_interval: %w", err)
		}
		if d <= 0 {
			return daemonConfig{}, fmt.Errorf("camrxd config: poll_interval must be positive, got %v", d)
		}
		cfg.PollInterval = d
	}

	if meta.IsDefined("listen_addr") {
		cfg.ListenAddr = strings.TrimSpace(raw.ListenAddr)
	}

	if meta.IsDefined("cors_origins") {
		cfg.CORSOrigins = normalizeOrigins(raw.CORSOrigins)
	}

	return cfg, nil
}

func normalizeOrigins(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimSpace(origin)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
