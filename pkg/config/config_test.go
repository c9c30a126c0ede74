package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const minimalYAML = `environment: test
analytics:
  base_url: http://localhost:8001
trading:
  base_url: http://localhost:8002
arbitrage:
  base_url: http://localhost:8003
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Analytics.PollInterval != 30*time.Second {
		t.Errorf("poll interval = %v, want 30s", cfg.Analytics.PollInterval)
	}
	if cfg.Analytics.Limit != 50 {
		t.Errorf("limit = %d, want 50", cfg.Analytics.Limit)
	}
	if cfg.Gate.Namespace != "3omla_gate" {
		t.Errorf("gate namespace = %q", cfg.Gate.Namespace)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadRejectsMissingRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no environment", "analytics:\n  base_url: http://a\ntrading:\n  base_url: http://t\narbitrage:\n  base_url: http://r\n"},
		{"no analytics url", "environment: test\ntrading:\n  base_url: http://t\narbitrage:\n  base_url: http://r\n"},
		{"audit enabled without brokers", minimalYAML + "audit:\n  enabled: true\n"},
		{"journal enabled without host", minimalYAML + "journal:\n  enabled: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.yaml)); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("ANALYTICS_URL", "http://analytics.internal:9001")
	t.Setenv("SYMBOLS", "BTCUSDT,ETHUSDT")

	cfg, err := LoadWithEnv(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Analytics.BaseURL != "http://analytics.internal:9001" {
		t.Errorf("base url = %q, env override lost", cfg.Analytics.BaseURL)
	}
	if len(cfg.Analytics.Symbols) != 2 || cfg.Analytics.Symbols[0] != "BTCUSDT" {
		t.Errorf("symbols = %v", cfg.Analytics.Symbols)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
