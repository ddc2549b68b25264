package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("NICEBOARD_CONFIG", "")
	for _, name := range env {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("NICEBOARD_API_KEY", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "info" || cfg.Host != "0.0.0.0" || cfg.Port != "8080" {
		t.Errorf("server defaults = %q %q %q", cfg.LogLevel, cfg.Host, cfg.Port)
	}
	if cfg.Upload.BatchSize != 10 || cfg.Upload.GeocodeMaxAttempts != 3 {
		t.Errorf("upload defaults = %+v", cfg.Upload)
	}
	if cfg.Clearbit.BaseURL != "https://logo.clearbit.com" {
		t.Errorf("clearbit = %q", cfg.Clearbit.BaseURL)
	}
	if cfg.Niceboard.APIKey != "secret" {
		t.Errorf("api key = %q", cfg.Niceboard.APIKey)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "NICEBOARD_API_KEY") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadRejectsInvalidNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("NICEBOARD_API_KEY", "secret")
	t.Setenv("UPLOAD_BATCH_SIZE", "ten")
	t.Setenv("GEOCODE_MAX_ATTEMPTS", "0")
	t.Setenv("PORT", "http")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, name := range []string{"UPLOAD_BATCH_SIZE", "GEOCODE_MAX_ATTEMPTS", "PORT"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not mention %s", err, name)
		}
	}
}

func TestLoadFileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "niceboard.yaml")
	data := `
log_level: debug
niceboard:
  api_key: from-file
  base_url: https://board.test/api/v1/
upload:
  batch_size: 25
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NICEBOARD_CONFIG", path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Niceboard.APIKey != "from-file" || cfg.Niceboard.BaseURL != "https://board.test/api/v1/" {
		t.Errorf("niceboard = %+v", cfg.Niceboard)
	}
	if cfg.Upload.BatchSize != 25 {
		t.Errorf("batch size = %d", cfg.Upload.BatchSize)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("log level = %q, env should win", cfg.LogLevel)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("NICEBOARD_API_KEY", "secret")
	t.Setenv("NICEBOARD_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
