package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load("")

	if cfg.Fetch.RetryAttempts != 3 {
		t.Fatalf("unexpected retry attempts: %d", cfg.Fetch.RetryAttempts)
	}
	if cfg.Extract.MinLength != 50 {
		t.Fatalf("unexpected min length: %d", cfg.Extract.MinLength)
	}
	if !cfg.Hub.PublishPartial() {
		t.Fatal("partial publish should default to allowed")
	}
	if len(cfg.Archives) != 1 {
		t.Fatalf("expected 1 default archive, got %d", len(cfg.Archives))
	}
	if cfg.Archives[0].NextLabel != "Volgende" {
		t.Fatalf("unexpected next label: %s", cfg.Archives[0].NextLabel)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
logging:
  level: debug
fetch:
  retryAttempts: 5
hub:
  partialPolicy: never
archives:
  - name: verbatim-reports
    startUrl: https://www.europarl.europa.eu/doceo/document/CRE-9-2024-04-22-TOC_NL.html
    nextLabel: Volgende
    language: NL
    hubRepo: Dutch-Verbatim-Reports
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Load(path)

	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected log level: %s", cfg.Logging.Level)
	}
	if cfg.Fetch.RetryAttempts != 5 {
		t.Fatalf("unexpected retry attempts: %d", cfg.Fetch.RetryAttempts)
	}
	// Untouched fields keep their defaults.
	if cfg.Fetch.TimeoutSeconds != 20 {
		t.Fatalf("unexpected timeout: %d", cfg.Fetch.TimeoutSeconds)
	}
	if cfg.Hub.PublishPartial() {
		t.Fatal("partial publish should be disabled")
	}
	if len(cfg.Archives) != 1 || cfg.Archives[0].Name != "verbatim-reports" {
		t.Fatalf("archives not overridden: %+v", cfg.Archives)
	}
}

func TestLoadEnvOverridesWinForCredentials(t *testing.T) {
	t.Setenv("HF_TOKEN", "env-token")
	t.Setenv("HF_USERNAME", "env-user")

	cfg := Load("")

	if cfg.Hub.Token != "env-token" {
		t.Fatalf("token override missing: %q", cfg.Hub.Token)
	}
	if cfg.Hub.Username != "env-user" {
		t.Fatalf("username override missing: %q", cfg.Hub.Username)
	}
}

func TestTokenNeverComesFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
hub:
  token: leaked-token
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Load(path)

	if cfg.Hub.Token == "leaked-token" {
		t.Fatal("token must not be readable from the config file")
	}
}
