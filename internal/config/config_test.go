package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 8080
database:
  path: "/tmp/gigofit-test.db"
auth:
  api_key: "test-key-123"
tailscale:
  enabled: false
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/gigofit-test.db" {
		t.Errorf("database.path = %q, want %q", cfg.Database.Path, "/tmp/gigofit-test.db")
	}
	if cfg.Auth.APIKey != "test-key-123" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "test-key-123")
	}
	if cfg.Tailscale.Hostname != "gigofit" {
		t.Errorf("tailscale.hostname default = %q, want %q", cfg.Tailscale.Hostname, "gigofit")
	}
}

// TestEnvOverride verifies that GIGOFIT_ env vars take precedence over YAML values.
func TestEnvOverride(t *testing.T) {
	t.Setenv("GIGOFIT_SERVER_PORT", "9090")
	t.Setenv("GIGOFIT_DB_PATH", "/tmp/other.db")
	t.Setenv("GIGOFIT_AUTH_API_KEY", "env-key")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/other.db" {
		t.Errorf("database.path = %q, want %q", cfg.Database.Path, "/tmp/other.db")
	}
	if cfg.Auth.APIKey != "env-key" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "env-key")
	}
}

// TestEnvOverrideBadPort verifies a non-numeric port override is ignored.
func TestEnvOverrideBadPort(t *testing.T) {
	t.Setenv("GIGOFIT_SERVER_PORT", "not-a-number")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 from file", cfg.Server.Port)
	}
}

// TestDatabasePathDefault verifies the home-directory fallback when no path
// is configured.
func TestDatabasePathDefault(t *testing.T) {
	cfg, err := Load(writeTemp(t, `
server:
  port: 8080
auth:
  api_key: "k"
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Path != DefaultDatabasePath() {
		t.Errorf("database.path = %q, want default %q", cfg.Database.Path, DefaultDatabasePath())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing port", "auth:\n  api_key: \"k\"\n"},
		{"missing api key", "server:\n  port: 8080\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeTemp(t, tt.yaml)); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
