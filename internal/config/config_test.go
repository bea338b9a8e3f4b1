package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ALPACA_API_KEY", "ALPACA_API_SECRET", "ALPACA_BASE_URL", "ALPACA_DATA_URL",
		"API_KEY_ID", "API_SECRET_KEY", "APCA_API_KEY_ID", "APCA_API_SECRET_KEY",
		"PAPER", "LOG_LEVEL", "SQLITE_PATH",
	} {
		os.Unsetenv(k)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	yamlContent := []byte(`
server:
  host: "127.0.0.1"
  port: 8091
  grpc_port: 9091
alpaca:
  api_key: "test-key"
  api_secret: "test-secret"
  paper: true
  base_url: "https://paper-api.alpaca.markets"
logging:
  level: "debug"
  format: "text"
journal:
  sqlite_path: "/tmp/calls.db"
`)

	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, yamlContent, 0o644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 8091 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8091)
	}
	if cfg.Server.GRPCPort != 9091 {
		t.Errorf("Server.GRPCPort = %d, want %d", cfg.Server.GRPCPort, 9091)
	}
	if cfg.Alpaca.APIKey != "test-key" {
		t.Errorf("Alpaca.APIKey = %q, want %q", cfg.Alpaca.APIKey, "test-key")
	}
	if cfg.Alpaca.APISecret != "test-secret" {
		t.Errorf("Alpaca.APISecret = %q, want %q", cfg.Alpaca.APISecret, "test-secret")
	}
	if !cfg.Alpaca.Paper {
		t.Error("Alpaca.Paper = false, want true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "text")
	}
	if cfg.Journal.SQLitePath != "/tmp/calls.db" {
		t.Errorf("Journal.SQLitePath = %q, want %q", cfg.Journal.SQLitePath, "/tmp/calls.db")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load() on missing file returned error: %v", err)
	}

	if cfg.Server.Port != 8090 {
		t.Errorf("Server.Port = %d, want default %d", cfg.Server.Port, 8090)
	}
	if !cfg.Alpaca.Paper {
		t.Error("Alpaca.Paper = false, want default true")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default %q", cfg.Logging.Level, "info")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)

	yamlContent := []byte(`
alpaca:
  api_key: "yaml-key"
  api_secret: "yaml-secret"
  paper: true
`)

	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, yamlContent, 0o644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}

	t.Setenv("ALPACA_API_KEY", "env-key")
	t.Setenv("PAPER", "false")
	t.Setenv("SQLITE_PATH", "/env/calls.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Alpaca.APIKey != "env-key" {
		t.Errorf("Alpaca.APIKey = %q, want %q (env override)", cfg.Alpaca.APIKey, "env-key")
	}
	// api_secret should remain from YAML since no env override was set.
	if cfg.Alpaca.APISecret != "yaml-secret" {
		t.Errorf("Alpaca.APISecret = %q, want %q (from YAML)", cfg.Alpaca.APISecret, "yaml-secret")
	}
	if cfg.Alpaca.Paper {
		t.Error("Alpaca.Paper = true, want false (env override)")
	}
	if cfg.Journal.SQLitePath != "/env/calls.db" {
		t.Errorf("Journal.SQLitePath = %q, want %q (env override)", cfg.Journal.SQLitePath, "/env/calls.db")
	}
}

func TestCanonicalEnvWinsOverAlias(t *testing.T) {
	clearEnv(t)

	t.Setenv("ALPACA_API_KEY", "alias-key")
	t.Setenv("APCA_API_KEY_ID", "canonical-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Alpaca.APIKey != "canonical-key" {
		t.Errorf("Alpaca.APIKey = %q, want %q", cfg.Alpaca.APIKey, "canonical-key")
	}
}
