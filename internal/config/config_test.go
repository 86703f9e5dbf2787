package config

import (
	"os"
	"testing"
	"time"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	tempFile, err := os.CreateTemp("", "config_test.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	t.Cleanup(func() { os.Remove(tempFile.Name()) })

	if _, err := tempFile.WriteString(content); err != nil {
		t.Fatalf("Failed to write config content: %v", err)
	}
	tempFile.Close()
	return tempFile.Name()
}

func TestLoadConfig(t *testing.T) {
	path := writeTemp(t, `
engine:
  log_level: debug
  default_league: nfl
  storage:
    type: badger
    directory: /tmp/squares
  nats:
    enabled: true
    url: "nats://localhost:4222"
    subject_prefix: "test"
  pending:
    expiry: 10m
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Engine.LogLevel != "debug" {
		t.Errorf("Expected log level 'debug', got '%s'", cfg.Engine.LogLevel)
	}
	if cfg.Engine.DefaultLeague != "nfl" {
		t.Errorf("Expected default league 'nfl', got '%s'", cfg.Engine.DefaultLeague)
	}
	if cfg.Engine.Storage.Type != StorageBadger || cfg.Engine.Storage.Directory != "/tmp/squares" {
		t.Errorf("Unexpected storage config: %+v", cfg.Engine.Storage)
	}
	if !cfg.Engine.NATS.Enabled || cfg.Engine.NATS.URL != "nats://localhost:4222" {
		t.Errorf("Unexpected NATS config: %+v", cfg.Engine.NATS)
	}
	if cfg.Engine.NATS.SubjectPrefix != "test" {
		t.Errorf("Expected subject prefix 'test', got '%s'", cfg.Engine.NATS.SubjectPrefix)
	}
	if cfg.Engine.Pending.Expiry != 10*time.Minute {
		t.Errorf("Expected pending expiry 10m, got %v", cfg.Engine.Pending.Expiry)
	}
	if cfg.Engine.Pending.KeyPrefix != DefaultPendingKeyPrefix {
		t.Errorf("Expected default key prefix, got '%s'", cfg.Engine.Pending.KeyPrefix)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeTemp(t, "engine: {}\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Engine.Storage.Type != StorageBadger {
		t.Errorf("Expected badger storage by default, got '%s'", cfg.Engine.Storage.Type)
	}
	if cfg.Engine.Storage.Directory != "data/badger" {
		t.Errorf("Expected default badger directory, got '%s'", cfg.Engine.Storage.Directory)
	}
	if cfg.Engine.Pending.Expiry != DefaultPendingExpiry {
		t.Errorf("Expected pending expiry 30m, got %v", cfg.Engine.Pending.Expiry)
	}
	if cfg.Engine.NATS.Enabled {
		t.Error("NATS should be disabled unless configured")
	}
	if cfg.Engine.NATS.SubjectPrefix != "squares" {
		t.Errorf("Expected subject prefix 'squares', got '%s'", cfg.Engine.NATS.SubjectPrefix)
	}
}

func TestLoadConfig_BadgerDirectoryDefault(t *testing.T) {
	path := writeTemp(t, "engine:\n  storage:\n    type: badger\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Engine.Storage.Directory != "data/badger" {
		t.Errorf("Expected default badger directory, got '%s'", cfg.Engine.Storage.Directory)
	}
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	_, err := Load("/non/existent/config.yaml")
	if err == nil {
		t.Error("Expected error when loading non-existent config file")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeTemp(t, `
engine:
  pending:
    expiry: "not-a-duration"
`)
	if _, err := Load(path); err == nil {
		t.Error("Expected error when loading invalid config")
	}
}

func TestLoadConfig_UnsupportedStorage(t *testing.T) {
	path := writeTemp(t, "engine:\n  storage:\n    type: consul\n")
	if _, err := Load(path); err == nil {
		t.Error("Expected error for unsupported storage type")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should be valid: %v", err)
	}
	if cfg.Engine.Pending.Expiry != DefaultPendingExpiry {
		t.Errorf("Expected pending expiry 30m, got %v", cfg.Engine.Pending.Expiry)
	}
	if cfg.Engine.Storage.Type != StorageBadger {
		t.Errorf("Pending selections must survive the process by default, got storage '%s'", cfg.Engine.Storage.Type)
	}
}

func TestLoadConfig_ExplicitMemory(t *testing.T) {
	path := writeTemp(t, "engine:\n  storage:\n    type: memory\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Engine.Storage.Type != StorageMemory || cfg.Engine.Storage.Directory != "" {
		t.Errorf("Unexpected storage config: %+v", cfg.Engine.Storage)
	}
}
