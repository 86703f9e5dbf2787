package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StorageMemory = "memory"
	StorageBadger = "badger"

	DefaultPendingExpiry    = 30 * time.Minute
	DefaultPendingKeyPrefix = "pendingSquares_"
)

type Config struct {
	Engine EngineConfig `yaml:"engine"`
}

type EngineConfig struct {
	LogLevel      string        `yaml:"log_level"`
	DefaultLeague string        `yaml:"default_league"`
	Storage       StorageConfig `yaml:"storage"`
	NATS          NATSConfig    `yaml:"nats"`
	Pending       PendingConfig `yaml:"pending"`
}

type StorageConfig struct {
	Type      string `yaml:"type"`      // memory | badger
	Directory string `yaml:"directory"` // for badger
}

type NATSConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

type PendingConfig struct {
	Expiry    time.Duration `yaml:"expiry"`
	KeyPrefix string        `yaml:"key_prefix"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	e := &c.Engine
	if e.LogLevel == "" {
		e.LogLevel = "info"
	}
	if e.Storage.Type == "" {
		e.Storage.Type = StorageBadger
	}
	if e.Storage.Type == StorageBadger && e.Storage.Directory == "" {
		e.Storage.Directory = "data/badger"
	}
	if e.NATS.URL == "" {
		e.NATS.URL = "nats://127.0.0.1:4222"
	}
	if e.NATS.SubjectPrefix == "" {
		e.NATS.SubjectPrefix = "squares"
	}
	if e.Pending.Expiry == 0 {
		e.Pending.Expiry = DefaultPendingExpiry
	}
	if e.Pending.KeyPrefix == "" {
		e.Pending.KeyPrefix = DefaultPendingKeyPrefix
	}
}

func (c *Config) Validate() error {
	switch c.Engine.Storage.Type {
	case StorageMemory, StorageBadger:
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Engine.Storage.Type)
	}
	if c.Engine.Pending.Expiry < 0 {
		return fmt.Errorf("pending expiry must not be negative: %s", c.Engine.Pending.Expiry)
	}
	return nil
}
