package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Config is the host configuration loaded at process start-up.
type Config struct {
	Logging LoggingConfig `json:"logging"`
	Plugin  PluginConfig  `json:"plugin"`
}

// LoggingConfig selects the level, format, and outputs of the structured
// logger.
type LoggingConfig struct {
	Level   string      `json:"level"`
	Format  string      `json:"format"`
	Outputs []string    `json:"outputs"`
	Audit   AuditConfig `json:"audit"`
}

// AuditConfig enables the rotating invocation audit trail.
type AuditConfig struct {
	Enabled    bool   `json:"enabled"`
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

// PluginConfig selects which built-in plugin the command dispatcher drives
// and how its response timestamps are produced.
type PluginConfig struct {
	Default        string `json:"default"`
	Timestamp      string `json:"timestamp"`
	UseSystemClock bool   `json:"use_system_clock"`
}

// Default returns the configuration used when no file is supplied. The
// dispatcher must work with zero configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Plugin:  PluginConfig{Default: "test-plugin"},
	}
}

// Load parses the JSON configuration file at path. An empty path returns the
// defaults. Fields left out of the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := json.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if cfg.Plugin.Default == "" {
		cfg.Plugin.Default = "test-plugin"
	}
	return cfg, nil
}
