// Package config loads foundry configuration from an optional YAML file,
// merging it over built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where LoadConfig looks when no path is given.
const DefaultConfigPath = ".foundry/config.yaml"

// Config represents foundry configuration options
type Config struct {
	// DBPath is the path to the session database
	DBPath string `yaml:"db_path"`

	// LogLevel sets logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// ExportDir is where recommendation documents are written
	ExportDir string `yaml:"export_dir"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		DBPath:    filepath.Join(".foundry", "sessions.db"),
		LogLevel:  "info",
		ExportDir: filepath.Join(".foundry", "exports"),
	}
}

// LoadConfig loads configuration from the specified file path.
// A missing file is not an error; defaults are returned. A malformed file
// is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultConfigPath
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	// Apply non-empty values from the file over the defaults.
	if fileCfg.DBPath != "" {
		cfg.DBPath = fileCfg.DBPath
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.ExportDir != "" {
		cfg.ExportDir = fileCfg.ExportDir
	}

	return cfg, nil
}
