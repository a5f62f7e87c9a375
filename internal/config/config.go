// Package config provides configuration management for mirrorstore.
//
// Config file locations (priority order):
//  1. $MIRRORSTORE_CONFIG
//  2. ./mirrorstore.yaml
//  3. $XDG_CONFIG_HOME/mirrorstore/config.yaml
//  4. ~/.config/mirrorstore/config.yaml
//  5. /etc/mirrorstore/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	envConfigPath  = "MIRRORSTORE_CONFIG"
	configFileName = "mirrorstore.yaml"
	configDirName  = "mirrorstore"
)

// Config is the application configuration.
type Config struct {
	Version  int            `yaml:"version"`
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Seed     SeedConfig     `yaml:"seed"`
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig configures the SQLite store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SeedConfig configures the optional seed catalog import.
type SeedConfig struct {
	// Path to the YAML seed catalog; empty disables seeding.
	Path string `yaml:"path,omitempty"`
	// Watch reimports and resyncs when the seed file changes on disk.
	Watch bool `yaml:"watch,omitempty"`
}

// Load finds and loads the config file, or returns defaults if none found.
func Load() (*Config, string, error) {
	path := findConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// findConfigPath walks the lookup ladder and returns the first config file
// that exists, or empty if none does.
func findConfigPath() string {
	if path := os.Getenv(envConfigPath); path != "" && fileExists(path) {
		return path
	}

	if fileExists(configFileName) {
		if abs, err := filepath.Abs(configFileName); err == nil {
			return abs
		}
		return configFileName
	}

	var candidates []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidates = append(candidates, filepath.Join(xdg, configDirName, "config.yaml"))
	}
	if home := os.Getenv("HOME"); home != "" {
		candidates = append(candidates, filepath.Join(home, ".config", configDirName, "config.yaml"))
	}
	candidates = append(candidates, filepath.Join("/etc", configDirName, "config.yaml"))

	for _, path := range candidates {
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadFromPath loads config from a specific path.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// Save writes config to the given path, creating its directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation.
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		HTTP:     HTTPConfig{Addr: ":3000"},
		Database: DatabaseConfig{Path: "./mirrorstore.db"},
		Seed:     SeedConfig{},
	}
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":3000"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./mirrorstore.db"
	}
}
