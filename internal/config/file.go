// Package config holds the tool constants and the .mangle.yml project
// file: reserved names and cache settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level .mangle.yml configuration.
type Config struct {
	// Reserved lists names that are never renamed and never produced
	// as replacement identifiers (page globals, names reached by eval,
	// public API symbols).
	Reserved []string `yaml:"reserved,omitempty"`

	// Cache controls the on-disk output cache.
	Cache CacheConfig `yaml:"cache,omitempty"`
}

// CacheConfig controls the SQLite-backed output cache.
type CacheConfig struct {
	// Enabled turns the cache on. The -cache flag overrides it.
	Enabled bool `yaml:"enabled,omitempty"`

	// Dir is the cache directory, relative to the config file.
	// Defaults to .mangle-cache.
	Dir string `yaml:"dir,omitempty"`
}

// Default returns the configuration used when no .mangle.yml exists.
func Default() *Config {
	return &Config{}
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	for _, name := range cfg.Reserved {
		if name == "" {
			return nil, fmt.Errorf("%s: reserved entries must be non-empty", path)
		}
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = DefaultCacheDir
	}
	return &cfg, nil
}

// Discover walks up from startDir looking for a .mangle.yml. Returns
// the default configuration when none is found.
func Discover(startDir string) (*Config, string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, "", err
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			cfg, err := Load(candidate)
			if err != nil {
				return nil, "", err
			}
			return cfg, candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), "", nil
		}
		dir = parent
	}
}
