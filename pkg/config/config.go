// Package config loads the CRM tool configuration from a YAML or TOML file
// with environment overrides on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/seed"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/storage"
)

// Environment variables that override file values
const (
	EnvStorageDriver = "CRM_STORAGE_DRIVER"
	EnvDataDir       = "CRM_DATA_DIR"
	EnvLogLevel      = "CRM_LOG_LEVEL"
)

// ErrUnsupportedFormat is returned for config files that are neither YAML nor TOML
var ErrUnsupportedFormat = errors.New("unsupported config format")

// LogConfig selects verbosity and format
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	JSON  bool   `yaml:"json" toml:"json"`
}

// IDConfig selects the id strategy ("time" or "uuid")
type IDConfig struct {
	Strategy string `yaml:"strategy" toml:"strategy"`
}

// SeedConfig parameterizes the demo data generator. A zero RandomSeed
// draws a fresh dataset every run.
type SeedConfig struct {
	RandomSeed uint64      `yaml:"random_seed" toml:"random_seed"`
	Counts     seed.Counts `yaml:"counts" toml:"counts"`
}

// MetricsConfig is the listen address of the monitor endpoint
type MetricsConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
}

// Config holds all configuration
type Config struct {
	Log     LogConfig      `yaml:"log" toml:"log"`
	Storage storage.Config `yaml:"storage" toml:"storage"`
	IDs     IDConfig       `yaml:"ids" toml:"ids"`
	Seed    SeedConfig     `yaml:"seed" toml:"seed"`
	Metrics MetricsConfig  `yaml:"metrics" toml:"metrics"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Log:     LogConfig{Level: "info"},
		Storage: storage.DefaultConfig(),
		IDs:     IDConfig{Strategy: "time"},
		Seed:    SeedConfig{Counts: seed.DefaultCounts()},
		Metrics: MetricsConfig{Addr: "127.0.0.1:9090"},
	}
}

// Load reads path over the defaults, choosing the decoder by extension, and
// applies environment overrides. An empty path yields defaults plus
// environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv(os.LookupEnv)
	if err := cfg.Seed.Counts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed counts: %w", err)
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, c); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w %q (use .yaml, .yml or .toml)", ErrUnsupportedFormat, ext)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvStorageDriver); ok && v != "" {
		c.Storage.Driver = v
	}
	if v, ok := lookup(EnvDataDir); ok && v != "" {
		c.Storage.DataDir = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
}
