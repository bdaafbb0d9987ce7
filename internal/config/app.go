package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store drivers understood by the CLI and server
const (
	StoreSQLite = "sqlite"
	StoreYAML   = "yaml"
	StoreMemory = "memory"
)

// AppConfig holds process settings for the CLI, server and TUI
type AppConfig struct {
	CompanyName string       `yaml:"company_name"`
	RulesFile   string       `yaml:"rules_file"`
	Store       StoreConfig  `yaml:"store"`
	Server      ServerConfig `yaml:"server"`
}

// StoreConfig selects where employees and YTD snapshots live
type StoreConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DefaultAppConfig returns settings used when no config file exists
func DefaultAppConfig() AppConfig {
	return AppConfig{
		CompanyName: "SugaWax Zone",
		Store: StoreConfig{
			Driver: StoreSQLite,
			Path:   "paygo.db",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		},
	}
}

// LoadAppConfig reads settings from path on top of the defaults. A missing
// file is not an error when optional is true.
func LoadAppConfig(path string, optional bool) (AppConfig, error) {
	cfg := DefaultAppConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the store driver and required paths
func (c AppConfig) Validate() error {
	switch strings.ToLower(c.Store.Driver) {
	case StoreSQLite, StoreYAML:
		if c.Store.Path == "" {
			return fmt.Errorf("store path is required for driver %q", c.Store.Driver)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server address is required")
	}
	return nil
}

// LoadRulesProvider returns a provider for RulesFile, or the built-in rules when unset
func (c AppConfig) LoadRulesProvider() (*StaticRulesProvider, error) {
	if c.RulesFile == "" {
		return DefaultRulesProvider()
	}
	rf, err := NewRulesParser().LoadFromFile(c.RulesFile)
	if err != nil {
		return nil, err
	}
	return NewStaticRulesProvider(rf), nil
}
