// Package config loads the service configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings for the document service and CLI.
type Config struct {
	Server    ServerConfig `yaml:"server"`
	Documents Documents    `yaml:"documents"`
	LogLevel  string       `yaml:"log_level"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Documents controls which files are loaded at startup.
type Documents struct {
	// Paths lists DICOM files or DICOMDIR files to load.
	Paths []string `yaml:"paths"`
	// LoadReferenced controls whether DICOMDIR loads follow the
	// referenced files.
	LoadReferenced *bool `yaml:"load_referenced"`
}

// Default returns the built-in configuration.
func Default() *Config {
	loadReferenced := true
	return &Config{
		Server:   ServerConfig{Addr: ":8080"},
		LogLevel: "info",
		Documents: Documents{
			LoadReferenced: &loadReferenced,
		},
	}
}

// Load reads and validates a YAML configuration file. Settings absent
// from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	return nil
}

// ShouldLoadReferenced reports whether DICOMDIR loads follow
// referenced files.
func (c *Config) ShouldLoadReferenced() bool {
	if c.Documents.LoadReferenced == nil {
		return true
	}
	return *c.Documents.LoadReferenced
}
