// Package config holds the tool configuration, loaded from an optional YAML
// file with CLI flags layered on top.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	Generation struct {
		Count       int   `yaml:"count"`        // samples to generate
		MaxLength   int   `yaml:"max_length"`   // plaintext truncation length
		BatchSize   int   `yaml:"batch_size"`   // rows per append
		MaxAttempts int   `yaml:"max_attempts"` // 0 = retry until quota reached
		Seed        int64 `yaml:"seed"`         // 0 = time-seeded
	} `yaml:"generation"`

	Oracle struct {
		Binary         string `yaml:"binary"` // empty = resolve next to the executable
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"oracle"`

	Output struct {
		Path string `yaml:"path"`
	} `yaml:"output"`

	Store struct {
		DSN string `yaml:"dsn"` // SQLite path or PostgreSQL URL; empty disables
	} `yaml:"store"`

	Server struct {
		Addr string `yaml:"addr"` // status server address; empty disables
	} `yaml:"server"`
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

// LoadConfig loads configuration from a YAML file and fills defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	applyDefaults(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.Generation.Count == 0 {
		config.Generation.Count = 10000
	}
	if config.Generation.MaxLength == 0 {
		config.Generation.MaxLength = 50
	}
	if config.Generation.BatchSize == 0 {
		config.Generation.BatchSize = 1000
	}
	if config.Oracle.TimeoutSeconds == 0 {
		config.Oracle.TimeoutSeconds = 10
	}
	if config.Output.Path == "" {
		config.Output.Path = "data/enigma_dataset.csv"
	}

	// Expand environment variables in paths
	config.Oracle.Binary = os.ExpandEnv(config.Oracle.Binary)
	config.Output.Path = os.ExpandEnv(config.Output.Path)
	config.Store.DSN = os.ExpandEnv(config.Store.DSN)
}
