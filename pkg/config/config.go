// Package config provides configuration loading and management for
// watershed3d. It handles loading configuration from YAML files and provides
// default values for the segmentation parameters.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML.
type Config struct {
	// Segmentation parameters passed to the watershed pipeline.
	Segmentation struct {
		// SeedVal is the boundary-probability threshold below which voxels
		// become seed candidates.
		SeedVal float64 `yaml:"seedVal"`

		// SeedSize is the minimum seed component size in voxels; smaller
		// seed components are discarded. Zero disables the filter.
		SeedSize int `yaml:"seedSize"`

		// BorderSize is the margin stripped from every face before
		// watershed and left unlabeled in the output.
		BorderSize int `yaml:"borderSize"`
	} `yaml:"segmentation"`

	// Output parameters.
	Output struct {
		// Verbose enables debug-level logging.
		Verbose bool `yaml:"verbose"`

		// SessionDir, when non-empty, is the base directory under which a
		// per-run session directory is created to hold the effective
		// options and the run diagnostics.
		SessionDir string `yaml:"sessionDir"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Segmentation.SeedVal = 0.0
	cfg.Segmentation.SeedSize = 5
	cfg.Segmentation.BorderSize = 0

	cfg.Output.Verbose = false
	cfg.Output.SessionDir = ""

	return cfg
}

// LoadConfig loads configuration from a YAML file. If the file doesn't
// exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the
// specified path.
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}
