// Package config provides configuration loading for medview.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML.
type Config struct {
	// Viewer parameters
	Viewer struct {
		// TotalSlices is the number of slices in a mock volumetric stack
		TotalSlices int `yaml:"totalSlices"`

		// SliceSize is the pixel edge length of procedurally rendered slices
		SliceSize int `yaml:"sliceSize"`

		// PlaybackSpeed is the default cine playback speed multiplier
		PlaybackSpeed float64 `yaml:"playbackSpeed"`
	} `yaml:"viewer"`

	// Assistant parameters
	Assistant struct {
		// LLMEndpoint is the base URL of an optional local inference service
		LLMEndpoint string `yaml:"llmEndpoint"`

		// ProbeTimeoutSeconds bounds the reachability probe before falling
		// back to the embedded rule-based responder
		ProbeTimeoutSeconds float64 `yaml:"probeTimeoutSeconds"`

		// ListenAddr, when non-empty, exposes POST /api/chat on this address
		ListenAddr string `yaml:"listenAddr"`

		// Model names the model requested from the local inference service
		Model string `yaml:"model"`
	} `yaml:"assistant"`

	// API parameters for the external study/report backend
	API struct {
		// BaseURL of the upload/report service
		BaseURL string `yaml:"baseURL"`
	} `yaml:"api"`

	// Export parameters
	Export struct {
		// Dir is the directory snapshots are written to; empty means the
		// user's home directory
		Dir string `yaml:"dir"`
	} `yaml:"export"`

	// Output parameters
	Output struct {
		// Verbose enables debug-level logging
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Viewer.TotalSlices = 120
	cfg.Viewer.SliceSize = 512
	cfg.Viewer.PlaybackSpeed = 1.0

	cfg.Assistant.LLMEndpoint = "http://localhost:11434"
	cfg.Assistant.ProbeTimeoutSeconds = 2.0
	cfg.Assistant.ListenAddr = ""
	cfg.Assistant.Model = "llama3.2"

	cfg.API.BaseURL = "http://localhost:8000"

	cfg.Export.Dir = ""
	cfg.Output.Verbose = false

	return cfg
}

// LoadConfig loads configuration from a YAML file. If the file doesn't
// exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Viewer.TotalSlices < 1 {
		cfg.Viewer.TotalSlices = 1
	}
	if cfg.Viewer.SliceSize < 64 {
		cfg.Viewer.SliceSize = 64
	}
	if cfg.Viewer.PlaybackSpeed <= 0 {
		cfg.Viewer.PlaybackSpeed = 1.0
	}
	if cfg.Assistant.ProbeTimeoutSeconds <= 0 {
		cfg.Assistant.ProbeTimeoutSeconds = 2.0
	}

	return cfg, nil
}
