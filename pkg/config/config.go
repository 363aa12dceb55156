// Package config provides configuration loading and management for the
// morpho3d command. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the filtering configuration loaded from YAML.
type Config struct {
	// Filter selects the operation and the structuring element.
	Filter struct {
		// Operation is the morphological operation to apply:
		// dilation, erosion, opening, or closing.
		Operation string `yaml:"operation"`

		// Shape is the structuring element shape: cube, box, or
		// line-x / line-y / line-z.
		Shape string `yaml:"shape"`

		// RadiusX, RadiusY and RadiusZ are the element radii per axis,
		// in voxels.
		RadiusX int `yaml:"radiusX"`
		RadiusY int `yaml:"radiusY"`
		RadiusZ int `yaml:"radiusZ"`
	} `yaml:"filter"`

	// Processing tunes how the filter pass runs.
	Processing struct {
		// Workers is the number of goroutines scan lines are distributed
		// over within one axis pass.
		Workers int `yaml:"workers"`

		// Background and Foreground are the padding intensities used
		// outside the volume for dilation and erosion respectively.
		Background float64 `yaml:"background"`
		Foreground float64 `yaml:"foreground"`
	} `yaml:"processing"`

	// Output controls what the command writes besides the filtered slices.
	Output struct {
		// Axis selects the slice axis for saved output (x, y, or z).
		Axis string `yaml:"axis"`

		// ShowElement renders the structuring element as a small slice
		// stack next to the output.
		ShowElement bool `yaml:"showElement"`

		// Verbose enables per-line progress logging.
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values: a symmetric
// 2-voxel-radius cube dilation using every available core.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Filter.Operation = "dilation"
	cfg.Filter.Shape = "cube"
	cfg.Filter.RadiusX = 2
	cfg.Filter.RadiusY = 2
	cfg.Filter.RadiusZ = 2

	cfg.Processing.Workers = runtime.NumCPU()
	cfg.Processing.Background = 0
	cfg.Processing.Foreground = 255

	cfg.Output.Axis = "z"
	cfg.Output.ShowElement = false
	cfg.Output.Verbose = false

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
