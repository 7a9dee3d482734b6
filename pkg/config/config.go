// Package config handles render configuration for rfireport.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds figure render settings (config.yaml).
type Config struct {
	// Figure pixel dimensions. One image cell maps to one data sample;
	// these control the displayed size only.
	FigureWidth  int `yaml:"figureWidth"`
	FigureHeight int `yaml:"figureHeight"`

	// Number of tick labels on the colorbar, endpoints included.
	ColorbarTicks int `yaml:"colorbarTicks"`
}

// Default returns the built-in render settings.
func Default() *Config {
	return &Config{
		FigureWidth:   1000,
		FigureHeight:  500,
		ColorbarTicks: 6,
	}
}

// Load loads configuration from a file. Settings not present in the file
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.FigureWidth <= 0 || c.FigureHeight <= 0 {
		return fmt.Errorf("figure dimensions must be positive, got %dx%d", c.FigureWidth, c.FigureHeight)
	}
	if c.ColorbarTicks < 2 {
		return fmt.Errorf("colorbarTicks must be at least 2, got %d", c.ColorbarTicks)
	}
	return nil
}
