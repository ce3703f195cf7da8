// Package config loads and validates the pipeline configuration.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds every knob the analysis pipeline recognises.
type Config struct {
	// InputCSV is the raw corpus: one row per email, with a "message" column.
	InputCSV string `yaml:"input_csv" validate:"required"`
	// CleanedCSV caches the parsed From/To pair list. A ".sz" suffix enables
	// snappy compression.
	CleanedCSV string `yaml:"cleaned_csv" validate:"required"`
	// OutputSVG is where the visual summary is written.
	OutputSVG string `yaml:"output_svg" validate:"required"`

	// KVisualize bounds the community core size.
	KVisualize int `yaml:"k_visualize" validate:"gte=0"`
	// KLabel bounds how many core members receive visible labels.
	KLabel int `yaml:"k_label" validate:"gte=0,ltefield=KVisualize"`

	LayoutSeed       int64   `yaml:"layout_seed"`
	LayoutIterations int     `yaml:"layout_iterations" validate:"gte=1"`
	CanvasSize       float64 `yaml:"canvas_size" validate:"gt=0"`

	// MetricsAddr, when set, exposes Prometheus metrics during the run.
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the configuration the pipeline uses when no file is given.
func Default() *Config {
	return &Config{
		InputCSV:         "data/emails.csv",
		CleanedCSV:       "mailgraph_edges.csv",
		OutputSVG:        "mailgraph_core.svg",
		KVisualize:       150,
		KLabel:           15,
		LayoutSeed:       42,
		LayoutIterations: 50,
		CanvasSize:       2000,
		LogLevel:         "info",
	}
}

// Load reads a YAML config file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct-tag constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}
