// Package config loads the run configuration for the puzzle book pipeline
// from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"puzzlebook/internal/errors"
	"puzzlebook/internal/filter"
)

// Default file locations, matching the conventional data layout.
const (
	DefaultDataset = "data/lichess_db_puzzle.csv.zst"
	DefaultOutput  = "output.txt"
)

// Config holds all recognized options. MinRating and MaxRating are pointers
// so an absent key means "no bound" rather than zero.
type Config struct {
	MinRating *int   `yaml:"min_rating"`
	MaxRating *int   `yaml:"max_rating"`
	Themes    string `yaml:"themes"`
	AllThemes bool   `yaml:"all_themes"`
	N         int    `yaml:"n"`
	Dataset   string `yaml:"dataset"`
	Output    string `yaml:"output"`
	Export    string `yaml:"export"` // optional parquet export path
}

// Load reads and validates the YAML configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		// Conjunction is the default theme combination mode.
		AllThemes: true,
		Dataset:   DefaultDataset,
		Output:    DefaultOutput,
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot honor. The result cap
// n is required and must be positive; a missing cap is a defect to surface,
// never "no limit".
func (c *Config) Validate() error {
	if c.N <= 0 {
		return fmt.Errorf("%w: n must be a positive integer, got %d", errors.ErrInvalidConfig, c.N)
	}
	if c.MinRating != nil && c.MaxRating != nil && *c.MinRating > *c.MaxRating {
		return fmt.Errorf("%w: min_rating %d exceeds max_rating %d",
			errors.ErrInvalidConfig, *c.MinRating, *c.MaxRating)
	}
	if c.Dataset == "" {
		return fmt.Errorf("%w: dataset path must not be empty", errors.ErrInvalidConfig)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output path must not be empty", errors.ErrInvalidConfig)
	}
	return nil
}

// Criteria maps the configuration onto one filtering pass.
func (c *Config) Criteria() filter.Criteria {
	return filter.Criteria{
		MinRating: c.MinRating,
		MaxRating: c.MaxRating,
		Themes:    c.Themes,
		AllThemes: c.AllThemes,
		Limit:     c.N,
	}
}
