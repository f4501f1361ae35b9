// Package config loads the sightline YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Raster RasterConfig `yaml:"raster"`
	Query  QueryConfig  `yaml:"query"`
	Batch  BatchConfig  `yaml:"batch"`
	Store  StoreConfig  `yaml:"store"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // DEBUG, INFO, WARN, ERROR
	Path  string `yaml:"path"`  // optional log file, stdout only when empty
}

// RasterConfig points at the surface model.
type RasterConfig struct {
	// Path is the YAML sidecar describing the raster grid.
	Path string `yaml:"path"`
	// Fill is the elevation substituted for no-data samples. A large value
	// counts unknown terrain as obstructed.
	Fill float64 `yaml:"fill"`
}

// QueryConfig holds the geometric query parameters.
type QueryConfig struct {
	// Buffer is the absolute rectangle half-width in raster distance units.
	// When 0, RelativeBuffer scales each segment's own length instead.
	Buffer         float64 `yaml:"buffer"`
	RelativeBuffer float64 `yaml:"relative_buffer"`
	// Rows is the number of grid rows; 1 reduces each query to a transect.
	Rows int `yaml:"rows"`
	// DistPerCol is the segment distance covered by each grid column.
	DistPerCol float64 `yaml:"dist_per_col"`
	// Decimals is the grid coordinate rounding precision.
	Decimals int `yaml:"decimals"`
	// MaxDist skips segments longer than this; 0 disables the filter.
	MaxDist float64 `yaml:"max_dist"`
}

// BatchConfig holds worker pool settings.
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// StoreConfig holds result persistence settings.
type StoreConfig struct {
	DBPath string `yaml:"db_path"`
	// ClearanceDir receives per-segment clearance CSV grids; empty disables.
	ClearanceDir string `yaml:"clearance_dir"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: "INFO",
			Path:  "logs/sightline.log",
		},
		Raster: RasterConfig{
			Fill: 99999,
		},
		Query: QueryConfig{
			RelativeBuffer: 0.001,
			Rows:           1,
			DistPerCol:     5,
			Decimals:       6,
		},
		Batch: BatchConfig{
			Workers: 4,
		},
		Store: StoreConfig{
			DBPath: "data/results.db",
		},
	}
}

// Load loads the configuration from the given path. Missing files are created
// with defaults; existing files are merged over defaults but never written
// back, preserving user formatting. The raster path falls back to the
// SIGHTLINE_RASTER environment variable when the file leaves it empty.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config file: %w", err)
	}

	if cfg.Raster.Path == "" {
		if p := os.Getenv("SIGHTLINE_RASTER"); p != "" {
			cfg.Raster.Path = p
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the query and batch parameters.
func (c *Config) Validate() error {
	if c.Query.Buffer < 0 || c.Query.RelativeBuffer < 0 {
		return fmt.Errorf("buffers must not be negative")
	}
	if c.Query.Buffer == 0 && c.Query.RelativeBuffer == 0 {
		return fmt.Errorf("one of buffer or relative_buffer must be set")
	}
	if c.Query.Rows < 1 {
		return fmt.Errorf("rows must be at least 1, got %d", c.Query.Rows)
	}
	if c.Query.DistPerCol <= 0 {
		return fmt.Errorf("dist_per_col must be positive, got %g", c.Query.DistPerCol)
	}
	if c.Query.MaxDist < 0 {
		return fmt.Errorf("max_dist must not be negative, got %g", c.Query.MaxDist)
	}
	return nil
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Sightline Configuration
# ----------------------
# Coordinates, buffers and elevations share the raster's distance units.

`)
	data = append(header, data...)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateDefault creates a default config file at the given path.
// Returns nil if the file already exists.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return Save(path, DefaultConfig())
}
