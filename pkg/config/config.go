// Package config provides configuration loading and management for
// microstack. Import defaults are read from a YAML file and can be
// overridden per invocation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"microstack/internal/models"
	"microstack/pkg/stack"
)

// SkipRowsAuto selects the bounded header-probing heuristic for text
// files (skip counts 0..3 tried in order).
const SkipRowsAuto = -1

// Config represents the application configuration loaded from YAML.
type Config struct {
	// File discovery and ordering parameters
	Import struct {
		// FnamePattern is a glob matched against each input folder.
		FnamePattern string `yaml:"fnamePattern"`

		// FnameExtension selects files by suffix when no pattern is set.
		FnameExtension string `yaml:"fnameExtension"`

		// Sort orders files by the name token, compared as strings.
		Sort bool `yaml:"sort"`

		// ImgnamePosition is the filename token index used for sorting
		// and naming. Negative values count from the end.
		ImgnamePosition int `yaml:"imgnamePosition"`

		// StemNames uses full filename stems as display names instead
		// of the token at ImgnamePosition.
		StemNames bool `yaml:"stemNames"`

		// InvertOrder reverses the order after sorting.
		InvertOrder bool `yaml:"invertOrder"`

		// DType is the numeric precision, "float32" or "float64".
		DType string `yaml:"dtype"`

		// SkipRows is the exact text header-row count, or SkipRowsAuto
		// for the bounded probe.
		SkipRows int `yaml:"skipRows"`

		// Delimiter overrides whitespace field splitting in text files.
		Delimiter string `yaml:"delimiter"`

		// Workers bounds parallel file decoding; values below 2 decode
		// sequentially.
		Workers int `yaml:"workers"`
	} `yaml:"import"`

	// Physical metadata stamped onto every imported slice
	Meta struct {
		// PixelLength is the physical size of one pixel in Unit.
		PixelLength float64 `yaml:"pixelLength"`

		// Unit of PixelLength, default micrometers.
		Unit string `yaml:"unit"`
	} `yaml:"meta"`

	// Volume view parameters
	Volume struct {
		// ZDist is the physical distance between consecutive slices.
		ZDist float64 `yaml:"zDist"`

		// FillZ replicates slices along z until voxels are roughly cubic.
		FillZ bool `yaml:"fillZ"`
	} `yaml:"volume"`

	// Output parameters
	Output struct {
		// Verbose controls the level of logging output.
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values matching the
// microscope export conventions.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Import.Sort = true
	cfg.Import.ImgnamePosition = 0
	cfg.Import.InvertOrder = true
	cfg.Import.DType = string(models.Float64)
	cfg.Import.SkipRows = SkipRowsAuto
	cfg.Import.Workers = runtime.NumCPU()

	cfg.Meta.Unit = models.DefaultUnit

	cfg.Volume.ZDist = 1.0

	cfg.Output.Verbose = true

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

// ImportOptions translates the configuration into assembler options.
func (c *Config) ImportOptions() (stack.ImportOptions, error) {
	dtype, err := models.ParseDType(c.Import.DType)
	if err != nil {
		return stack.ImportOptions{}, err
	}

	opts := stack.ImportOptions{
		Pattern:     c.Import.FnamePattern,
		Extension:   c.Import.FnameExtension,
		Sort:        c.Import.Sort,
		InvertOrder: c.Import.InvertOrder,
		DType:       dtype,
		Delimiter:   c.Import.Delimiter,
		PixelLength: c.Meta.PixelLength,
		Unit:        c.Meta.Unit,
		Workers:     c.Import.Workers,
		Verbose:     c.Output.Verbose,
	}
	if !c.Import.StemNames {
		pos := c.Import.ImgnamePosition
		opts.NamePosition = &pos
	}
	if c.Import.SkipRows != SkipRowsAuto {
		if c.Import.SkipRows < 0 {
			return stack.ImportOptions{}, &models.ConfigError{
				Key:    "skipRows",
				Reason: fmt.Sprintf("must be non-negative or %d for auto", SkipRowsAuto),
			}
		}
		skip := c.Import.SkipRows
		opts.SkipRows = &skip
	}
	return opts, nil
}
