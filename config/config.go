// Package config provides loading and parsing of the optional hostmedic
// configuration file. The file tunes sweep behavior (timeouts, concurrency,
// thresholds); every field has a default that reproduces the standard
// classification bounds, so running without a file is the common case.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents a hostmedic.yaml configuration file.
type Config struct {
	// CheckTimeout bounds each individual check, e.g. "10s".
	CheckTimeout string `yaml:"check_timeout,omitempty"`

	// Concurrency is the number of checks run in parallel.
	Concurrency int `yaml:"concurrency,omitempty"`

	// Thresholds tunes the classification bounds.
	Thresholds Thresholds `yaml:"thresholds,omitempty"`
}

// Thresholds holds the tunable classification bounds.
type Thresholds struct {
	// DiskUsedPercent is the per-filesystem space bound.
	DiskUsedPercent float64 `yaml:"disk_used_percent,omitempty"`

	// DiskInodePercent is the per-filesystem inode bound.
	DiskInodePercent float64 `yaml:"disk_inode_percent,omitempty"`

	// MemoryPercent is the used-memory bound.
	MemoryPercent float64 `yaml:"memory_percent,omitempty"`

	// LoadFactor is multiplied by the core count to produce the 1-minute
	// load bound.
	LoadFactor float64 `yaml:"load_factor,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		CheckTimeout: "10s",
		Concurrency:  4,
		Thresholds: Thresholds{
			DiskUsedPercent:  90,
			DiskInodePercent: 90,
			MemoryPercent:    80,
			LoadFactor:       0.8,
		},
	}
}

// Load reads and parses a configuration file, filling unset fields with
// defaults. A missing file is not an error: Load returns Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// applyDefaults fills zero-valued fields from Default().
func (c *Config) applyDefaults() {
	def := Default()
	if c.CheckTimeout == "" {
		c.CheckTimeout = def.CheckTimeout
	}
	if c.Concurrency == 0 {
		c.Concurrency = def.Concurrency
	}
	if c.Thresholds.DiskUsedPercent == 0 {
		c.Thresholds.DiskUsedPercent = def.Thresholds.DiskUsedPercent
	}
	if c.Thresholds.DiskInodePercent == 0 {
		c.Thresholds.DiskInodePercent = def.Thresholds.DiskInodePercent
	}
	if c.Thresholds.MemoryPercent == 0 {
		c.Thresholds.MemoryPercent = def.Thresholds.MemoryPercent
	}
	if c.Thresholds.LoadFactor == 0 {
		c.Thresholds.LoadFactor = def.Thresholds.LoadFactor
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if _, err := c.ParsedTimeout(); err != nil {
		return fmt.Errorf("check_timeout: %w", err)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	for name, v := range map[string]float64{
		"disk_used_percent":  c.Thresholds.DiskUsedPercent,
		"disk_inode_percent": c.Thresholds.DiskInodePercent,
		"memory_percent":     c.Thresholds.MemoryPercent,
	} {
		if v <= 0 || v > 100 {
			return fmt.Errorf("%s must be in (0, 100], got %g", name, v)
		}
	}
	if c.Thresholds.LoadFactor <= 0 {
		return fmt.Errorf("load_factor must be positive, got %g", c.Thresholds.LoadFactor)
	}
	return nil
}

// ParsedTimeout returns CheckTimeout as a duration.
func (c *Config) ParsedTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.CheckTimeout)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", c.CheckTimeout)
	}
	return d, nil
}
