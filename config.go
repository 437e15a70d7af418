package atlas

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds the engine tunables.
type Config struct {
	// DefaultLimit is the per-query result cap when the caller does not
	// override it.
	DefaultLimit int `toml:"default_limit"`

	// UpperScale bounds how deep the local feature scan descends.
	UpperScale int `toml:"upper_scale"`

	// UpperWorldScale is the coarsest viewport level that still triggers a
	// local feature scan.
	UpperWorldScale int `toml:"upper_world_scale"`

	// ScanDepth is how many levels past the viewport scale the local scan
	// looks, before clamping to UpperScale.
	ScanDepth int `toml:"scan_depth"`

	// Concurrency is the number of goroutines scoring features during the
	// local scan. Values below 2 keep the scan serial.
	Concurrency int `toml:"concurrency"`
}

// DefaultConfig returns the built-in tunables.
func DefaultConfig() Config {
	return Config{
		DefaultLimit:    10,
		UpperScale:      UpperScale,
		UpperWorldScale: UpperWorldScale,
		ScanDepth:       7,
		Concurrency:     1,
	}
}

// LoadConfig reads a TOML config file, overlaying it on the defaults.
// Fields absent from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.UpperWorldScale < 0 || c.UpperWorldScale > c.UpperScale {
		return fmt.Errorf("upper_world_scale %d out of range [0, %d]", c.UpperWorldScale, c.UpperScale)
	}
	if c.ScanDepth < 0 {
		return fmt.Errorf("scan_depth must be non-negative, got %d", c.ScanDepth)
	}
	return nil
}
