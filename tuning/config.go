// Package tuning loads the reference pitch and offset range used by the
// chromatic tools.
package tuning

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the reference frequency and the offset range to work over.
type Config struct {
	ReferenceHz float32
	Low         int
	High        int
}

// MaxSpan is the largest High-Low range a config may cover.
const MaxSpan = 1200

// Default returns A4 = 440 Hz with one octave either side.
func Default() *Config {
	return &Config{
		ReferenceHz: 440.0,
		Low:         -12,
		High:        12,
	}
}

// File is the on-disk schema. Missing fields keep their defaults.
type File struct {
	ReferenceHz *float32 `json:"reference_hz" yaml:"reference_hz"`
	Low         *int     `json:"low" yaml:"low"`
	High        *int     `json:"high" yaml:"high"`
}

// LoadFile reads a tuning file and applies it on top of Default. Files ending in
// .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	c := Default()
	if err := ApplyFile(c, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ApplyFile applies a parsed file onto an existing config.
func ApplyFile(dst *Config, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination config")
	}
	if f == nil {
		return nil
	}

	if f.ReferenceHz != nil {
		if err := checkReference(*f.ReferenceHz); err != nil {
			return err
		}
		dst.ReferenceHz = *f.ReferenceHz
	}
	if f.Low != nil {
		dst.Low = *f.Low
	}
	if f.High != nil {
		dst.High = *f.High
	}
	return dst.Validate()
}

// Validate reports whether the config is usable.
func (c *Config) Validate() error {
	if err := checkReference(c.ReferenceHz); err != nil {
		return err
	}
	if c.Low > c.High {
		return fmt.Errorf("low (%d) must be <= high (%d)", c.Low, c.High)
	}
	// Unsigned difference is exact once Low <= High, even across the int range.
	if span := uint64(c.High) - uint64(c.Low); span > MaxSpan {
		return fmt.Errorf("range %d..%d spans %d semitones, max %d", c.Low, c.High, span, MaxSpan)
	}
	return nil
}

func checkReference(hz float32) error {
	v := float64(hz)
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("reference_hz must be > 0")
	}
	return nil
}
