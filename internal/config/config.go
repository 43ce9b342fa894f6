// Package config handles converter configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/blockmodel/internal/atlas"
	"github.com/Faultbox/blockmodel/internal/convert"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// FileName is the config file name searched for by Load.
const FileName = "modelconv.yaml"

// Config holds all converter settings.
type Config struct {
	Atlas    AtlasConfig    `yaml:"atlas"`
	Textures TexturesConfig `yaml:"textures"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`

	source string
}

// AtlasConfig holds texture atlas dimensions.
type AtlasConfig struct {
	Size            int `yaml:"size"`             // Canvas width and height
	FallbackSize    int `yaml:"fallback_size"`    // Checkerboard tile side
	ReferenceTexels int `yaml:"reference_texels"` // Texels per block edge
}

// TexturesConfig holds texture search paths.
type TexturesConfig struct {
	Paths []string `yaml:"paths"` // Extra texture roots, searched after the model directory
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Dir       string `yaml:"dir"`
	Overwrite bool   `yaml:"overwrite"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Atlas: AtlasConfig{
			Size:            atlas.DefaultSize,
			FallbackSize:    atlas.DefaultFallbackSize,
			ReferenceTexels: convert.DefaultReferenceTexels,
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Source returns the file the config was read from, or "" if none was.
func (c *Config) Source() string {
	return c.source
}

// AtlasSettings returns the atlas dimensions for the converter.
func (c *Config) AtlasSettings() atlas.Config {
	return atlas.Config{
		Size:         c.Atlas.Size,
		FallbackSize: c.Atlas.FallbackSize,
	}
}

// Validate checks that settings are usable.
func (c *Config) Validate() error {
	if err := c.AtlasSettings().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Atlas.FallbackSize > c.Atlas.Size {
		return fmt.Errorf("%w: fallback size %d exceeds atlas size %d", ErrInvalidConfig, c.Atlas.FallbackSize, c.Atlas.Size)
	}
	if c.Atlas.ReferenceTexels <= 0 {
		return fmt.Errorf("%w: reference texels must be positive, got %d", ErrInvalidConfig, c.Atlas.ReferenceTexels)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Logging.Level)
	}
	return nil
}
