// Package config loads the optional YAML configuration of the samplerate
// command.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	samplerate "github.com/tphakala/go-samplerate"
	"github.com/tphakala/go-samplerate/internal/logging"
)

// Defaults
const (
	DefaultConverter   = "sinc-medium"
	DefaultChunkFrames = 4096
)

// Limits
const (
	maxChunkFrames = 1 << 20
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the command configuration. Fields left zero in the file keep
// their defaults; flags override both.
type Config struct {
	Converter   string `yaml:"converter"`    // converter key, see samplerate.ParseConverterType
	ChunkFrames int    `yaml:"chunk_frames"` // frames per Process call
	BitDepth    int    `yaml:"bit_depth"`    // output bit depth, 0 keeps the input depth

	Logging logging.Config `yaml:"logging"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Converter:   DefaultConverter,
		ChunkFrames: DefaultChunkFrames,
		Logging: logging.Config{
			Level:  logging.DefaultLevel,
			Format: logging.DefaultFormat,
		},
	}
}

// NewConfig parses confString over the defaults and validates the result.
func NewConfig(confString string) (*Config, error) {
	conf := Default()
	if confString != "" {
		if err := yaml.Unmarshal([]byte(confString), conf); err != nil {
			return nil, fmt.Errorf("could not parse config: %w", err)
		}
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Load reads and parses the file at path. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return NewConfig("")
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return NewConfig(string(body))
}

// Validate checks every field.
func (c *Config) Validate() error {
	if _, err := c.ConverterType(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.ChunkFrames < 1 || c.ChunkFrames > maxChunkFrames {
		return fmt.Errorf("%w: chunk_frames must be in [1, %d], got %d", ErrInvalidConfig, maxChunkFrames, c.ChunkFrames)
	}
	switch c.BitDepth {
	case 0, 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: bit_depth must be 8, 16, 24 or 32, got %d", ErrInvalidConfig, c.BitDepth)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ConverterType resolves the configured converter key.
func (c *Config) ConverterType() (samplerate.ConverterType, error) {
	return samplerate.ParseConverterType(c.Converter)
}
