// Package logging builds the zap loggers used by the command-line tools.
// The library itself never logs unless handed a logger.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment variables the command-line tools read the Config from.
const (
	EnvLevel  = "SAMPLERATE_LOG_LEVEL"
	EnvFormat = "SAMPLERATE_LOG_FORMAT"
)

// Defaults applied to empty Config fields.
const (
	DefaultLevel  = "info"
	DefaultFormat = "console"
)

// Config selects the level and encoding of a logger.
type Config struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// Merge returns c with empty fields filled from other.
func (c Config) Merge(other Config) Config {
	if strings.TrimSpace(c.Level) == "" {
		c.Level = other.Level
	}
	if strings.TrimSpace(c.Format) == "" {
		c.Format = other.Format
	}
	return c
}

// Validate checks level and format without building a logger.
func (c Config) Validate() error {
	_, _, err := c.resolve()
	return err
}

func (c Config) resolve() (zapcore.Level, string, error) {
	level := strings.ToLower(strings.TrimSpace(c.Level))
	if level == "" {
		level = DefaultLevel
	}
	format := strings.ToLower(strings.TrimSpace(c.Format))
	if format == "" {
		format = DefaultFormat
	}

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return 0, "", fmt.Errorf("invalid log level: %s", c.Level)
	}
	if format != "console" && format != "json" {
		return 0, "", fmt.Errorf("invalid log format: %s", c.Format)
	}
	return lvl, format, nil
}

// New builds a logger writing to standard error.
func New(cfg Config, opts ...zap.Option) (*zap.Logger, error) {
	lvl, format, err := cfg.resolve()
	if err != nil {
		return nil, err
	}

	var zapCfg zap.Config
	switch format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	default:
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// Sync flushes logger, ignoring the errors stderr reports on some platforms.
func Sync(logger *zap.Logger) {
	if logger != nil {
		_ = logger.Sync()
	}
}
