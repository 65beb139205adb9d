// Package logging builds the zap logger shared by the CLI and the engine.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Defaults keep stderr quiet so command output stays readable
const (
	DefaultLevel  = "warn"
	DefaultFormat = "console"
)

// Config holds logging configuration options
type Config struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`             // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`           // json, console
	OutputFile string `mapstructure:"output_file" yaml:"output_file,omitempty"` // optional file output
}

// ParseLevel maps a level name onto a zap level
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "":
		return ParseLevel(DefaultLevel)
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", level)
	}
}

// New builds a logger from cfg. Logs go to stderr unless an output file is configured.
func New(cfg Config) (*zap.Logger, error) {
	zapLevel, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	format := cfg.Format
	if format == "" {
		format = DefaultFormat
	}

	var zc zap.Config
	switch format {
	case "console":
		zc = zap.NewDevelopmentConfig()
	case "json":
		zc = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	zc.Level = zap.NewAtomicLevelAt(zapLevel)

	if cfg.OutputFile != "" {
		if dir := filepath.Dir(cfg.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
		}

		file, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", cfg.OutputFile, err)
		}
		_ = file.Close()

		zc.OutputPaths = []string{cfg.OutputFile}
		zc.ErrorOutputPaths = []string{cfg.OutputFile}
	}

	return zc.Build()
}

// OrNop returns l, or a no-op logger when l is nil
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
