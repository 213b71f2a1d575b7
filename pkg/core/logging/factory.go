// ============================================================================
// KeplerKV - Key-Value Store with Query Language
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating loggers from configuration
// Author:      Mike Stoffels
// Created:     2026-10-09
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"path/filepath"

	kverror "github.com/msto63/keplerkv/foundation/core/error"
	kvlog "github.com/msto63/keplerkv/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Logger name
	Name string

	// Log level (trace, debug, info, warn, error, off)
	Level string

	// Output format (text, console, json, logfmt)
	Format string

	// Log file. Entries go to stderr when empty.
	File string

	// Additional outputs (besides stderr or the log file)
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  kvlog.DefaultLevel().String(),
		Format: kvlog.FormatText.String(),
	}
}

// NewLogger creates a Foundation logger. The returned close function
// releases the log file, if one was opened, and is never nil.
func NewLogger(cfg LoggerConfig) (*kvlog.Logger, func() error, error) {
	closer := func() error { return nil }

	level, err := kvlog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, closer, kverror.Wrap(err, "invalid log level").WithCode(kverror.CodeConfigError)
	}
	format, err := kvlog.ParseFormat(cfg.Format)
	if err != nil {
		return nil, closer, kverror.Wrap(err, "invalid log format").WithCode(kverror.CodeConfigError)
	}

	// Build output writer
	var output io.Writer = os.Stderr
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o750); err != nil {
			return nil, closer, kverror.Wrap(err, "failed to create log directory").WithCode(kverror.CodeConfigError)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
		if err != nil {
			return nil, closer, kverror.Wrap(err, "failed to open log file").WithCode(kverror.CodeConfigError)
		}
		output = f
		closer = f.Close
	}

	// Add additional outputs if specified
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	logger := kvlog.NewWithConfig(kvlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.Name,
	})
	return logger, closer, nil
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(name string) *kvlog.Logger {
	logger, _, err := NewLogger(DefaultLoggerConfig(name))
	if err != nil {
		return kvlog.New().WithName(name)
	}
	return logger
}
