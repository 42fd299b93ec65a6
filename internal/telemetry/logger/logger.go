// Package logger provides structured logging for tokmint.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the application logger interface.
//
// Arguments after msg are alternating keys and values.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	WithContext(ctx context.Context) Logger
}

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string
	// Format is the output format (json, text).
	Format string
	// Output is the output writer (defaults to os.Stderr).
	Output io.Writer
	// AddSource adds caller information to log entries.
	AddSource bool
	// File, when Path is set, additionally writes JSON logs to a rotated file.
	File FileConfig
}

// FileConfig configures rotated file output.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Output:    os.Stderr,
		AddSource: false,
	}
}

// globalLevel holds the current log level for dynamic adjustment.
var globalLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// New creates a new logger with the given configuration.
func New(cfg Config) (Logger, error) {
	globalLevel.SetLevel(parseLevel(cfg.Level))
	return newZapLogger(cfg)
}

// SetLevel dynamically sets the global log level.
// This allows runtime log level adjustment (e.g., on config reload).
func SetLevel(level string) {
	globalLevel.SetLevel(parseLevel(level))
}

// GetLevel returns the current log level as a string.
func GetLevel() string {
	switch globalLevel.Level() {
	case zapcore.DebugLevel:
		return "debug"
	case zapcore.WarnLevel:
		return "warn"
	case zapcore.ErrorLevel:
		return "error"
	default:
		return "info"
	}
}

// parseLevel converts a string level to a zap level.
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Global logger instance for convenience methods.
var defaultLogger atomic.Pointer[zapLogger]

func init() {
	l, _ := newZapLogger(DefaultConfig())
	defaultLogger.Store(l)
}

// SetDefault sets the default global logger.
func SetDefault(l Logger) {
	if zl, ok := l.(*zapLogger); ok {
		defaultLogger.Store(zl)
	}
}

// Default returns the default global logger.
func Default() Logger {
	return defaultLogger.Load()
}

// Sync flushes buffered entries of the default logger.
func Sync() error {
	return defaultLogger.Load().sugar.Sync()
}

// Debug logs at debug level using the default logger.
func Debug(msg string, args ...any) {
	defaultLogger.Load().Debug(msg, args...)
}

// Info logs at info level using the default logger.
func Info(msg string, args ...any) {
	defaultLogger.Load().Info(msg, args...)
}

// Warn logs at warn level using the default logger.
func Warn(msg string, args ...any) {
	defaultLogger.Load().Warn(msg, args...)
}

// Error logs at error level using the default logger.
func Error(msg string, args ...any) {
	defaultLogger.Load().Error(msg, args...)
}
