// Package logger provides structured logging for the mythic core.
// It wraps log/slog so core components depend on a small interface
// rather than a concrete handler, keeping logging a side channel
// that is never part of an error contract.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger is the logging interface used throughout the core.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, args ...any)
	// Info logs an info message with optional key-value pairs
	Info(msg string, args ...any)
	// Warn logs a warning message with optional key-value pairs
	Warn(msg string, args ...any)
	// Error logs an error message with optional key-value pairs
	Error(msg string, args ...any)
	// With returns a new Logger with additional context fields
	With(args ...any) Logger
}

// slogLogger wraps slog.Logger to implement the Logger interface
type slogLogger struct {
	logger *slog.Logger
}

// New creates a new Logger with the specified configuration
func New(opts ...Option) Logger {
	cfg := &config{
		level:  slog.LevelInfo,
		output: os.Stderr,
		format: FormatText,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{
		Level: cfg.level,
	}

	var handler slog.Handler
	switch cfg.format {
	case FormatJSON:
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	default:
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	}

	l := slog.New(handler)
	if cfg.component != "" {
		l = l.With("component", cfg.component)
	}
	return &slogLogger{
		logger: l,
	}
}

// Nop returns a no-op logger that discards all log messages
func Nop() Logger {
	return &slogLogger{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Default returns a default logger that writes to stderr
func Default() Logger {
	return New()
}

// Debug implements Logger
func (l *slogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info implements Logger
func (l *slogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn implements Logger
func (l *slogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error implements Logger
func (l *slogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// With implements Logger
func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{
		logger: l.logger.With(args...),
	}
}

// FromContext returns a Logger from the context, or a no-op logger if not found
func FromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey{}).(Logger); ok {
		return logger
	}
	return Nop()
}

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

type loggerKey struct{}
