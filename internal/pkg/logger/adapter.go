package logger

import (
	"log/slog"

	"solana_portfolio/internal/app/port"
)

// slogAdapter implements port.Logger on top of the global slog logger.
type slogAdapter struct {
	attrs []any
}

// NewSlogAdapter creates a port.Logger writing through the package logger.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

func (a *slogAdapter) logger() *slog.Logger {
	return With(a.attrs...)
}

// Info logs an informational message.
func (a *slogAdapter) Info(msg string, args ...any) {
	a.logger().Info(msg, args...)
}

// Debug logs a debug message.
func (a *slogAdapter) Debug(msg string, args ...any) {
	a.logger().Debug(msg, args...)
}

// Warn logs a warning.
func (a *slogAdapter) Warn(msg string, args ...any) {
	a.logger().Warn(msg, args...)
}

// Error logs an error.
func (a *slogAdapter) Error(msg string, args ...any) {
	a.logger().Error(msg, args...)
}

// With returns a port.Logger that adds args to every message.
func (a *slogAdapter) With(args ...any) port.Logger {
	attrs := make([]any, 0, len(a.attrs)+len(args))
	attrs = append(attrs, a.attrs...)
	attrs = append(attrs, args...)
	return &slogAdapter{attrs: attrs}
}

type nopLogger struct{}

// NewNop returns a port.Logger that discards everything.
func NewNop() port.Logger { return nopLogger{} }

func (nopLogger) Info(string, ...any) {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any) {}
func (nopLogger) Error(string, ...any) {}
func (n nopLogger) With(...any) port.Logger { return n }
