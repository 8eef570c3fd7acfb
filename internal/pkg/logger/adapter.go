package logger

import (
	"log/slog"

	"wallet_inspector/internal/app/port"
)

// slogAdapter implements port.Logger. With a nil adaptee it forwards to the
// package-level functions, so it follows whatever Init configured.
type slogAdapter struct {
	adaptee *slog.Logger
}

// NewSlogAdapter returns a port.Logger backed by the global logger.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

// NewLoggerAdapter returns a port.Logger backed by l.
func NewLoggerAdapter(l *slog.Logger) port.Logger {
	return &slogAdapter{adaptee: l}
}

// Info logs an informational message.
func (a *slogAdapter) Info(msg string, args ...any) {
	if a.adaptee != nil {
		a.adaptee.Info(msg, args...)
		return
	}
	Info(msg, args...)
}

// Debug logs a debug message.
func (a *slogAdapter) Debug(msg string, args ...any) {
	if a.adaptee != nil {
		a.adaptee.Debug(msg, args...)
		return
	}
	Debug(msg, args...)
}

// Warn logs a warning.
func (a *slogAdapter) Warn(msg string, args ...any) {
	if a.adaptee != nil {
		a.adaptee.Warn(msg, args...)
		return
	}
	Warn(msg, args...)
}

// Error logs an error message.
func (a *slogAdapter) Error(msg string, args ...any) {
	if a.adaptee != nil {
		a.adaptee.Error(msg, args...)
		return
	}
	Error(msg, args...)
}
