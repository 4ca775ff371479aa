// Package log is a thin wrapper over slog that tags every record with
// the emitting component.
package log

import (
	"context"
	"log/slog"
	"os"
)

// Standard component names.
const (
	ComponentApp      = "app"
	ComponentWorker   = "worker"
	ComponentStorage  = "storage"
	ComponentReminder = "reminder"
	ComponentNotify   = "notify"
	ComponentExport   = "export"
)

// Logger carries a component name attached to every record.
type Logger struct {
	*slog.Logger
	component string
}

// New builds a text logger on stdout for the given component.
func New(component string, level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger:    slog.New(handler),
		component: component,
	}
}

// WithComponent returns a logger for a sub-component sharing the same
// handler.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.Logger,
		component: component,
	}
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}

func (l *Logger) Info(msg string, args ...any) {
	l.Logger.Info(msg, append([]any{"component", l.component}, args...)...)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.Logger.InfoContext(ctx, msg, append([]any{"component", l.component}, args...)...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.Logger.Warn(msg, append([]any{"component", l.component}, args...)...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.Logger.Error(msg, append([]any{"component", l.component}, args...)...)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.Logger.ErrorContext(ctx, msg, append([]any{"component", l.component}, args...)...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.Logger.Debug(msg, append([]any{"component", l.component}, args...)...)
}

// SetDefault installs the wrapped slog.Logger as the process default so
// package-level slog calls share the same handler.
func SetDefault(l *Logger) {
	slog.SetDefault(l.Logger)
}
