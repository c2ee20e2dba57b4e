// Package logger is a pluggable logging hook. Library code logs through a
// LogFunc and never owns a sink; callers install one with SetLogger or pass
// one per conversion.
package logger

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// LogLevel represents log severity
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	ErrorLevel LogLevel = "error"
)

// LogFunc is a single logger function that handles all levels
type LogFunc func(level LogLevel, msg string, keyvals ...interface{})

// Nop discards everything.
func Nop(LogLevel, string, ...interface{}) {}

var logFunc atomic.Value

func init() {
	logFunc.Store(LogFunc(Nop))
}

// SetLogger sets the global logger function. A nil f is ignored.
func SetLogger(f LogFunc) {
	if f != nil {
		logFunc.Store(f)
	}
}

// Default returns the global logger function.
func Default() LogFunc {
	return logFunc.Load().(LogFunc)
}

// Debug logs a message at debug level on the global logger.
func Debug(msg string, keyvals ...interface{}) {
	Default().Debug(msg, keyvals...)
}

// Error logs a message at error level on the global logger.
func Error(msg string, keyvals ...interface{}) {
	Default().Error(msg, keyvals...)
}

// Debug logs at debug level. A nil LogFunc is a no-op.
func (f LogFunc) Debug(msg string, keyvals ...interface{}) {
	if f != nil {
		f(DebugLevel, msg, keyvals...)
	}
}

// Error logs at error level. A nil LogFunc is a no-op.
func (f LogFunc) Error(msg string, keyvals ...interface{}) {
	if f != nil {
		f(ErrorLevel, msg, keyvals...)
	}
}

// Slog adapts a slog.Logger. Key/value pairs are passed through as slog
// attributes.
func Slog(l *slog.Logger) LogFunc {
	return func(level LogLevel, msg string, keyvals ...interface{}) {
		lvl := slog.LevelDebug
		if level == ErrorLevel {
			lvl = slog.LevelError
		}
		l.Log(context.Background(), lvl, msg, keyvals...)
	}
}
