package log

import (
	"context"
	"log/slog"
	"os"
)

// DefaultContextProvider returns the context used by the logging functions
// and methods that do not take one.
var DefaultContextProvider = context.TODO

var defaultLog = Make(os.Stderr)

// Config updates the default logger with the given options.
func Config(opts ...Option) {
	defaultLog = defaultLog.Wrap(opts...)
}

// Default returns the package-level logger configured by [Config].
func Default() Logger { return defaultLog }

// The functions below call log directly, so records report their caller.

// TraceContext logs at [LevelTrace] to the default logger.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.log(ctx, LevelTrace, msg, attrs)
}

// DebugContext logs at [LevelDebug] to the default logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.log(ctx, LevelDebug, msg, attrs)
}

// InfoContext logs at [LevelInfo] to the default logger.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.log(ctx, LevelInfo, msg, attrs)
}

// WarnContext logs at [LevelWarn] to the default logger.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.log(ctx, LevelWarn, msg, attrs)
}

// ErrorContext logs at [LevelError] to the default logger.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.log(ctx, LevelError, msg, attrs)
}

// Trace logs at [LevelTrace] to the default logger.
func Trace(msg string, attrs ...slog.Attr) {
	defaultLog.log(DefaultContextProvider(), LevelTrace, msg, attrs)
}

// Debug logs at [LevelDebug] to the default logger.
func Debug(msg string, attrs ...slog.Attr) {
	defaultLog.log(DefaultContextProvider(), LevelDebug, msg, attrs)
}

// Info logs at [LevelInfo] to the default logger.
func Info(msg string, attrs ...slog.Attr) {
	defaultLog.log(DefaultContextProvider(), LevelInfo, msg, attrs)
}

// Warn logs at [LevelWarn] to the default logger.
func Warn(msg string, attrs ...slog.Attr) {
	defaultLog.log(DefaultContextProvider(), LevelWarn, msg, attrs)
}

// Error logs at [LevelError] to the default logger.
func Error(msg string, attrs ...slog.Attr) {
	defaultLog.log(DefaultContextProvider(), LevelError, msg, attrs)
}

// With returns the default logger with attrs added to each message.
func With(attrs ...slog.Attr) Logger {
	return defaultLog.With(attrs...)
}
