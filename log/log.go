package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Logger is a [slog.Logger] that carries its configuration, so it can be
// copied with changed options through [Logger.Wrap].
//
// The zero Logger discards everything.
type Logger struct {
	*slog.Logger
	config
}

func newLogger(cfg config) Logger {
	return Logger{config: cfg, Logger: slog.New(cfg.handler())}
}

// Make returns a Logger writing to w with the default configuration, then
// opts applied.
func Make(w io.Writer, opts ...Option) Logger {
	return newLogger(makeConfig(w, opts...))
}

// Wrap returns a copy of l with opts applied. l is not changed.
func (l Logger) Wrap(opts ...Option) Logger {
	unlock := l.rlock()
	cfg := l.clone()
	unlock()

	return newLogger(apply(cfg, opts...))
}

// With returns a copy of l that adds attrs to every record.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.Logger == nil {
		return l
	}

	unlock := l.rlock()
	cfg := l.clone()
	unlock()

	return Logger{config: cfg, Logger: slog.New(l.Handler().WithAttrs(attrs))}
}

// Level returns the minimum level of records written by l.
func (l Logger) Level() Level {
	if l.Logger == nil {
		return DefaultLevel
	}

	defer l.rlock()()

	return l.level
}

// Format returns the record encoding of l.
func (l Logger) Format() Format {
	if l.Logger == nil {
		return DefaultFormat
	}

	defer l.rlock()()

	return l.format
}

// TraceContext logs at [LevelTrace].
func (l Logger) TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelTrace, msg, attrs)
}

// DebugContext logs at [LevelDebug].
func (l Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelDebug, msg, attrs)
}

// InfoContext logs at [LevelInfo].
func (l Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelInfo, msg, attrs)
}

// WarnContext logs at [LevelWarn].
func (l Logger) WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelWarn, msg, attrs)
}

// ErrorContext logs at [LevelError].
func (l Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelError, msg, attrs)
}

// Trace logs at [LevelTrace] with [DefaultContextProvider].
func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelTrace, msg, attrs)
}

// Debug logs at [LevelDebug] with [DefaultContextProvider].
func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelDebug, msg, attrs)
}

// Info logs at [LevelInfo] with [DefaultContextProvider].
func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelInfo, msg, attrs)
}

// Warn logs at [LevelWarn] with [DefaultContextProvider].
func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelWarn, msg, attrs)
}

// Error logs at [LevelError] with [DefaultContextProvider].
func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelError, msg, attrs)
}

// log writes one record. It must be called directly by an exported method,
// which in turn is called by the code the record's source refers to.
func (l Logger) log(ctx context.Context, level Level, msg string, attrs []slog.Attr) {
	if l.Logger == nil {
		return
	}

	defer l.rlock()()

	if !l.Enabled(ctx, slog.Level(level)) {
		return
	}

	// Skip runtime.Callers, log and the exported method.
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pcs[0])
	r.AddAttrs(attrs...)
	_ = l.Handler().Handle(ctx, r)
}

// rlock read-locks the config of l, if it has one, and returns the matching
// unlock.
func (l Logger) rlock() func() {
	if l.mutex == nil {
		return func() {}
	}

	l.mutex.RLock()

	return l.mutex.RUnlock
}
