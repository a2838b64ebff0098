// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// A [Logger] carries its configuration with it. Options such as
// [WithLevel], [WithFormat], [WithTimeLayout], [WithCaller] and [WithPretty]
// are applied when the logger is made, or later with [Logger.Wrap], which
// returns a new logger and leaves the original untouched.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"))
//
//	logger.Info("parsed", slog.Int("sentences", 3))
//
// # Levels
//
// Five levels are defined. [LevelTrace] sits below [LevelDebug] and is used
// for per-node evaluation detail; it prints as "TRACE" rather than slog's
// "DEBUG-4".
//
// # Pretty Output
//
// With pretty printing enabled (the default), records are colorized for a
// terminal. Attributes added with [Logger.With] and groups are kept, group
// names are joined to keys with dots, and [slog.LogValuer] values are
// resolved, so errors that describe themselves as attributes print in full.
//
// # Package Logger
//
// The package-level functions ([Info], [DebugContext], ...) write to a
// default logger on standard error, reconfigured with [Config]. The
// functions without a context argument use [DefaultContextProvider].
package log
