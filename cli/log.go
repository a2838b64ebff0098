package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ams/log"
)

// logFormat configures the logger format as a side effect of parsing via
// encoding.TextUnmarshaler, early enough to affect errors reported by kong.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the logger level as a side effect of parsing via
// encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"${logLevelDefault}"  enum:"${logLevelEnum}"  help:"Set log level (${enum})."`
	Format     logFormat `default:"${logFormatDefault}" enum:"${logFormatEnum}" help:"Set log format (${enum})."`
	TimeLayout string    `default:"RFC3339"                                     help:"Set timestamp format."`
	Caller     bool      `default:"false"                                       help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                                        help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelDefault":  log.DefaultLevel.String(),
		"logLevelEnum":     strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatDefault": log.DefaultFormat.String(),
		"logFormatEnum":    strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start applies every parsed logging flag to the default logger.
func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan applies logging flags found in args before kong parses them, so the
// logger is configured no matter where the flags appear. Valued flags also
// configure the logger through UnmarshalText during parsing; the boolean
// flags only get applied here before [logConfig.start].
func (f *logConfig) scan(args []string) {
	valued := map[string]func(string){
		"level":  func(v string) { _ = f.Level.UnmarshalText([]byte(v)) },
		"format": func(v string) { _ = f.Format.UnmarshalText([]byte(v)) },
	}

	boolean := map[string]func(bool){
		"pretty": func(v bool) {
			f.Pretty = v
			log.Config(log.WithPretty(v))
		},
		"caller": func(v bool) {
			f.Caller = v
			log.Config(log.WithCaller(v))
		},
	}

	for i := 0; i < len(args); i++ {
		name, negate := "", false

		switch {
		case strings.HasPrefix(args[i], "--log-"):
			name = strings.TrimPrefix(args[i], "--log-")
		case strings.HasPrefix(args[i], "--no-log-"):
			name, negate = strings.TrimPrefix(args[i], "--no-log-"), true
		default:
			continue
		}

		name, value, assigned := strings.Cut(name, "=")

		if set, ok := valued[name]; ok && !negate {
			// Consume the next argument as the value if not assigned.
			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				value, assigned = args[i+1], true
				i++
			}

			if assigned {
				set(value)
			}

			continue
		}

		if set, ok := boolean[name]; ok {
			v := true

			if assigned {
				parsed, err := strconv.ParseBool(value)
				if err != nil {
					continue
				}

				v = parsed
			}

			set(v != negate)
		}
	}
}
