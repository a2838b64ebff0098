package log

//go:generate go tool stringer --linecomment --type Level,Format --output config_string.go

import (
	"io"
	"iter"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a record. It extends [slog.Level] with
// [LevelTrace], used for per-node evaluation detail.
type Level slog.Level

const (
	LevelTrace Level = Level(slog.LevelDebug - 4) // trace
	LevelDebug Level = Level(slog.LevelDebug)     // debug
	LevelInfo  Level = Level(slog.LevelInfo)      // info
	LevelWarn  Level = Level(slog.LevelWarn)      // warn
	LevelError Level = Level(slog.LevelError)     // error
)

// Format selects the record encoding.
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
)

// Defaults applied by [Make].
const (
	DefaultLevel      = LevelInfo
	DefaultFormat     = FormatJSON
	DefaultTimeLayout = time.RFC3339
	DefaultCaller     = false
	DefaultPretty     = true
)

var (
	levels  = []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}
	formats = []Format{FormatJSON, FormatText}
)

// names returns an iterator over the String of each of values.
func names[T interface{ String() string }](values []T) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, v := range values {
			if !yield(v.String()) {
				return
			}
		}
	}
}

// Levels returns an iterator over the level names, lowest first.
func Levels() iter.Seq[string] { return names(levels) }

// Formats returns an iterator over the format names.
func Formats() iter.Seq[string] { return names(formats) }

// ParseLevel returns the level named s, ignoring case. Besides the names of
// [Levels], it accepts anything [slog.Level.UnmarshalText] does, such as
// "warn+2". Unrecognized input yields [DefaultLevel].
func ParseLevel(s string) Level {
	s = strings.TrimSpace(s)

	if i := slices.IndexFunc(levels, func(l Level) bool {
		return strings.EqualFold(l.String(), s)
	}); i >= 0 {
		return levels[i]
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel
	}

	return Level(l)
}

// ParseFormat returns the format named s, ignoring case, or
// [DefaultFormat].
func ParseFormat(s string) Format {
	s = strings.TrimSpace(s)

	if i := slices.IndexFunc(formats, func(f Format) bool {
		return strings.EqualFold(f.String(), s)
	}); i >= 0 {
		return formats[i]
	}

	return DefaultFormat
}

// FormatTime renders the timestamp of a record. An empty result drops the
// timestamp.
type FormatTime func(time.Time) string

// config holds the settings of a Logger. Its mutex is shared by the copies
// made when options are applied, and replaced by clone.
type config struct {
	mutex      *sync.RWMutex
	output     io.Writer
	formatTime FormatTime
	level      Level
	format     Format
	caller     bool
	pretty     bool
}

func makeConfig(w io.Writer, opts ...Option) config {
	c := config{mutex: &sync.RWMutex{}}

	return apply(apply(c, WithDefaults(w)), opts...)
}

// clone returns a copy of c with its own mutex and opts applied.
func (c config) clone(opts ...Option) config {
	c.mutex = &sync.RWMutex{}

	return apply(c, opts...)
}

// replaceAttr formats the timestamp with c.formatTime and prints levels by
// name, so LevelTrace shows as "TRACE" instead of "DEBUG-4".
func (c config) replaceAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		if t, ok := a.Value.Any().(time.Time); ok {
			s := c.formatTime(t)
			if s == "" {
				return slog.Attr{}
			}

			a.Value = slog.StringValue(s)
		}

	case slog.LevelKey:
		if l, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(strings.ToUpper(Level(l).String()))
		}
	}

	return a
}

// handler returns the slog.Handler for c.
func (c config) handler() slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource:   c.caller,
		Level:       slog.Level(c.level),
		ReplaceAttr: c.replaceAttr,
	}

	switch {
	case c.pretty && c.format == FormatJSON:
		return newPrettyHandler(c.output, opts, layoutJSON)
	case c.pretty && c.format == FormatText:
		return newPrettyHandler(c.output, opts, layoutText)
	case c.format == FormatJSON:
		return slog.NewJSONHandler(c.output, opts)
	case c.format == FormatText:
		return slog.NewTextHandler(c.output, opts)
	}

	return slog.DiscardHandler
}

// WithDefaults resets every setting to its default and sets the output to w.
func WithDefaults(w io.Writer) Option {
	return func(c config) config {
		c = WithOutput(w)(c)

		return update(func(c *config) {
			c.formatTime = makeFormatTimeFunc(DefaultTimeLayout)
			c.level = DefaultLevel
			c.format = DefaultFormat
			c.caller = DefaultCaller
			c.pretty = DefaultPretty
		})(c)
	}
}

// WithOutput sets the writer records go to. A nil writer discards them.
func WithOutput(w io.Writer) Option {
	if w == nil {
		w = io.Discard
	}

	return update(func(c *config) { c.output = w })
}

// WithLevel sets the minimum level of records written.
func WithLevel(level Level) Option {
	return update(func(c *config) { c.level = level })
}

// WithFormat sets the record encoding.
func WithFormat(format Format) Option {
	return update(func(c *config) { c.format = format })
}

// WithTimeLayout sets the timestamp layout.
//
// The layout is either one of the names in the table below, matched without
// regard to case or punctuation, or a [time.Time.Format] layout used
// verbatim. A blank layout, or "none", drops timestamps.
func WithTimeLayout(layout string) Option {
	format := makeFormatTimeFunc(layout)

	return update(func(c *config) { c.formatTime = format })
}

// WithCaller sets whether records carry the source location of the call.
func WithCaller(enable bool) Option {
	return update(func(c *config) { c.caller = enable })
}

// WithPretty sets whether records are colorized for a terminal.
func WithPretty(enable bool) Option {
	return update(func(c *config) { c.pretty = enable })
}

// timeLayouts lists the named layouts with their aliases.
var timeLayouts = []struct {
	layout  string
	aliases []string
}{
	{time.RFC3339, []string{"rfc3339"}},
	{time.RFC3339Nano, []string{"rfc3339nano"}},
	{time.ANSIC, []string{"ansic"}},
	{time.UnixDate, []string{"unixdate"}},
	{time.RubyDate, []string{"rubydate"}},
	{time.RFC822, []string{"rfc822"}},
	{time.RFC822Z, []string{"rfc822z"}},
	{time.RFC850, []string{"rfc850"}},
	{time.Kitchen, []string{"kitchen"}},
	{time.DateTime, []string{"datetime"}},
	{time.Stamp, []string{"stamp"}},
	{time.StampMilli, []string{"stampmilli", "milli", "ms"}},
	{time.StampMicro, []string{"stampmicro", "micro", "us"}},
	{time.StampNano, []string{"stampnano", "nano", "ns"}},
	{"", []string{"none"}},
}

// namedLayout returns the layout with the given alias.
func namedLayout(alias string) (string, bool) {
	for _, tl := range timeLayouts {
		if slices.Contains(tl.aliases, alias) {
			return tl.layout, true
		}
	}

	return "", false
}

func makeFormatTimeFunc(layout string) FormatTime {
	// Only letters and digits identify a named layout.
	alias := strings.Map(func(r rune) rune {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			return r
		}

		return -1
	}, strings.ToLower(layout))

	if alias == "" {
		return func(time.Time) string { return "" }
	}

	if named, ok := namedLayout(alias); ok {
		layout = named
	}

	if layout == "" {
		return func(time.Time) string { return "" }
	}

	return func(t time.Time) string { return t.Format(layout) }
}
