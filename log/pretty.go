package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// prettyLayout selects how a prettyHandler arranges the fields of a record.
type prettyLayout int

const (
	layoutText prettyLayout = iota // key=value pairs on one line
	layoutJSON                     // one field per line inside braces
)

// prettyHandler is a colorized [slog.Handler] for interactive terminals.
//
// Attributes added with WithAttrs and WithGroup are kept, group names are
// joined to keys with dots, and [slog.LogValuer] values such as the errors
// of package lang are resolved before printing.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []field
	groups []string
	layout prettyLayout
}

// field is one resolved key and value ready to print.
type field struct {
	key   string
	value slog.Value
	level slog.Level
	isLvl bool
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	layout prettyLayout,
) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		mu:     &sync.Mutex{},
		w:      w,
		layout: layout,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]field, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		fields = h.appendBuiltin(fields, slog.Time(slog.TimeKey, r.Time))
	}

	if a := h.replace(slog.Any(slog.LevelKey, r.Level)); a.Key != "" {
		fields = append(fields, field{
			key:   a.Key,
			value: a.Value.Resolve(),
			level: r.Level,
			isLvl: true,
		})
	}

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = h.appendBuiltin(fields,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	fields = h.appendBuiltin(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	prefix := h.prefix()

	r.Attrs(func(a slog.Attr) bool {
		fields = appendFlat(fields, prefix, a)

		return true
	})

	var buf bytes.Buffer

	switch h.layout {
	case layoutJSON:
		writeJSON(&buf, fields)
	default:
		writeText(&buf, fields)
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()

	prefix := h.prefix()
	for _, a := range attrs {
		c.attrs = appendFlat(c.attrs, prefix, a)
	}

	return c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := h.clone()
	c.groups = append(c.groups, name)

	return c
}

func (h *prettyHandler) clone() *prettyHandler {
	c := *h
	c.attrs = h.attrs[:len(h.attrs):len(h.attrs)]
	c.groups = h.groups[:len(h.groups):len(h.groups)]

	return &c
}

func (h *prettyHandler) prefix() string {
	if len(h.groups) == 0 {
		return ""
	}

	return strings.Join(h.groups, ".") + "."
}

// replace applies the configured ReplaceAttr to a built-in attribute.
func (h *prettyHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

func (h *prettyHandler) appendBuiltin(fields []field, a slog.Attr) []field {
	a = h.replace(a)
	if a.Key == "" {
		return fields
	}

	return append(fields, field{key: a.Key, value: a.Value.Resolve()})
}

// appendFlat appends a, resolved, with groups flattened into dotted keys.
func appendFlat(fields []field, prefix string, a slog.Attr) []field {
	v := a.Value.Resolve()

	if v.Kind() != slog.KindGroup {
		if a.Key == "" {
			return fields
		}

		return append(fields, field{key: prefix + a.Key, value: v})
	}

	inner := prefix
	if a.Key != "" {
		inner += a.Key + "."
	}

	for _, g := range v.Group() {
		fields = appendFlat(fields, inner, g)
	}

	return fields
}

func writeText(buf *bytes.Buffer, fields []field) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(colorGray)
		buf.WriteString(f.key)
		buf.WriteString(colorReset)
		buf.WriteByte('=')

		writeValue(buf, f)
	}
}

func writeJSON(buf *bytes.Buffer, fields []field) {
	buf.WriteString("{\n")

	for i, f := range fields {
		if i > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  ")
		buf.WriteString(colorGray)
		buf.WriteString(f.key)
		buf.WriteString(colorReset)
		buf.WriteString(": ")

		writeValue(buf, f)
	}

	buf.WriteString("\n}")
}

func writeValue(buf *bytes.Buffer, f field) {
	color, text := colorCyan, ""

	v := f.value

	switch {
	case f.isLvl:
		switch {
		case f.level >= slog.LevelError:
			color = colorRed
		case f.level >= slog.LevelWarn:
			color = colorYellow
		case f.level >= slog.LevelInfo:
			color = colorGreen
		default:
			color = colorBlue
		}

		text = v.String()

	case v.Kind() == slog.KindInt64:
		color, text = colorYellow, strconv.FormatInt(v.Int64(), 10)

	case v.Kind() == slog.KindUint64:
		color, text = colorYellow, strconv.FormatUint(v.Uint64(), 10)

	case v.Kind() == slog.KindFloat64:
		color, text = colorYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64)

	case v.Kind() == slog.KindBool:
		color, text = colorRed, "false"
		if v.Bool() {
			color, text = colorGreen, "true"
		}

	case v.Kind() == slog.KindDuration:
		color, text = colorMagenta, v.Duration().String()

	case v.Kind() == slog.KindTime:
		color, text = colorBlue, v.Time().String()

	case v.Kind() == slog.KindAny && v.Any() == nil:
		color, text = colorGray, "null"

	default:
		text = v.String()
	}

	buf.WriteString(color)
	buf.WriteString(text)
	buf.WriteString(colorReset)
}
