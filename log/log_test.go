package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// record logs one message with fn to a plain JSON logger configured by opts
// and returns the decoded record, or nil if nothing was written.
func record(t *testing.T, fn func(Logger), opts ...Option) map[string]any {
	t.Helper()

	var buf bytes.Buffer

	opts = append([]Option{WithFormat(FormatJSON), WithPretty(false)}, opts...)
	fn(Make(&buf, opts...))

	if buf.Len() == 0 {
		return nil
	}

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}

	return rec
}

func TestMake_Defaults(t *testing.T) {
	l := Make(nil)

	if l.Level() != DefaultLevel {
		t.Errorf("Level() = %v, want %v", l.Level(), DefaultLevel)
	}

	if l.Format() != DefaultFormat {
		t.Errorf("Format() = %v, want %v", l.Format(), DefaultFormat)
	}

	if l.caller != DefaultCaller || l.pretty != DefaultPretty {
		t.Errorf("caller, pretty = %v, %v, want %v, %v",
			l.caller, l.pretty, DefaultCaller, DefaultPretty)
	}
}

func TestLogger_Levels(t *testing.T) {
	logAt := map[Level]func(Logger){
		LevelTrace: func(l Logger) { l.Trace("parsed") },
		LevelDebug: func(l Logger) { l.Debug("parsed") },
		LevelInfo:  func(l Logger) { l.Info("parsed") },
		LevelWarn:  func(l Logger) { l.Warn("parsed") },
		LevelError: func(l Logger) { l.Error("parsed") },
	}

	for _, min := range levels {
		for _, at := range levels {
			rec := record(t, logAt[at], WithLevel(min))

			if written := rec != nil; written != (at >= min) {
				t.Errorf("level %v at minimum %v: written = %v", at, min, written)

				continue
			}

			if rec != nil && rec["level"] != strings.ToUpper(at.String()) {
				t.Errorf("level field = %v, want %s", rec["level"], strings.ToUpper(at.String()))
			}
		}
	}
}

func TestLogger_ContextMethods(t *testing.T) {
	ctx := t.Context()

	for name, fn := range map[string]func(Logger){
		"TRACE": func(l Logger) { l.TraceContext(ctx, "m") },
		"DEBUG": func(l Logger) { l.DebugContext(ctx, "m") },
		"INFO":  func(l Logger) { l.InfoContext(ctx, "m") },
		"WARN":  func(l Logger) { l.WarnContext(ctx, "m") },
		"ERROR": func(l Logger) { l.ErrorContext(ctx, "m") },
	} {
		rec := record(t, fn, WithLevel(LevelTrace))
		if rec == nil || rec["level"] != name {
			t.Errorf("%s: record = %v", name, rec)
		}
	}
}

func TestLogger_Attrs(t *testing.T) {
	rec := record(t, func(l Logger) {
		l.With(slog.String("result", "r1")).Info("rendered", slog.Int("sentences", 2))
	})

	if rec["result"] != "r1" || rec["sentences"] != float64(2) || rec["msg"] != "rendered" {
		t.Errorf("record = %v", rec)
	}
}

func TestLogger_Caller(t *testing.T) {
	rec := record(t, func(l Logger) { l.Info("here") }, WithCaller(true))

	src, ok := rec[slog.SourceKey].(map[string]any)
	if !ok {
		t.Fatalf("record has no source: %v", rec)
	}

	if file, _ := src["file"].(string); !strings.HasSuffix(file, "log_test.go") {
		t.Errorf("source file = %q, want the calling test file", file)
	}
}

func TestLogger_TimeLayout(t *testing.T) {
	if rec := record(t, func(l Logger) { l.Info("x") }, WithTimeLayout("none")); rec != nil {
		if _, ok := rec[slog.TimeKey]; ok {
			t.Errorf("time present with layout none: %v", rec)
		}
	}

	rec := record(t, func(l Logger) { l.Info("x") }, WithTimeLayout("2006"))
	if s, _ := rec[slog.TimeKey].(string); len(s) != 4 {
		t.Errorf("time = %v, want a four digit year", rec[slog.TimeKey])
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithLevel(LevelWarn), WithPretty(false))
	wrapped := base.Wrap(WithLevel(LevelDebug), WithFormat(FormatText))

	if base.Level() != LevelWarn || base.Format() != FormatJSON {
		t.Errorf("base changed to %v %v", base.Level(), base.Format())
	}

	if wrapped.Level() != LevelDebug || wrapped.Format() != FormatText {
		t.Errorf("wrapped = %v %v, want debug text", wrapped.Level(), wrapped.Format())
	}

	wrapped.Debug("scope opened")

	if out := buf.String(); !strings.Contains(out, "msg=\"scope opened\"") {
		t.Errorf("wrapped logger output = %q", out)
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	l.Info("dropped")
	l.ErrorContext(t.Context(), "dropped")

	if l.With(slog.Int("n", 1)).Logger != nil {
		t.Error("With on a zero Logger should stay zero")
	}

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Errorf("zero Logger reports %v %v", l.Level(), l.Format())
	}
}

func TestLogger_Concurrent(t *testing.T) {
	var (
		buf bytes.Buffer
		mu  sync.Mutex
		wg  sync.WaitGroup
	)

	l := Make(writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()

		return buf.Write(p)
	}), WithPretty(false))

	for i := range 8 {
		wg.Go(func() {
			l.With(slog.Int("worker", i)).Info("tick")
			_ = l.Wrap(WithLevel(LevelDebug)).Level()
		})
	}

	wg.Wait()

	if n := strings.Count(buf.String(), "tick"); n != 8 {
		t.Errorf("logged %d records, want 8", n)
	}
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

func BenchmarkLogger_Info(b *testing.B) {
	l := Make(nil, WithPretty(false))

	for b.Loop() {
		l.Info("rendered", slog.Int("sentences", 3))
	}
}
