package log

import (
	"slices"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{" debug ", LevelDebug},
		{"Info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"warn+2", Level(6)},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"TEXT", FormatText},
		{" text ", FormatText},
		{"xml", DefaultFormat},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevels_Formats(t *testing.T) {
	if got := slices.Collect(Levels()); !slices.Equal(got, []string{"trace", "debug", "info", "warn", "error"}) {
		t.Errorf("Levels() = %v", got)
	}

	if got := slices.Collect(Formats()); !slices.Equal(got, []string{"json", "text"}) {
		t.Errorf("Formats() = %v", got)
	}

	for name := range Levels() {
		if ParseLevel(name).String() != name {
			t.Errorf("ParseLevel(%q) does not round-trip", name)
		}
	}
}

func TestMakeFormatTimeFunc(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 6, 123456789, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"RFC3339", "2024-03-09T14:05:06Z"},
		{"rfc-3339", "2024-03-09T14:05:06Z"},
		{"RFC3339Nano", "2024-03-09T14:05:06.123456789Z"},
		{"kitchen", "2:05PM"},
		{"ms", "Mar  9 14:05:06.123"},
		{"DateTime", "2024-03-09 14:05:06"},
		{"2006/01/02", "2024/03/09"},
		{"none", ""},
		{"  ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := makeFormatTimeFunc(tt.layout)(at); got != tt.want {
			t.Errorf("layout %q: got %q, want %q", tt.layout, got, tt.want)
		}
	}
}

func BenchmarkFormatTime(b *testing.B) {
	format := makeFormatTimeFunc(DefaultTimeLayout)
	now := time.Now()

	for b.Loop() {
		_ = format(now)
	}
}
