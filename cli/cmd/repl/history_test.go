package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistory_Write(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{name: "append", lines: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "repeat last", lines: []string{"a", "a"}, want: []string{"a"}},
		{name: "move duplicate", lines: []string{"a", "b", "a"}, want: []string{"b", "a"}},
		{name: "skip blank", lines: []string{"a", "  ", ""}, want: []string{"a"}},
		{name: "trim", lines: []string{"  a  "}, want: []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "history.utf8")
			h := NewHistory(path)

			for _, line := range tt.lines {
				if err := h.Write(line); err != nil {
					t.Fatal(err)
				}
			}

			if got := h.Entries(); !slices.Equal(got, tt.want) {
				t.Errorf("Entries() = %v, want %v", got, tt.want)
			}

			reloaded := NewHistory(path)
			if err := reloaded.Load(); err != nil {
				t.Fatal(err)
			}

			if got := reloaded.Entries(); !slices.Equal(got, tt.want) {
				t.Errorf("reloaded Entries() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHistory_GetLine(t *testing.T) {
	h := NewHistory("")
	for _, line := range []string{"a", "b"} {
		if err := h.Write(line); err != nil {
			t.Fatal(err)
		}
	}

	if got, err := h.GetLine(1); err != nil || got != "b" {
		t.Errorf("GetLine(1) = (%q, %v), want (\"b\", nil)", got, err)
	}

	for _, i := range []int{-1, 2} {
		if _, err := h.GetLine(i); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("GetLine(%d) error = %v, want %v", i, err, ErrOutOfBounds)
		}
	}
}

func TestHistory_Load(t *testing.T) {
	dir := t.TempDir()

	if err := NewHistory(filepath.Join(dir, "missing")).Load(); err != nil {
		t.Errorf("Load() of missing file = %v, want nil", err)
	}

	if err := NewHistory(dir).Load(); !errors.Is(err, ErrLoadHistory) {
		t.Errorf("Load() of directory = %v, want %v", err, ErrLoadHistory)
	}

	path := filepath.Join(dir, "history.utf8")
	if err := os.WriteFile(path, []byte("a\n\n  b  \n"), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	if got := h.Entries(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Entries() = %v, want [a b]", got)
	}
}
