package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeSources writes each name=content pair into dir and returns the paths.
func writeSources(t *testing.T, dir string, files map[string]string) map[string]string {
	t.Helper()

	paths := make(map[string]string, len(files))

	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		paths[name] = path
	}

	return paths
}

func TestSources_ReadAll(t *testing.T) {
	dir := t.TempDir()
	paths := writeSources(t, dir, map[string]string{
		"a.ams":     "a",
		"b.ams":     "b;\n",
		"empty.ams": "",
	})

	link := filepath.Join(dir, "link.ams")
	if err := os.Symlink(paths["a.ams"], link); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		names []string
		stdin string
		want  string
	}{
		{name: "none", want: ""},
		{name: "single file gets separator", names: []string{paths["a.ams"]}, want: "a;"},
		{name: "existing separator kept", names: []string{paths["b.ams"]}, want: "b;\n"},
		{name: "files in order", names: []string{paths["b.ams"], paths["a.ams"]}, want: "b;\na;"},
		{name: "duplicate path", names: []string{paths["a.ams"], paths["a.ams"]}, want: "a;"},
		{name: "symlink duplicate", names: []string{link, paths["a.ams"]}, want: "a;"},
		{name: "empty file", names: []string{paths["empty.ams"], paths["a.ams"]}, want: "a;"},
		{name: "missing file skipped", names: []string{filepath.Join(dir, "nope"), paths["a.ams"]}, want: "a;"},
		{name: "stdin last", names: []string{"-", paths["a.ams"]}, stdin: "s", want: "a;s;"},
		{name: "stdin collapsed", names: []string{"-", "-"}, stdin: "s;", want: "s;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSources(tt.names...).ReadAll(strings.NewReader(tt.stdin))
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}

			if got != tt.want {
				t.Errorf("ReadAll = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSources_RelativeDuplicate(t *testing.T) {
	dir := t.TempDir()
	paths := writeSources(t, dir, map[string]string{"x.ams": "x"})

	t.Chdir(dir)

	s := NewSources("x.ams", paths["x.ams"])
	if got := len(s.Paths()); got != 1 {
		t.Errorf("len(Paths()) = %d, want 1", got)
	}
}

func TestSources_Merge(t *testing.T) {
	dir := t.TempDir()
	paths := writeSources(t, dir, map[string]string{"a.ams": "a", "b.ams": "b"})

	var global *Sources

	merged := global.Merge(NewSources(paths["b.ams"], "-")).Merge(NewSources(paths["a.ams"], paths["b.ams"]))

	if got := merged.Paths(); len(got) != 2 || filepath.Base(got[0]) != "b.ams" || filepath.Base(got[1]) != "a.ams" {
		t.Errorf("Paths() = %v, want [b.ams a.ams]", got)
	}

	if !merged.Stdin() {
		t.Error("merged sources lost stdin")
	}

	if !global.IsZero() || merged.IsZero() {
		t.Error("IsZero mismatch")
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestSources_ReadError(t *testing.T) {
	_, err := NewSources("-").ReadAll(errReader{})
	if !errors.Is(err, ErrReadSource) {
		t.Errorf("ReadAll error = %v, want %v", err, ErrReadSource)
	}
}

func TestReadSource_DefaultsToStdin(t *testing.T) {
	ctx := WithStreams(t.Context(), Streams{In: strings.NewReader("piped")})

	got, err := readSource(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}

	if got != "piped;" {
		t.Errorf("readSource = %q, want %q", got, "piped;")
	}
}
