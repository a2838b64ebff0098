package cmd

import (
	"strings"
	"testing"
)

func TestFmt(t *testing.T) {
	tests := []struct {
		name   string
		indent int
		src    string
		want   string
	}{
		{name: "flat", src: "  \\a : 1 ; b ", want: "\\a:1;\nb\n"},
		{name: "nested inline", src: `\x{a;b}`, want: "\\x{a;b}\n"},
		{name: "nested indented", indent: 2, src: `\x{a;b}`, want: "\\x{\n  a;\n  b\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Fmt{Indent: tt.indent}

			out, _ := run(t, tt.src, f.Run)
			if out != tt.want {
				t.Errorf("fmt = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestTree(t *testing.T) {
	tests := []struct {
		format string
		want   []string
	}{
		{format: "ast", want: []string{"Paragraph", "Sentence", `Variable: \x`, `Text: "a"`}},
		{format: "json", want: []string{`"kind": "paragraph"`, `"value": "x"`}},
		{format: "yaml", want: []string{"kind: paragraph", "value: x"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			tr := Tree{Format: tt.format, Indent: 2}

			out, _ := run(t, `\x{a}`, tr.Run)
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}

			if strings.Contains(out, "[lazy]") {
				t.Errorf("tree left sentences unparsed:\n%s", out)
			}
		})
	}
}
