package lang

import (
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		indent int
		want   string
	}{
		{name: "sentences", src: "a;b", want: "a;\nb\n"},
		{name: "empty", src: "", want: ""},
		{name: "flat paragraph", src: "{ a ; b }", want: "{a;b}\n"},
		{name: "indented paragraph", src: "{a;b}", indent: 2, want: "{\n  a;\n  b\n}\n"},
		{
			name:   "assignment",
			src:    `\x : {a; {b}}`,
			indent: 2,
			want:   "\\x:{\n  a;\n  {\n    b\n  }\n}\n",
		},
		{name: "trailing sigils", src: `\a:`, want: "\\a:\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf strings.Builder

			if err := Format(&buf, Parse(tt.src), tt.indent); err != nil {
				t.Fatalf("Format: %v", err)
			}

			if buf.String() != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.src, buf.String(), tt.want)
			}
		})
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	for _, src := range []string{
		"hello world",
		`\abc:hello;\abc:`,
		`{\abc:hello;\abc:};\abc:`,
		`a{b;{c;\d:e}}f;\g{h}`,
		`\f::x;:y;\z`,
		"a;;b",
	} {
		for _, indent := range []int{0, 2, 4} {
			var buf strings.Builder

			want := Parse(src)
			if err := Format(&buf, want, indent); err != nil {
				t.Fatalf("Format: %v", err)
			}

			if got := Parse(buf.String()); !got.Equal(want) {
				t.Errorf("round trip of %q with indent %d produced %q", src, indent, buf.String())
			}
		}
	}
}

func TestTreeOf(t *testing.T) {
	got := TreeOf(Parse(`\x:y`))

	want := Tree{Kind: "paragraph", Children: []Tree{{
		Kind: "sentence",
		Children: []Tree{
			{Kind: "variable", Value: "x"},
			{Kind: "invoker", Children: []Tree{{Kind: "text", Value: "y"}}},
		},
	}}}

	var gb, wb strings.Builder

	_ = WriteJSON(&gb, got, 0)
	_ = WriteJSON(&wb, want, 0)

	if gb.String() != wb.String() {
		t.Errorf("TreeOf = %s, want %s", gb.String(), wb.String())
	}
}

func TestNode_Print(t *testing.T) {
	root := Parse("a;b")

	var before strings.Builder
	root.Print(&before)

	if want := "Paragraph\n  [lazy]: a\n  [lazy]: b\n"; before.String() != want {
		t.Errorf("Print before access = %q, want %q", before.String(), want)
	}

	root.Child(0)

	var after strings.Builder
	root.Print(&after)

	if want := "Paragraph\n  Sentence\n    Text: \"a\"\n  [lazy]: b\n"; after.String() != want {
		t.Errorf("Print after access = %q, want %q", after.String(), want)
	}
}
