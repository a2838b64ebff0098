package lang

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "empty", src: "", want: ""},
		{name: "only whitespace", src: " \t\r\n ", want: ""},
		{name: "collapse between text", src: "hello   world", want: "hello world"},
		{name: "mixed whitespace", src: "a\t\r\nb", want: "a b"},
		{name: "trim ends", src: "  a  ", want: "a"},
		{name: "around invoke", src: `\x : y`, want: `\x:y`},
		{name: "around braces", src: "{ a ; b }", want: "{a;b}"},
		{name: "multi-line", src: "\\a:1;\n\\b:2;\n", want: `\a:1;\b:2;`},
		{name: "no symbols untouched", src: "a b c", want: "a b c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.src); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, src := range []string{
		"  x  y ;  { a ; b }  ",
		"\\a :\n{\n  b;\n  c\n}\n",
		"plain text",
	} {
		once := Normalize(src)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", src, twice, once)
		}
	}
}
