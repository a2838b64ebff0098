package lang

import "testing"

func TestScanner_ReadUntil(t *testing.T) {
	s := NewScanner("abc;def")

	value, term := s.ReadUntil(";")
	if value != "abc" || term != ";" {
		t.Errorf("first read = (%q, %q), want (%q, %q)", value, term, "abc", ";")
	}

	value, term = s.ReadUntil(";")
	if value != "def" || term != "" {
		t.Errorf("second read = (%q, %q), want (%q, %q)", value, term, "def", "")
	}

	if s.HasNext() {
		t.Error("scanner should be exhausted")
	}
}

func TestScanner_Next(t *testing.T) {
	s := NewScanner("ab")

	for _, want := range []string{"a", "b", "", ""} {
		if got := s.Next(); got != want {
			t.Errorf("Next() = %q, want %q", got, want)
		}
	}
}

func TestScanner_ReadUntilNested(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		set        string
		stopOnOpen bool
		nested     bool
		wantValue  string
		wantTerm   string
		wantRest   string
	}{
		{
			name:      "separator outside nest",
			src:       "a{b;c};d",
			set:       ";",
			wantValue: "a{b;c}",
			wantTerm:  ";",
			wantRest:  "d",
		},
		{
			name:      "deep nest kept verbatim",
			src:       `a{b{\c:d}};e`,
			set:       ";",
			wantValue: `a{b{\c:d}}`,
			wantTerm:  ";",
			wantRest:  "e",
		},
		{
			name:       "stop on open",
			src:        "ab{c}",
			set:        `\:`,
			stopOnOpen: true,
			wantValue:  "ab",
			wantTerm:   "{",
			wantRest:   "c}",
		},
		{
			name:      "nested read ends at matching close",
			src:       "x{y}z}rest",
			set:       `\:`,
			nested:    true,
			wantValue: "x{y}z",
			wantTerm:  "}",
			wantRest:  "rest",
		},
		{
			name:      "stray close at depth zero",
			src:       "ab}c",
			set:       ";",
			wantValue: "ab",
			wantTerm:  "}",
			wantRest:  "c",
		},
		{
			name:      "unbalanced open consumes input",
			src:       "a{b;c",
			set:       ";",
			wantValue: "a{b;c",
			wantTerm:  "",
			wantRest:  "",
		},
		{
			name:      "empty input",
			src:       "",
			set:       ";",
			wantValue: "",
			wantTerm:  "",
			wantRest:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner(tt.src)

			value, term := s.ReadUntilNested(tt.set, nestPair, tt.stopOnOpen, tt.nested)
			if value != tt.wantValue {
				t.Errorf("value = %q, want %q", value, tt.wantValue)
			}

			if term != tt.wantTerm {
				t.Errorf("term = %q, want %q", term, tt.wantTerm)
			}

			if rest := s.ReadAll(); rest != tt.wantRest {
				t.Errorf("rest = %q, want %q", rest, tt.wantRest)
			}
		})
	}
}

func BenchmarkScanner_ReadUntilNested(b *testing.B) {
	src := `\a:{b;{c;d};\e:f};\g:h;{i;{j;{k}}}`

	for i := 0; i < b.N; i++ {
		s := NewScanner(src)
		for s.HasNext() {
			s.ReadUntilNested(sentenceEnd, nestPair, false, false)
		}
	}
}
