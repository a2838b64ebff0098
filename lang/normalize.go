package lang

import "strings"

// Reserved symbols of the language.
const (
	SymbolVariable  = '\\'
	SymbolInvoker   = ':'
	SymbolSeparator = ';'
	SymbolOpen      = '{'
	SymbolClose     = '}'

	// Symbols is the set of all reserved symbols.
	Symbols = `{};:\`
)

const (
	nestPair      = "{}"
	wordTerminals = `\:`
	sentenceEnd   = ";"
)

func isSymbol(b byte) bool { return strings.IndexByte(Symbols, b) >= 0 }

func isIgnorable(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	}

	return false
}

// Normalize rewrites src so that layout is irrelevant around symbols.
//
// Each maximal run of whitespace becomes a single space when the characters
// on both sides of it are not symbols, and is deleted otherwise. Leading and
// trailing runs are always deleted.
func Normalize(src string) string {
	var (
		buf     strings.Builder
		ignored bool
	)

	buf.Grow(len(src))

	// A virtual open brace precedes the input so that leading whitespace is
	// dropped.
	last := byte(SymbolOpen)

	for i := range len(src) {
		c := src[i]
		if isIgnorable(c) {
			ignored = true

			continue
		}

		if ignored {
			ignored = false

			if !isSymbol(c) && !isSymbol(last) {
				buf.WriteByte(' ')
			}
		}

		buf.WriteByte(c)

		last = c
	}

	return buf.String()
}
