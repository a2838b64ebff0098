package builtin

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ardnew/ams/lang"
)

// MaxRepeatLen is the largest output, in bytes, that repeat produces. A
// longer result yields Null.
const MaxRepeatLen = 1 << 20

// Text returns the members of [TextNamespace].
func Text() Namespace {
	return Namespace{
		"upper": textFunc("upper", "upper-case the argument text", strings.ToUpper),
		"lower": textFunc("lower", "lower-case the argument text", strings.ToLower),
		"title": textFunc("title", "title-case the argument text", titleCase),
		"trim":  textFunc("trim", "trim surrounding spaces from the argument text", strings.TrimSpace),
		"repeat": lang.NewBuiltin(
			"repeat",
			"repeat text count times, given the argument text \"count text\"",
			lang.BuiltinFunc{
				Invoke: func(arg *lang.Node, scope lang.Scope) *lang.Node {
					count, text, _ := strings.Cut(lang.Arg(arg, scope), " ")

					n, err := strconv.Atoi(count)
					if err != nil || !repeatFits(text, n) {
						return lang.Null()
					}

					return lang.NewText(strings.Repeat(text, n))
				},
			},
		),
	}
}

func repeatFits(text string, n int) bool {
	return n >= 0 && (len(text) == 0 || n <= MaxRepeatLen/len(text))
}

// titleCase uses a new Caser per call since a Caser holds state.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
