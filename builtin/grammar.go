package builtin

import (
	"strings"

	"github.com/ardnew/ams/lang"
)

// StopID is the ID of the Stop produced by reading the stop builtin.
const StopID = "stop"

// Grammar returns the members of [GrammarNamespace].
func Grammar() Namespace {
	return Namespace{
		"stop": lang.NewBuiltin(
			"stop",
			"end the enclosing paragraphs; the argument text becomes the stop ID",
			lang.BuiltinFunc{
				Invoke: func(arg *lang.Node, scope lang.Scope) *lang.Node {
					id := lang.Arg(arg, scope)
					if id == "" {
						id = StopID
					}

					return newStop(id)
				},
				Final: func(lang.Scope) *lang.Node {
					return newStop(StopID)
				},
			},
		),
		"catch": lang.NewBuiltin(
			"catch",
			"reduce the argument, turning a stop into null",
			lang.BuiltinFunc{
				Invoke: func(arg *lang.Node, scope lang.Scope) *lang.Node {
					r := arg.InvokeFinal(scope)
					if r.IsStop() {
						return lang.Null()
					}

					return r
				},
			},
		),
		"import": lang.NewBuiltin(
			"import",
			"import the namespace named by the argument text",
			lang.BuiltinFunc{
				Invoke: func(arg *lang.Node, scope lang.Scope) *lang.Node {
					scope.Set("import", lang.NewText(lang.Arg(arg, scope)))

					return lang.Null()
				},
			},
		),
		"raw": lang.NewBuiltin(
			"raw",
			"the source text of the argument, unevaluated",
			lang.BuiltinFunc{
				Invoke: func(arg *lang.Node, _ lang.Scope) *lang.Node {
					var src strings.Builder
					if err := lang.Format(&src, lang.NewSentence(arg), 0); err != nil {
						return lang.Null()
					}

					return lang.NewText(strings.TrimSuffix(src.String(), "\n"))
				},
			},
		),
	}
}

func newStop(id string) *lang.Node {
	return lang.NewStop(id, lang.NewStackTrace(GrammarNamespace, "stop", id))
}
