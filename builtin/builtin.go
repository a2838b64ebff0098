package builtin

import (
	"maps"
	"slices"
	"strings"

	"github.com/ardnew/ams/lang"
)

// Standard namespace names.
const (
	GrammarNamespace = lang.GrammarNamespace
	TextNamespace    = "ams.text"
	ExprNamespace    = "ams.expr"
	PathNamespace    = "ams.path"
	FileNamespace    = "ams.file"
	SysNamespace     = "ams.sys"
)

// Namespace holds the members of one namespace keyed by name.
type Namespace = map[string]*lang.Node

// Namespaces returns every standard namespace keyed by namespace name.
// Each call returns new maps that the caller may modify.
func Namespaces() map[string]Namespace {
	return map[string]Namespace{
		GrammarNamespace: Grammar(),
		TextNamespace:    Text(),
		ExprNamespace:    Expr(),
		PathNamespace:    Path(),
		FileNamespace:    File(),
		SysNamespace:     Sys(),
	}
}

// Doc describes one builtin.
type Doc struct {
	Namespace string
	Name      string
	Doc       string
}

// Qualified returns the fully qualified name of the builtin.
func (d Doc) Qualified() string { return d.Namespace + "." + d.Name }

// Docs returns the description of every standard builtin, sorted by
// qualified name.
func Docs() []Doc {
	var docs []Doc

	spaces := Namespaces()
	for _, ns := range slices.Sorted(maps.Keys(spaces)) {
		for _, name := range slices.Sorted(maps.Keys(spaces[ns])) {
			docs = append(docs, Doc{
				Namespace: ns,
				Name:      name,
				Doc:       spaces[ns][name].Doc(),
			})
		}
	}

	return docs
}

// textFunc returns a builtin that maps the text of its argument through fn.
func textFunc(name, doc string, fn func(string) string) *lang.Node {
	return lang.NewBuiltin(name, doc, lang.BuiltinFunc{
		Invoke: func(arg *lang.Node, scope lang.Scope) *lang.Node {
			return lang.NewText(fn(lang.Arg(arg, scope)))
		},
	})
}

// valueFunc returns a builtin that yields the result of fn when it ends a
// sentence.
func valueFunc(name, doc string, fn func() string) *lang.Node {
	return lang.NewBuiltin(name, doc, lang.BuiltinFunc{
		Final: func(lang.Scope) *lang.Node {
			return lang.NewText(fn())
		},
	})
}

// boolText formats b the way expressions spell it.
func boolText(b bool) string {
	if b {
		return "true"
	}

	return "false"
}

// items returns the texts held by the reduced argument: one per sentence of
// a Paragraph, or the single literal of anything else.
func items(arg *lang.Node, scope lang.Scope) []string {
	reduced := arg.InvokeFinal(scope)
	if reduced.Kind() != lang.KindParagraph {
		return []string{reduced.Literal()}
	}

	out := make([]string, 0, reduced.Len())
	for _, c := range reduced.Children() {
		out = append(out, c.Literal())
	}

	return out
}

// fields splits each of texts on whitespace and drops empty results.
func fields(texts ...string) []string {
	var out []string
	for _, t := range texts {
		out = append(out, strings.Fields(t)...)
	}

	return out
}
