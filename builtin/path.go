package builtin

import (
	"os"
	"path/filepath"

	"github.com/ardnew/mung"

	"github.com/ardnew/ams/lang"
)

// Path returns the members of [PathNamespace].
//
// The list builtins take a Paragraph argument: the first sentence is the
// list being edited, written with the host's list separator, and every
// following sentence holds whitespace-separated items. A single-sentence
// argument is split on whitespace instead, its first field being the list.
func Path() Namespace {
	return Namespace{
		"prefix": lang.NewBuiltin(
			"prefix",
			"prepend items to a path list, removing duplicates",
			lang.BuiltinFunc{
				Invoke: func(arg *lang.Node, scope lang.Scope) *lang.Node {
					subject, prefix := listArgs(arg, scope)

					return lang.NewText(mungPrefix(subject, prefix...))
				},
			},
		),
		"prefixif": lang.NewBuiltin(
			"prefixif",
			"prepend items that exist on disk to a path list",
			lang.BuiltinFunc{
				Invoke: func(arg *lang.Node, scope lang.Scope) *lang.Node {
					subject, prefix := listArgs(arg, scope)

					return lang.NewText(mungPrefixIf(subject, fileExists, prefix...))
				},
			},
		),
		"abs":  textFunc("abs", "absolute form of the argument path", pathAbs),
		"base": textFunc("base", "last element of the argument path", filepath.Base),
		"dir":  textFunc("dir", "all but the last element of the argument path", filepath.Dir),
		"cat": lang.NewBuiltin(
			"cat",
			"join the argument's items into one path",
			lang.BuiltinFunc{
				Invoke: func(arg *lang.Node, scope lang.Scope) *lang.Node {
					return lang.NewText(filepath.Join(fields(items(arg, scope)...)...))
				},
			},
		),
	}
}

func listArgs(arg *lang.Node, scope lang.Scope) (subject string, prefix []string) {
	texts := items(arg, scope)
	if len(texts) > 1 {
		return texts[0], fields(texts[1:]...)
	}

	f := fields(texts...)
	if len(f) == 0 {
		return "", nil
	}

	return f[0], f[1:]
}

func mungPrefix(subject string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

func mungPrefixIf(
	subject string,
	predicate func(string) bool,
	prefix ...string,
) string {
	return mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(predicate),
	).String()
}
