package builtin

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/expr-lang/expr"

	"github.com/ardnew/ams/lang"
)

// ExprStopID is the ID of the Stop produced when an expression fails to
// compile or run.
const ExprStopID = ExprNamespace

// Expr returns the members of [ExprNamespace].
func Expr() Namespace {
	return Namespace{
		"eval": lang.NewBuiltin(
			"eval",
			"evaluate the argument text as an expr-lang expression",
			lang.BuiltinFunc{
				Invoke: func(arg *lang.Node, scope lang.Scope) *lang.Node {
					return eval(lang.Arg(arg, scope), scope)
				},
			},
		),
	}
}

// eval compiles and runs source with every binding visible from scope in
// its environment.
func eval(source string, scope lang.Scope) *lang.Node {
	if strings.TrimSpace(source) == "" {
		return lang.Null()
	}

	env := makeEnvCache()
	for name, value := range scope.Visible() {
		env[name] = exemplar(value.Literal())
	}

	program, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return exprStop("compile", err)
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return exprStop("run", err)
	}

	if out == nil {
		return lang.Null()
	}

	return lang.NewText(fmt.Sprint(out))
}

func exprStop(phase string, err error) *lang.Node {
	return lang.NewStop(
		ExprStopID,
		lang.NewStackTrace(ExprNamespace, phase, err.Error()),
	)
}

// exemplar converts literal text to the expression type it spells, so that
// bound numbers and booleans can be used in arithmetic and conditions.
func exemplar(text string) any {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return int(i)
	}

	// ParseFloat also accepts spellings such as "inf" and "NaN", which stay
	// text.
	if digitLed(text) {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return f
		}
	}

	switch text {
	case "true":
		return true
	case "false":
		return false
	}

	return text
}

// digitLed reports whether s starts with a digit, after an optional sign and
// decimal point.
func digitLed(s string) bool {
	s = strings.TrimLeft(s, "+-")
	s = strings.TrimPrefix(s, ".")

	return s != "" && '0' <= s[0] && s[0] <= '9'
}

// Private singleton cache.
//
//nolint:gochecknoglobals
var (
	envCacheOnce sync.Once
	envCache     map[string]any
)

// makeEnvCache returns a clone of the lazily-initialized environment holding
// the host functions available to every expression. The caller may modify
// the returned map.
func makeEnvCache() map[string]any {
	envCacheOnce.Do(func() {
		envCache = map[string]any{
			"target":   getTarget().String(),
			"platform": getPlatform().OS + "/" + getPlatform().Arch,
			"hostname": getHostname(),
			"shell":    getShell(),
			"cwd":      getCwd,
			"env":      os.Getenv,
			"file": map[string]any{
				"exists":    fileExists,
				"isDir":     fileIsDir,
				"isRegular": fileIsRegular,
				"isSymlink": fileIsSymlink,
			},
			"path": map[string]any{
				"abs": pathAbs,
				"cat": filepath.Join,
				"rel": pathRel,
			},
			"mung": map[string]any{
				"prefix":   mungPrefix,
				"prefixif": mungPrefixIf,
			},
		}
	})

	return maps.Clone(envCache)
}

func pathRel(from, to string) string {
	p, err := filepath.Rel(pathAbs(from), pathAbs(to))
	if err != nil {
		return filepath.Join(from, to)
	}

	return p
}
