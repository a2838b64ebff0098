package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/ams/builtin"
	"github.com/ardnew/ams/lang"
	"github.com/ardnew/ams/log"
)

// Eval evaluates AMS source and prints the rendered result.
type Eval struct {
	Source []string `arg:"" help:"AMS source file(s) or '-' for stdin" name:"source" optional:"" type:"existingfile"`

	Import   []string `help:"Import namespace before evaluation (repeatable)" placeholder:"NS" short:"i"`
	HTML     bool     `help:"Print the tagged element tree instead of plain text"`
	Format   string   `default:"json" enum:"json,yaml" help:"Element tree format (${enum})"`
	Indent   int      `default:"2" help:"Indent width for element tree output"`
	MaxDepth int      `default:"0" help:"Maximum paragraph nesting depth (0 is unlimited)"`
	Trace    bool     `help:"Print the stack trace of an early exit"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src, err := readSource(ctx, e.Source)
	if err != nil {
		return err
	}

	opts := []lang.Option{
		lang.WithLogger(log.Default()),
		lang.WithMaxDepth(e.MaxDepth),
		lang.WithImports(e.Import...),
	}

	root := lang.ParseContext(ctx, src, opts...)
	streams := StreamsFrom(ctx)

	var stop *lang.Node

	if e.HTML {
		var tree lang.Element

		tree, stop = execute(ctx, lang.NewElementExecutor(opts...), root)
		err = writeFormat(ctx, streams.Out, tree, e.Format, e.Indent)
	} else {
		var text string

		text, stop = execute(ctx, lang.NewPlainTextExecutor(opts...), root)
		if _, err = fmt.Fprintln(streams.Out, text); err != nil {
			err = ErrWriteOutput.Wrap(err)
		}
	}

	if err != nil {
		return WrapError(err).With(slog.String("command", "eval"))
	}

	return e.report(streams.Err, stop)
}

// execute runs root on exec with the standard builtin namespaces and returns
// the rendered value and the Stop that ended evaluation early, if any.
func execute[T any](ctx context.Context, exec *lang.Executor[T], root *lang.Node) (T, *lang.Node) {
	exec.AddNamespaces(builtin.Namespaces())

	res := exec.Execute(ctx, root)

	return res.Value(), res.Stop()
}

// report describes an early exit on w.
func (e *Eval) report(w io.Writer, stop *lang.Node) error {
	if stop == nil {
		return nil
	}

	msg := fmt.Sprintf("stopped: %s\n", stop.StopID())
	if trace := stop.TraceString(); e.Trace && trace != "" {
		msg += trace + "\n"
	}

	if _, err := io.WriteString(w, msg); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("command", "eval"))
	}

	return nil
}

// writeFormat writes v to w as JSON or YAML.
func writeFormat(ctx context.Context, w io.Writer, v any, format string, indent int) error {
	switch format {
	case "yaml":
		if err := lang.WriteYAML(ctx, w, v, indent); err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

	default:
		if err := lang.WriteJSON(w, v, indent); err != nil {
			return ErrJSONMarshal.Wrap(err)
		}
	}

	return nil
}
