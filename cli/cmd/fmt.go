package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/ams/lang"
)

// Fmt re-emits AMS source in canonical form.
type Fmt struct {
	Source []string `arg:"" help:"AMS source file(s) or '-' for stdin" name:"source" optional:"" type:"existingfile"`

	Indent int `default:"2" help:"Indent width for nested paragraphs (0 keeps them on one line)" short:"n"`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src, err := readSource(ctx, f.Source)
	if err != nil {
		return err
	}

	err = lang.Format(StreamsFrom(ctx).Out, lang.ParseContext(ctx, src), f.Indent)
	if err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("command", "fmt"))
	}

	return nil
}

// Tree prints the parsed structure of AMS source.
type Tree struct {
	Source []string `arg:"" help:"AMS source file(s) or '-' for stdin" name:"source" optional:"" type:"existingfile"`

	Format string `default:"ast" enum:"ast,json,yaml" help:"Output format (${enum})"                   short:"f"`
	Indent int    `default:"2"                       help:"Indent width for json and yaml output" short:"n"`
	Lazy   bool   `help:"Leave unevaluated sentences unparsed in ast output"`
}

// Run executes the tree command.
func (t *Tree) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src, err := readSource(ctx, t.Source)
	if err != nil {
		return err
	}

	root := lang.ParseContext(ctx, src)
	out := StreamsFrom(ctx).Out

	if t.Format == "ast" {
		if !t.Lazy {
			root.Load()
		}

		root.Print(out)

		return nil
	}

	err = writeFormat(ctx, out, lang.TreeOf(root), t.Format, t.Indent)
	if err != nil {
		return WrapError(err).With(slog.String("command", "tree"))
	}

	return nil
}
