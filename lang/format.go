package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes n as AMS source.
//
// Top-level sentences end with ";" and a newline. With a positive indent,
// the sentences of nested Paragraphs are written one per line inside their
// braces, indented by that many spaces per level; otherwise nested
// Paragraphs are written on one line. Parsing the output yields a tree equal
// to any parsed tree that was formatted.
func Format(w io.Writer, n *Node, indent int) error {
	var buf strings.Builder

	f := formatter{buf: &buf, indent: indent}
	if n.Kind() == KindParagraph {
		f.sentences(n, 0, true)
	} else {
		f.node(n, 0)
	}

	if buf.Len() > 0 {
		buf.WriteByte('\n')
	}

	_, err := io.WriteString(w, buf.String())

	return err
}

type formatter struct {
	buf    *strings.Builder
	indent int
}

func (f formatter) pad(depth int) {
	f.buf.WriteString(strings.Repeat(" ", f.indent*depth))
}

func (f formatter) sentences(p *Node, depth int, top bool) {
	for i, s := range p.Children() {
		if i > 0 {
			f.buf.WriteByte(SymbolSeparator)

			if top || f.indent > 0 {
				f.buf.WriteByte('\n')
			}
		}

		if !top {
			f.pad(depth)
		}

		f.node(s, depth)
	}
}

func (f formatter) node(n *Node, depth int) {
	switch n.Kind() {
	case KindText:
		f.buf.WriteString(n.value)

	case KindVariable, KindBuiltin:
		f.buf.WriteByte(SymbolVariable)
		f.buf.WriteString(n.value)

	case KindInvoker:
		f.buf.WriteByte(SymbolInvoker)

		if n.Len() > 0 {
			f.node(n.First(), depth)
		}

	case KindSentence:
		for _, w := range n.Children() {
			f.node(w, depth)
		}

	case KindParagraph:
		f.buf.WriteByte(SymbolOpen)

		if n.Len() > 0 && f.indent > 0 {
			f.buf.WriteByte('\n')
			f.sentences(n, depth+1, false)
			f.buf.WriteByte('\n')
			f.pad(depth)
		} else {
			f.sentences(n, depth+1, false)
		}

		f.buf.WriteByte(SymbolClose)
	}
}

// Tree is a serializable view of a node and its descendants.
type Tree struct {
	Kind     string `json:"kind"               yaml:"kind"`
	Value    string `json:"value,omitempty"    yaml:"value,omitempty"`
	Children []Tree `json:"children,omitempty" yaml:"children,omitempty"`
}

// TreeOf returns the serializable view of n, materializing every child.
func TreeOf(n *Node) Tree {
	t := Tree{Kind: n.Kind().String(), Value: n.Value()}
	for _, c := range n.Children() {
		t.Children = append(t.Children, TreeOf(c))
	}

	return t
}

// WriteJSON writes v as JSON followed by a newline. A positive indent
// selects multi-line output.
func WriteJSON(w io.Writer, v any, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return ErrMarshal.Wrap(err).With(slog.String("format", "json"))
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// WriteYAML writes v as YAML. A positive indent selects block style with that
// indent; otherwise flow style is used.
func WriteYAML(ctx context.Context, w io.Writer, v any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, v, opts...)
	if err != nil {
		return ErrMarshal.Wrap(err).With(slog.String("format", "yaml"))
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

// Print writes an indented outline of n's structure without materializing
// any pending sentence.
func (n *Node) Print(w io.Writer) {
	n.PrintIndent(w, 0)
}

// PrintIndent is [Node.Print] starting at the given indent level.
func (n *Node) PrintIndent(w io.Writer, indent int) {
	prefix := strings.Repeat("  ", indent)
	put := writer(w)

	switch n.Kind() {
	case KindText:
		put("\n", prefix+"Text", strconv.Quote(n.value))

	case KindVariable:
		put("\n", prefix+"Variable", string(SymbolVariable)+n.value)

	case KindBuiltin:
		put("\n", prefix+"Builtin", n.value)

	case KindStop:
		put("\n", prefix+"Stop", n.value)

	case KindNull:
		put("\n", prefix+"Null")

	case KindInvoker:
		if n.Len() == 0 {
			put("\n", prefix+"Invoker", "(none)")

			return
		}

		put("\n", prefix+"Invoker")
		n.First().PrintIndent(w, indent+1)

	case KindSentence:
		put("\n", prefix+"Sentence")

		for _, c := range n.Children() {
			c.PrintIndent(w, indent+1)
		}

	case KindParagraph:
		put("\n", prefix+"Paragraph")

		for i := range n.Len() {
			if !n.Loaded(i) {
				put("\n", prefix+"  [lazy]", n.slots[i].src)

				continue
			}

			n.Child(i).PrintIndent(w, indent+1)
		}
	}
}

func writer(w io.Writer) func(eol string, item ...string) {
	return func(eol string, item ...string) {
		_, err := io.WriteString(w, strings.Join(item, ": ")+eol)
		if err != nil {
			panic(err)
		}
	}
}
