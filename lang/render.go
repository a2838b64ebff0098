package lang

import "strings"

// Placeholders written by the plain-text renderer.
const (
	NullMarker     = "[NULL]"
	InvokerMarker  = "[invoker]:"
	refMarkerStart = "[ref\\"
	builtinMarker  = "[builtin\\"
)

// Element is one node of the tagged-tree rendering.
type Element struct {
	Attrs    map[string]string `json:"attrs"          yaml:"attrs"`
	Text     *string           `json:"text,omitempty" yaml:"text,omitempty"`
	TagName  string            `json:"tagName"        yaml:"tagName"`
	Children []Element         `json:"children"       yaml:"children"`
}

func newElement(tag string) Element {
	return Element{
		TagName:  tag,
		Attrs:    map[string]string{},
		Children: []Element{},
	}
}

func textElement(text string) Element {
	e := newElement("span")
	e.Text = &text

	return e
}

// Renderer turns a parsed root into an output value. It also returns the
// Stop that ended evaluation, if any.
type Renderer[T any] func(root *Node, scope Scope) (T, *Node)

// render carries the first Stop met while rendering.
type render struct {
	stop *Node
}

func (r *render) stopped(n *Node) {
	if r.stop == nil {
		r.stop = n
	}
}

// PlainText renders n as text in scope.
func (n *Node) PlainText(scope Scope) string {
	var r render

	return r.text(n, scope)
}

// Element renders n as a tagged tree in scope.
func (n *Node) Element(scope Scope) Element {
	var r render

	return r.element(n, scope)
}

// PlainTextRenderer is the [Renderer] behind [NewPlainTextExecutor].
func PlainTextRenderer(root *Node, scope Scope) (string, *Node) {
	var r render

	out := r.text(root, scope)

	return out, r.stop
}

// ElementRenderer is the [Renderer] behind [NewElementExecutor].
func ElementRenderer(root *Node, scope Scope) (Element, *Node) {
	var r render

	out := r.element(root, scope)

	return out, r.stop
}

func (r *render) text(n *Node, scope Scope) string {
	switch n.Kind() {
	case KindNull:
		return NullMarker

	case KindText:
		return n.value

	case KindVariable:
		return refMarkerStart + n.value + "]"

	case KindBuiltin:
		return builtinMarker + n.value + "]"

	case KindInvoker:
		if n.Len() == 0 {
			return InvokerMarker
		}

		return InvokerMarker + r.text(n.First(), scope)

	case KindSentence:
		return r.text(n.InvokeFinal(scope), scope)

	case KindParagraph:
		reduced := n.InvokeFinal(scope)
		if reduced.IsStop() {
			r.stopped(reduced)

			return ""
		}

		var buf strings.Builder
		for _, c := range reduced.Children() {
			buf.WriteString(r.text(c, scope))
		}

		return buf.String()

	case KindStop:
		r.stopped(n)
	}

	return ""
}

func (r *render) element(n *Node, scope Scope) Element {
	switch n.Kind() {
	case KindNull:
		return textElement(NullMarker)

	case KindText:
		return textElement(n.value)

	case KindVariable:
		return textElement(refMarkerStart + n.value + "]")

	case KindBuiltin:
		return textElement(builtinMarker + n.value + "]")

	case KindInvoker:
		e := newElement("span")
		if n.Len() > 0 {
			e.Children = append(e.Children, r.element(n.First(), scope))
		}

		return e

	case KindSentence:
		return r.element(n.InvokeFinal(scope), scope)

	case KindParagraph:
		reduced := n.InvokeFinal(scope)
		if reduced.IsStop() {
			return r.element(reduced, scope)
		}

		e := newElement("div")
		for _, c := range reduced.Children() {
			e.Children = append(e.Children, r.element(c, scope))
		}

		return e
	}

	r.stopped(n)

	e := newElement("div")
	e.Attrs["data-stop"] = n.StopID()

	return e
}
