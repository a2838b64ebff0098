package lang

//go:generate go tool stringer -linecomment -type Kind -output kind_string.go

import (
	"iter"
	"strings"
)

// Kind identifies the variant of a [Node].
type Kind int

// Node variants.
const (
	KindNull      Kind = iota // null
	KindText                  // text
	KindVariable              // variable
	KindInvoker               // invoker
	KindSentence              // sentence
	KindParagraph             // paragraph
	KindBuiltin               // builtin
	KindStop                  // stop
)

// IsWord reports whether k is one of the leaf kinds a Sentence is made of.
func (k Kind) IsWord() bool {
	switch k {
	case KindText, KindVariable, KindInvoker:
		return true
	}

	return false
}

// Node is a single element of a parsed or evaluated tree.
//
// Every variant shares the same representation and is distinguished by its
// [Kind]. The meaning of Value depends on the kind: the literal of a Text,
// the name of a Variable or Builtin, the stop ID of a Stop.
//
// Paragraph children are materialized from source on first access, which
// mutates the Paragraph. A tree must not be used from more than one goroutine
// at a time.
type Node struct {
	fn    BuiltinFunc
	value string
	doc   string
	slots []slot
	trace []StackTrace
	kind  Kind
}

// slot is one child position. A slot that is not loaded holds the source of a
// Sentence that has not been parsed yet.
type slot struct {
	node   *Node
	src    string
	loaded bool
}

// Null returns a new Null node.
func Null() *Node { return &Node{kind: KindNull} }

// Kind returns the variant of n. A nil node is Null.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindNull
	}

	return n.kind
}

// IsNull reports whether n is nil or a Null node.
func (n *Node) IsNull() bool { return n.Kind() == KindNull }

// IsStop reports whether n is a Stop node.
func (n *Node) IsStop() bool { return n.Kind() == KindStop }

// Value returns the literal, name or stop ID carried by n.
func (n *Node) Value() string {
	if n == nil {
		return ""
	}

	return n.value
}

// Doc returns the documentation of a Builtin node.
func (n *Node) Doc() string {
	if n == nil {
		return ""
	}

	return n.doc
}

// Len returns the number of children of n, loaded or not.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}

	return len(n.slots)
}

// Loaded reports whether the child at index i has been materialized.
func (n *Node) Loaded(i int) bool {
	if i < 0 || i >= n.Len() {
		return false
	}

	return n.slots[i].loaded
}

// Child returns the child at index i, parsing it first if needed.
// It returns nil if i is out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= n.Len() {
		return nil
	}

	s := &n.slots[i]
	if !s.loaded {
		s.node = buildSentence(NewScanner(s.src))
		s.src = ""
		s.loaded = true
	}

	return s.node
}

// First returns the first child of n, or nil if it has none.
func (n *Node) First() *Node { return n.Child(0) }

// Children returns an iterator over the children of n in order.
// Iteration can be restarted any number of times.
func (n *Node) Children() iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		for i := range n.Len() {
			if !yield(i, n.Child(i)) {
				return
			}
		}
	}
}

// Load materializes every pending descendant of n and returns n.
func (n *Node) Load() *Node {
	for _, c := range n.Children() {
		c.Load()
	}

	return n
}

// Append adds children to a Paragraph or Sentence and returns n.
// It panics for any other kind.
func (n *Node) Append(children ...*Node) *Node {
	switch n.Kind() {
	case KindParagraph, KindSentence:
	default:
		panic("lang: cannot append children to " + n.Kind().String())
	}

	for _, c := range children {
		if c == nil {
			c = Null()
		}

		n.slots = append(n.slots, slot{node: c, loaded: true})
	}

	return n
}

// Equal reports whether n and o have the same structure.
// Children of both nodes are materialized as needed.
func (n *Node) Equal(o *Node) bool {
	if n.Kind() != o.Kind() {
		return false
	}

	switch n.Kind() {
	case KindNull:
		return true
	case KindText, KindVariable, KindBuiltin, KindStop:
		return n.value == o.value
	case KindInvoker, KindSentence, KindParagraph:
		if n.Len() != o.Len() {
			return false
		}

		for i := range n.Len() {
			if !n.Child(i).Equal(o.Child(i)) {
				return false
			}
		}

		return true
	}

	return false
}

// Literal returns the source-level text of n without evaluating it.
func (n *Node) Literal() string {
	switch n.Kind() {
	case KindText, KindVariable:
		return n.value
	case KindInvoker, KindSentence, KindParagraph:
		var lit strings.Builder
		for _, c := range n.Children() {
			lit.WriteString(c.Literal())
		}

		return lit.String()
	}

	return ""
}

// String returns a short description of n for diagnostics.
func (n *Node) String() string {
	switch n.Kind() {
	case KindText:
		return "text(" + n.value + ")"
	case KindVariable:
		return "variable(" + n.value + ")"
	case KindBuiltin:
		return "builtin(" + n.value + ")"
	case KindStop:
		return "stop(" + n.value + ")"
	}

	return n.Kind().String()
}
