package lang

import (
	"fmt"
	"strings"
)

// StopDepth is the stop ID produced when evaluation would exceed the scope
// depth limit.
const StopDepth = "ams.depth"

// StackTrace is one position recorded on a Stop.
type StackTrace struct {
	Position []any
}

// NewStackTrace returns a StackTrace for the given position elements.
func NewStackTrace(position ...any) StackTrace {
	return StackTrace{Position: position}
}

func (t StackTrace) String() string {
	part := make([]string, len(t.Position))
	for i, p := range t.Position {
		part[i] = fmt.Sprint(p)
	}

	return "\tat (" + strings.Join(part, ":") + ")"
}

// NewStop returns a Stop node with the given ID and traces.
//
// A Stop is never produced by parsing. When a sentence of a Paragraph
// reduces to a Stop, the remaining sentences are skipped and the Stop itself
// becomes the Paragraph's result.
func NewStop(id string, traces ...StackTrace) *Node {
	return &Node{kind: KindStop, value: id, trace: traces}
}

// StopID returns the ID of a Stop node.
func (n *Node) StopID() string {
	if !n.IsStop() {
		return ""
	}

	return n.value
}

// AddTrace appends a trace to a Stop node. It has no effect on other kinds.
func (n *Node) AddTrace(t StackTrace) {
	if n.IsStop() {
		n.trace = append(n.trace, t)
	}
}

// Traces returns the traces recorded on a Stop node.
func (n *Node) Traces() []StackTrace {
	if !n.IsStop() {
		return nil
	}

	return n.trace
}

// TraceString returns the traces of a Stop node, one per line.
func (n *Node) TraceString() string {
	part := make([]string, 0, len(n.Traces()))
	for _, t := range n.Traces() {
		part = append(part, t.String())
	}

	return strings.Join(part, "\n")
}
