package lang

// BuiltinFunc holds the host hooks of a Builtin node. Either hook may be nil.
//
// Invoke receives the next word of the sentence unevaluated; use
// [Node.InvokeFinal] to reduce it and [Node.Literal] to read its text. When
// nil, the argument passes through unchanged.
//
// Final is called when the builtin ends a sentence. When nil, the builtin
// reduces to itself.
type BuiltinFunc struct {
	Invoke func(arg *Node, scope Scope) *Node
	Final  func(scope Scope) *Node
}

// NewBuiltin returns a Builtin node named name.
func NewBuiltin(name, doc string, fn BuiltinFunc) *Node {
	return &Node{kind: KindBuiltin, value: name, doc: doc, fn: fn}
}

// Arg reduces arg in scope and returns the literal text of the result.
// Builtins use it to read their argument as text.
func Arg(arg *Node, scope Scope) string {
	return arg.InvokeFinal(scope).Literal()
}
