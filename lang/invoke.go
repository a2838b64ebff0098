package lang

// Invoke applies n to arg, the next word of a sentence, in scope.
//
// Text, Invoker and Builtin pass arg through unless they say otherwise. A
// Variable reads its binding when arg has no children and otherwise binds
// itself to the reduced first child of arg. Sentences reduce themselves
// before applying the result to arg, and Paragraphs apply arg to each of
// their sentences in a new child scope. Null and Stop absorb arg.
func (n *Node) Invoke(arg *Node, scope Scope) *Node {
	switch n.Kind() {
	case KindNull, KindStop:
		return n

	case KindText:
		return arg

	case KindVariable:
		first := arg.First()
		if first == nil {
			return scope.Get(n.value)
		}

		value := first.InvokeFinal(scope)
		scope.Set(n.value, value)

		return value

	case KindInvoker:
		if n.Len() == 0 {
			return arg
		}

		return n.First().Invoke(arg, scope)

	case KindSentence:
		return n.InvokeFinal(scope).Invoke(arg, scope)

	case KindParagraph:
		return n.each(scope, func(s *Node, inner Scope) *Node {
			return s.Invoke(arg, inner)
		})

	case KindBuiltin:
		if n.fn.Invoke == nil {
			return arg
		}

		return n.fn.Invoke(arg, scope)
	}

	return arg
}

// InvokeFinal reduces n in scope with no further argument.
//
// A Sentence folds its words from the left, each word invoked with the
// next one, and reduces the result. A Paragraph reduces each sentence in a
// new child scope. Text, Null, Variable and Stop are fixed points.
func (n *Node) InvokeFinal(scope Scope) *Node {
	switch n.Kind() {
	case KindNull:
		if n == nil {
			return Null()
		}

		return n

	case KindText, KindVariable, KindStop:
		return n

	case KindInvoker:
		if n.Len() == 0 {
			return Null()
		}

		return n.First().InvokeFinal(scope)

	case KindSentence:
		if n.Len() == 0 {
			return Null()
		}

		acc := n.First()
		for i := 1; i < n.Len(); i++ {
			acc = acc.Invoke(n.Child(i), scope)
		}

		return acc.InvokeFinal(scope)

	case KindParagraph:
		return n.each(scope, func(s *Node, inner Scope) *Node {
			return s.InvokeFinal(inner)
		})

	case KindBuiltin:
		if n.fn.Final == nil {
			return n
		}

		return n.fn.Final(scope)
	}

	return n
}

// each evaluates every child of a Paragraph in a new child scope and
// collects the results into a new Paragraph. The first Stop result is
// returned as is and the remaining children are not evaluated.
func (n *Node) each(scope Scope, eval func(*Node, Scope) *Node) *Node {
	if limit := scope.MaxDepth(); limit > 0 && scope.Depth() >= limit {
		return NewStop(StopDepth, NewStackTrace("depth", scope.Depth()))
	}

	inner := scope.NewScope()
	out := &Node{kind: KindParagraph, slots: make([]slot, 0, n.Len())}

	for _, child := range n.Children() {
		result := eval(child, inner)
		if result == nil {
			result = Null()
		}

		if result.IsStop() {
			return result
		}

		out.slots = append(out.slots, slot{node: result, loaded: true})
	}

	return out
}

// Declare reduces each top-level sentence of root directly in scope,
// without opening a child scope, so that bindings made by those sentences
// remain in scope. It returns the results in order, stopping early at the
// first Stop, which is returned separately.
func Declare(root *Node, scope Scope) (results []*Node, stop *Node) {
	for _, child := range root.Children() {
		result := child.InvokeFinal(scope)
		if result.IsStop() {
			return results, result
		}

		results = append(results, result)
	}

	return results, nil
}
