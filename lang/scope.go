package lang

import (
	"iter"
	"maps"
	"slices"
)

// Scope is a chain of name bindings that evaluation reads and writes.
type Scope interface {
	// Has reports whether name resolves to a binding.
	Has(name string) bool
	// Get returns the value name resolves to, or Null.
	Get(name string) *Node
	// Set binds name in the closest scope of the chain that has it, or in
	// this scope if none does.
	Set(name string, value *Node)
	// SetAsOwn binds name in this scope regardless of the chain.
	SetAsOwn(name string, value *Node)
	// NewScope returns a child of this scope.
	NewScope() Scope
	// Depth is the number of ancestors of this scope.
	Depth() int
	// MaxDepth is the deepest scope that evaluation may open, or zero if
	// unlimited.
	MaxDepth() int
	// Visible returns every binding readable through the chain, closest
	// first. Namespace members are not included.
	Visible() map[string]*Node
}

// VariableMap is a [Scope] holding its own bindings and a reference to its
// parent. Reads fall through to the parent; writes never copy the parent's
// bindings.
type VariableMap struct {
	own    map[string]*Node
	parent *VariableMap
	depth  int
	limit  int
}

// NewVariableMap returns an empty root scope.
func NewVariableMap() *VariableMap {
	return &VariableMap{own: map[string]*Node{}}
}

// VariableMapFrom returns a root scope holding a copy of m.
func VariableMapFrom(m map[string]*Node) *VariableMap {
	vm := NewVariableMap()
	for name, value := range m {
		vm.SetAsOwn(name, value)
	}

	return vm
}

func (m *VariableMap) lookup(name string) (*Node, bool) {
	for s := m; s != nil; s = s.parent {
		if v, ok := s.own[name]; ok {
			return v, true
		}
	}

	return nil, false
}

// Has implements [Scope].
func (m *VariableMap) Has(name string) bool {
	_, ok := m.lookup(name)

	return ok
}

// Get implements [Scope].
func (m *VariableMap) Get(name string) *Node {
	if v, ok := m.lookup(name); ok {
		return v
	}

	return Null()
}

// Set implements [Scope].
func (m *VariableMap) Set(name string, value *Node) {
	if m.parent != nil && m.parent.Has(name) {
		m.parent.Set(name, value)

		return
	}

	m.SetAsOwn(name, value)
}

// SetAsOwn implements [Scope].
func (m *VariableMap) SetAsOwn(name string, value *Node) {
	if value == nil {
		value = Null()
	}

	m.own[name] = value
}

// NewScope implements [Scope].
func (m *VariableMap) NewScope() Scope { return m.child() }

func (m *VariableMap) child() *VariableMap {
	return &VariableMap{
		own:    map[string]*Node{},
		parent: m,
		depth:  m.depth + 1,
		limit:  m.limit,
	}
}

// Depth implements [Scope].
func (m *VariableMap) Depth() int { return m.depth }

// MaxDepth implements [Scope].
func (m *VariableMap) MaxDepth() int { return m.limit }

// SetMaxDepth limits the depth of scopes opened below m. Zero removes the
// limit. Only scopes created after the call inherit the new limit.
func (m *VariableMap) SetMaxDepth(limit int) { m.limit = max(limit, 0) }

// Visible implements [Scope].
func (m *VariableMap) Visible() map[string]*Node {
	vis := map[string]*Node{}

	for s := m; s != nil; s = s.parent {
		for name, value := range s.own {
			if _, ok := vis[name]; !ok {
				vis[name] = value
			}
		}
	}

	return vis
}

// Own returns an iterator over the bindings held by m itself, sorted by
// name.
func (m *VariableMap) Own() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		for _, name := range slices.Sorted(maps.Keys(m.own)) {
			if !yield(name, m.own[name]) {
				return
			}
		}
	}
}
