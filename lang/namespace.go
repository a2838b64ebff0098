package lang

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// GrammarNamespace is imported by every root [NamespacedVariable].
const GrammarNamespace = "ams.grammar"

// importName is the variable name whose assignment imports a namespace.
const importName = "import"

// ImportedNamespace is an ordered list of imported namespace names.
// The most recently imported namespace has the highest priority.
type ImportedNamespace struct {
	names []string
}

// NewImportedNamespace returns a list holding names, imported in order.
func NewImportedNamespace(names ...string) *ImportedNamespace {
	in := &ImportedNamespace{}
	for _, name := range names {
		in.Add(name)
	}

	return in
}

// Add imports name, moving it to the highest priority if it is already
// imported.
func (in *ImportedNamespace) Add(name string) {
	in.names = slices.DeleteFunc(in.names, func(s string) bool {
		return s == name
	})
	in.names = append(in.names, name)
}

// Len returns the number of imported namespaces.
func (in *ImportedNamespace) Len() int { return len(in.names) }

// All returns an iterator over the imported names, highest priority first.
func (in *ImportedNamespace) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := len(in.names) - 1; i >= 0; i-- {
			if !yield(in.names[i]) {
				return
			}
		}
	}
}

// NewScope returns a copy of the list that can be extended without
// affecting in.
func (in *ImportedNamespace) NewScope() *ImportedNamespace {
	return &ImportedNamespace{names: slices.Clone(in.names)}
}

// Registry maps namespace names to the scopes holding their members.
//
// A Registry is shared by reference between every [NamespacedVariable]
// derived from the same root. It is not safe for concurrent mutation.
type Registry struct {
	spaces map[string]*VariableMap
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{spaces: map[string]*VariableMap{}}
}

// Add registers (or replaces) the namespace name.
func (r *Registry) Add(name string, members *VariableMap) {
	r.spaces[name] = members
}

// AddMap registers the namespace name with a copy of members.
func (r *Registry) AddMap(name string, members map[string]*Node) {
	r.Add(name, VariableMapFrom(members))
}

// Lookup returns the scope registered as name.
func (r *Registry) Lookup(name string) (*VariableMap, bool) {
	vm, ok := r.spaces[name]

	return vm, ok
}

// Names returns the registered namespace names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.spaces))
}

// NamespacedVariable is a [Scope] that also resolves names through a
// [Registry] of namespaces.
//
// A qualified name "ns.member" reads member from namespace ns. An unqualified
// name that is not bound in the chain is looked up in each imported namespace,
// most recent import first. Assigning to the name "import" imports the
// namespace named by the value's literal text instead of binding a variable.
type NamespacedVariable struct {
	vars     *VariableMap
	parent   *NamespacedVariable
	registry *Registry
	imports  *ImportedNamespace
}

// NewNamespacedVariable returns a root scope over registry that imports
// [GrammarNamespace]. A nil registry is replaced with an empty one.
func NewNamespacedVariable(registry *Registry) *NamespacedVariable {
	if registry == nil {
		registry = NewRegistry()
	}

	return &NamespacedVariable{
		vars:     NewVariableMap(),
		registry: registry,
		imports:  NewImportedNamespace(GrammarNamespace),
	}
}

// Registry returns the namespace table shared by the whole chain.
func (nv *NamespacedVariable) Registry() *Registry { return nv.registry }

// AddNamespace registers a namespace in the shared table.
func (nv *NamespacedVariable) AddNamespace(name string, members *VariableMap) {
	nv.registry.Add(name, members)
}

// AddNamespaces registers each of spaces in the shared table.
func (nv *NamespacedVariable) AddNamespaces(spaces map[string]*VariableMap) {
	for name, members := range spaces {
		nv.registry.Add(name, members)
	}
}

// Import adds name to the import list of this scope.
func (nv *NamespacedVariable) Import(name string) { nv.imports.Add(name) }

// Imports returns an iterator over this scope's imports, highest priority
// first.
func (nv *NamespacedVariable) Imports() iter.Seq[string] {
	return nv.imports.All()
}

// Split separates a qualified name at its last dot.
// An unqualified name has an empty namespace.
func Split(name string) (namespace, member string) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return "", name
	}

	return name[:i], name[i+1:]
}

// guess returns the highest-priority imported namespace holding member.
func (nv *NamespacedVariable) guess(member string) string {
	for name := range nv.imports.All() {
		if vm, ok := nv.registry.Lookup(name); ok && vm.Has(member) {
			return name
		}
	}

	return ""
}

// Resolve returns the namespace member that name refers to.
func (nv *NamespacedVariable) Resolve(name string) (*Node, bool) {
	namespace, member := Split(name)
	if namespace == "" {
		namespace = nv.guess(member)
	}

	vm, ok := nv.registry.Lookup(namespace)
	if !ok {
		return nil, false
	}

	return vm.lookup(member)
}

// Has implements [Scope].
func (nv *NamespacedVariable) Has(name string) bool {
	if nv.vars.Has(name) {
		return true
	}

	_, ok := nv.Resolve(name)

	return ok
}

// Get implements [Scope].
func (nv *NamespacedVariable) Get(name string) *Node {
	if v, ok := nv.vars.lookup(name); ok {
		return v
	}

	if v, ok := nv.Resolve(name); ok {
		return v
	}

	return Null()
}

// Set implements [Scope].
func (nv *NamespacedVariable) Set(name string, value *Node) {
	if name == importName {
		nv.Import(value.Literal())

		return
	}

	if nv.parent != nil && nv.parent.Has(name) {
		nv.parent.Set(name, value)

		return
	}

	nv.vars.SetAsOwn(name, value)
}

// SetAsOwn implements [Scope].
func (nv *NamespacedVariable) SetAsOwn(name string, value *Node) {
	nv.vars.SetAsOwn(name, value)
}

// NewScope implements [Scope]. The child shares the registry and starts with
// a copy of this scope's imports.
func (nv *NamespacedVariable) NewScope() Scope { return nv.Child() }

// Child is [NamespacedVariable.NewScope] with a concrete result type.
func (nv *NamespacedVariable) Child() *NamespacedVariable {
	return &NamespacedVariable{
		vars:     nv.vars.child(),
		parent:   nv,
		registry: nv.registry,
		imports:  nv.imports.NewScope(),
	}
}

// Depth implements [Scope].
func (nv *NamespacedVariable) Depth() int { return nv.vars.Depth() }

// MaxDepth implements [Scope].
func (nv *NamespacedVariable) MaxDepth() int { return nv.vars.MaxDepth() }

// SetMaxDepth limits the depth of scopes opened below nv.
func (nv *NamespacedVariable) SetMaxDepth(limit int) {
	nv.vars.SetMaxDepth(limit)
}

// Visible implements [Scope].
func (nv *NamespacedVariable) Visible() map[string]*Node {
	return nv.vars.Visible()
}

// Own returns an iterator over the bindings held by nv itself, sorted by
// name.
func (nv *NamespacedVariable) Own() iter.Seq2[string, *Node] {
	return nv.vars.Own()
}
