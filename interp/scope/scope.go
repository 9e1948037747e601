// Package scope implements the two independent name-resolution chains the
// evaluator walks: the variable scope (names -> values) and the
// procedure scope (names -> callables, long-lived on the Interpreter).
// Both are instances of the same generic Scope type; callers must not
// conflate the two chains, per spec — a Scope[value.Value] and a
// Scope[Proc] are distinct Go types, so mixing them up is a compile
// error rather than a runtime bug.
package scope

// Binding is a one-slot mutable cell. Names are bound through Bindings,
// rather than stored directly in the Scope map, so that `global` can
// install the same cell into two different scopes and have writes
// through either one observed by the other.
type Binding[V any] struct {
	Val V
}

// Scope is a chain of name -> Binding mappings with a parent pointer.
type Scope[V any] struct {
	parent *Scope[V]
	vars   map[string]*Binding[V]
}

// New returns a fresh scope parented to parent. A nil parent makes the
// returned scope a root.
func New[V any](parent *Scope[V]) *Scope[V] {
	return &Scope[V]{parent: parent, vars: map[string]*Binding[V]{}}
}

// Parent returns s's parent scope, or nil if s is a root.
func (s *Scope[V]) Parent() *Scope[V] { return s.parent }

// Root walks up the parent chain and returns the outermost scope.
func (s *Scope[V]) Root() *Scope[V] {
	cur := s
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Get looks up name by walking the scope chain from s outward. It
// returns ok=false if no scope in the chain binds name.
func (s *Scope[V]) Get(name string) (V, bool) {
	b, ok := s.GetBinding(name)
	if !ok {
		var zero V
		return zero, false
	}
	return b.Val, true
}

// GetBinding returns the Binding record bound to name in the chain
// starting at s, or ok=false if none exists.
func (s *Scope[V]) GetBinding(name string) (*Binding[V], bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.vars[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// Set updates the binding for name in place if it already exists
// anywhere in the chain; otherwise it creates a new binding for name in
// the root scope (an implicit global), per spec. Set never shadows an
// existing binding with a new one, so a subsequent Get from any
// descendant scope observes the new value.
func (s *Scope[V]) Set(name string, v V) {
	if b, ok := s.GetBinding(name); ok {
		b.Val = v
		return
	}
	s.Root().bindValue(name, v)
}

// Bind installs an existing Binding under name in s directly, shadowing
// any binding of the same name in a parent scope.
func (s *Scope[V]) Bind(name string, b *Binding[V]) {
	s.vars[name] = b
}

// BindValue creates a fresh Binding holding v and installs it under name
// in s, shadowing any parent binding of the same name.
func (s *Scope[V]) BindValue(name string, v V) {
	s.bindValue(name, v)
}

func (s *Scope[V]) bindValue(name string, v V) {
	s.vars[name] = &Binding[V]{Val: v}
}

// BindValues is bulk registration: each entry is installed as a fresh
// binding in s. Used to install builtins and embedder-supplied APIs into
// the procedure scope in one call.
func (s *Scope[V]) BindValues(values map[string]V) {
	for name, v := range values {
		s.bindValue(name, v)
	}
}
