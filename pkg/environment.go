package cinder

import "sort"

// Environment is one lexical scope. Lookups and assignments walk the parent
// chain; definitions always land in the receiver.
type Environment struct {
	values map[string]Value
	parent *Environment
	depth  int
}

func NewEnvironment(parent *Environment) *Environment {
	env := &Environment{
		values: make(map[string]Value),
		parent: parent,
	}

	if parent != nil {
		env.depth = parent.depth + 1
	}

	return env
}

func (e *Environment) Parent() *Environment {
	return e.parent
}

// Depth is the number of scopes between e and the root.
func (e *Environment) Depth() int {
	return e.depth
}

// Define binds name in this scope. It reports false if the name is already
// bound here; bindings in enclosing scopes are shadowed.
func (e *Environment) Define(name string, val Value) bool {
	if _, ok := e.values[name]; ok {
		return false
	}

	e.values[name] = val
	return true
}

// Has reports whether name is bound in this scope, ignoring parents.
func (e *Environment) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Lookup resolves name to its innermost binding.
func (e *Environment) Lookup(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, true
		}
	}

	return Value{}, false
}

// Assign updates the scope where name is bound. It reports false when the
// name is not bound anywhere in the chain.
func (e *Environment) Assign(name string, val Value) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = val
			return true
		}
	}

	return false
}

// Names returns the names bound in this scope in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for k := range e.values {
		names = append(names, k)
	}

	sort.Strings(names)
	return names
}
