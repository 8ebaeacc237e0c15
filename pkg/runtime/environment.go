package runtime

import (
	"maps"
	"slices"
)

// Environment is one frame of variable bindings plus the frame it was
// opened inside.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new frame, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Define inserts or overwrites a binding in this frame.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// GetLocal looks the name up in this frame only.
func (e *Environment) GetLocal(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Get retrieves a binding, searching outward through the frame chain.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Assign updates the binding in the nearest frame that holds it. When no
// frame does, the name is defined in this frame.
func (e *Environment) Assign(name string, value Value) {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return
		}
	}
	e.values[name] = value
}

// Snapshot returns a copy of this frame's bindings.
func (e *Environment) Snapshot() map[string]Value {
	return maps.Clone(e.values)
}

// Keys returns this frame's binding names in sorted order.
func (e *Environment) Keys() []string {
	return slices.Sorted(maps.Keys(e.values))
}
