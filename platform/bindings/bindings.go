package bindings

import (
	"maps"
	"slices"
)

// Bindings is a single scope's variable store, mapping variable names to
// arbitrary host values. It is the container handed out by
// ScriptEngine.CreateBindings and the building block of an ExecutionContext.
// Bindings are plain maps owned by the host; no locking is performed here.
type Bindings map[string]any

// New creates an empty, independent Bindings container.
func New() Bindings {
	return make(Bindings)
}

// NewFrom creates a Bindings container seeded with a copy of the provided map.
func NewFrom(data map[string]any) Bindings {
	b := make(Bindings, len(data))
	maps.Copy(b, data)
	return b
}

// Get returns the value bound to name, and whether the name is present.
func (b Bindings) Get(name string) (any, bool) {
	v, ok := b[name]
	return v, ok
}

// Put binds name to value, returning the previous value if one was replaced.
func (b Bindings) Put(name string, value any) (any, bool) {
	prev, ok := b[name]
	b[name] = value
	return prev, ok
}

// Remove deletes name, returning the removed value if the name was present.
func (b Bindings) Remove(name string) (any, bool) {
	prev, ok := b[name]
	if ok {
		delete(b, name)
	}
	return prev, ok
}

// Has reports whether name is bound.
func (b Bindings) Has(name string) bool {
	_, ok := b[name]
	return ok
}

// Len returns the number of bound names.
func (b Bindings) Len() int {
	return len(b)
}

// Keys returns the bound names in sorted order.
func (b Bindings) Keys() []string {
	return slices.Sorted(maps.Keys(b))
}

// Values returns the bound values, ordered by their sorted names.
func (b Bindings) Values() []any {
	keys := b.Keys()
	values := make([]any, 0, len(keys))
	for _, k := range keys {
		values = append(values, b[k])
	}
	return values
}

// Clear removes every binding, keeping the underlying map identity so hosts
// holding a reference observe the change.
func (b Bindings) Clear() {
	clear(b)
}

// Clone returns a shallow copy of the bindings.
func (b Bindings) Clone() Bindings {
	return maps.Clone(b)
}
