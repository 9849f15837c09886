package bindings

import "fmt"

// Scope identifies one tier of an ExecutionContext's attribute store.
// Lower values are more local and take precedence on lookup.
type Scope int

const (
	// LocalScope is the most-specific tier: checked first on lookup and the
	// default write target for newly created variables.
	LocalScope Scope = iota

	// GlobalScope is the broader, lower-precedence tier, consulted only when
	// the local scope lacks a name.
	GlobalScope
)

func (s Scope) String() string {
	switch s {
	case LocalScope:
		return "local"
	case GlobalScope:
		return "global"
	default:
		return fmt.Sprintf("scope(%d)", int(s))
	}
}

// ExecutionContext is the host's two-tier attribute store: an ordered pair of
// named scopes, most-local first. It is created and owned by the host,
// outlives any single evaluation, and may be reused across evaluations.
// Concurrent evaluations sharing one ExecutionContext are the host's to guard.
type ExecutionContext struct {
	local  Bindings
	global Bindings
}

// NewExecutionContext creates an ExecutionContext with fresh, empty local and
// global scopes.
func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{
		local:  New(),
		global: New(),
	}
}

// NewExecutionContextWith creates an ExecutionContext around the provided
// scope containers. Nil containers are replaced with fresh ones, so hosts can
// supply only the tier they care about.
func NewExecutionContextWith(local, global Bindings) *ExecutionContext {
	if local == nil {
		local = New()
	}
	if global == nil {
		global = New()
	}
	return &ExecutionContext{
		local:  local,
		global: global,
	}
}

func (c *ExecutionContext) String() string {
	return fmt.Sprintf("ExecutionContext{local: %d, global: %d}", c.local.Len(), c.global.Len())
}

// ordered returns the scope chain in resolution order, most-local first.
func (c *ExecutionContext) ordered() []Bindings {
	return []Bindings{c.local, c.global}
}

// Bindings returns the container backing the given scope.
func (c *ExecutionContext) Bindings(scope Scope) Bindings {
	switch scope {
	case GlobalScope:
		return c.global
	default:
		return c.local
	}
}

// SetBindings replaces the container backing the given scope. A nil value
// installs a fresh empty container.
func (c *ExecutionContext) SetBindings(scope Scope, b Bindings) {
	if b == nil {
		b = New()
	}
	switch scope {
	case GlobalScope:
		c.global = b
	default:
		c.local = b
	}
}

// Attribute resolves name across the scope chain, returning the value from
// the most-local scope that holds it.
func (c *ExecutionContext) Attribute(name string) (any, bool) {
	for _, scope := range c.ordered() {
		if v, ok := scope.Get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// AttributeScope reports which scope currently holds name, preferring the
// most-local holder when several scopes contain it.
func (c *ExecutionContext) AttributeScope(name string) (Scope, bool) {
	if c.local.Has(name) {
		return LocalScope, true
	}
	if c.global.Has(name) {
		return GlobalScope, true
	}
	return LocalScope, false
}

// SetAttribute binds name to value in the given scope.
func (c *ExecutionContext) SetAttribute(name string, value any, scope Scope) {
	c.Bindings(scope).Put(name, value)
}

// RemoveAttribute deletes name from the given scope, returning the removed
// value if it was present there.
func (c *ExecutionContext) RemoveAttribute(name string, scope Scope) (any, bool) {
	return c.Bindings(scope).Remove(name)
}
