package bindings

import (
	"fmt"
	"maps"
)

// Variables is the capability interface engines use to read and write script
// variables during one execution. It is the interpreter's sole view of the
// host's scopes; implementations decide how names resolve across them.
type Variables interface {
	Get(name string) (any, bool)
	Put(name string, value any) (any, bool)
	Remove(name string) (any, bool)
	Has(name string) bool
	Len() int
	Keys() []string
	Snapshot() map[string]any
}

// ScopeBridge presents an ExecutionContext's scope chain as a single flat
// variable namespace. It owns no data; it is a resolution policy constructed
// per evaluation and discarded when execution returns.
//
// Resolution is asymmetric on purpose, matching the host-context bridging
// contract this type implements:
//
//   - Get, Put and Remove consult the whole chain (local before global).
//   - Has, Len, Keys, Values, Entries, Clear and SetAll operate on the local
//     scope only, so enumeration does not reflect every visible name.
//
// Whether the enumeration restriction was intent or oversight in the original
// contract is unknowable from behavior alone; it is preserved here rather
// than fixed. See DESIGN.md.
type ScopeBridge struct {
	ctx *ExecutionContext
}

// NewScopeBridge creates a bridge over the provided ExecutionContext. The
// bridge holds a non-owning reference for the duration of one evaluation.
func NewScopeBridge(ctx *ExecutionContext) *ScopeBridge {
	return &ScopeBridge{ctx: ctx}
}

func (s *ScopeBridge) String() string {
	return fmt.Sprintf("ScopeBridge{%s}", s.ctx)
}

// Get returns the value from the most-local scope holding name. A miss is a
// normal outcome, reported through the bool, never an error.
func (s *ScopeBridge) Get(name string) (any, bool) {
	return s.ctx.Attribute(name)
}

// Put updates name in the most-local scope that already holds it, preserving
// where the variable lives; a name absent from every scope is created in the
// local scope. Returns the value replaced, if any.
func (s *ScopeBridge) Put(name string, value any) (any, bool) {
	scope, found := s.ctx.AttributeScope(name)
	if !found {
		scope = LocalScope
	}
	return s.ctx.Bindings(scope).Put(name, value)
}

// Remove deletes name from the nearest scope holding it. Only that one entry
// is removed even when the name exists in several scopes; a miss is a no-op.
func (s *ScopeBridge) Remove(name string) (any, bool) {
	scope, found := s.ctx.AttributeScope(name)
	if !found {
		return nil, false
	}
	return s.ctx.RemoveAttribute(name, scope)
}

// Has reports whether the local scope holds name. Local scope only.
func (s *ScopeBridge) Has(name string) bool {
	return s.ctx.Bindings(LocalScope).Has(name)
}

// Len returns the local scope's binding count. Local scope only.
func (s *ScopeBridge) Len() int {
	return s.ctx.Bindings(LocalScope).Len()
}

// Keys returns the local scope's names in sorted order. Local scope only.
func (s *ScopeBridge) Keys() []string {
	return s.ctx.Bindings(LocalScope).Keys()
}

// Values returns the local scope's values. Local scope only.
func (s *ScopeBridge) Values() []any {
	return s.ctx.Bindings(LocalScope).Values()
}

// Entries returns a copy of the local scope's bindings. Local scope only.
func (s *ScopeBridge) Entries() map[string]any {
	return maps.Clone(s.ctx.Bindings(LocalScope))
}

// Clear empties the local scope. The global scope is untouched.
func (s *ScopeBridge) Clear() {
	s.ctx.Bindings(LocalScope).Clear()
}

// SetAll replaces the local scope's contents with the supplied bindings,
// keeping the container identity. The global scope is untouched.
func (s *ScopeBridge) SetAll(data map[string]any) {
	local := s.ctx.Bindings(LocalScope)
	local.Clear()
	maps.Copy(local, data)
}

// Snapshot materializes the merged namespace with local precedence. It exists
// for engines that cannot resolve names lazily and must seed their
// environment up front; it is not part of the enumeration contract above.
func (s *ScopeBridge) Snapshot() map[string]any {
	merged := make(map[string]any, s.ctx.Bindings(GlobalScope).Len()+s.ctx.Bindings(LocalScope).Len())
	maps.Copy(merged, s.ctx.Bindings(GlobalScope))
	maps.Copy(merged, s.ctx.Bindings(LocalScope))
	return merged
}

var _ Variables = (*ScopeBridge)(nil)
