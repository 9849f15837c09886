package bindings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutionContext_AttributeResolution(t *testing.T) {
	t.Parallel()

	t.Run("local wins over global", func(t *testing.T) {
		t.Parallel()
		ctx := NewExecutionContext()
		ctx.SetAttribute("k", "global", GlobalScope)
		ctx.SetAttribute("k", "local", LocalScope)

		v, ok := ctx.Attribute("k")
		require.True(t, ok)
		assert.Equal(t, "local", v)

		scope, found := ctx.AttributeScope("k")
		require.True(t, found)
		assert.Equal(t, LocalScope, scope)
	})

	t.Run("global is consulted when local misses", func(t *testing.T) {
		t.Parallel()
		ctx := NewExecutionContext()
		ctx.SetAttribute("k", "global", GlobalScope)

		v, ok := ctx.Attribute("k")
		require.True(t, ok)
		assert.Equal(t, "global", v)

		scope, found := ctx.AttributeScope("k")
		require.True(t, found)
		assert.Equal(t, GlobalScope, scope)
	})

	t.Run("miss everywhere", func(t *testing.T) {
		t.Parallel()
		ctx := NewExecutionContext()

		_, ok := ctx.Attribute("k")
		assert.False(t, ok)

		_, found := ctx.AttributeScope("k")
		assert.False(t, found)
	})
}

func TestExecutionContext_ScopeContainers(t *testing.T) {
	t.Parallel()

	t.Run("host-supplied containers are used directly", func(t *testing.T) {
		t.Parallel()
		global := NewFrom(map[string]any{"g": 1})
		ctx := NewExecutionContextWith(nil, global)

		v, ok := ctx.Attribute("g")
		require.True(t, ok)
		assert.Equal(t, 1, v)

		// Writes through the context land in the host's container
		ctx.SetAttribute("g2", 2, GlobalScope)
		assert.True(t, global.Has("g2"))
	})

	t.Run("SetBindings swaps a scope container", func(t *testing.T) {
		t.Parallel()
		ctx := NewExecutionContext()
		ctx.SetAttribute("old", 1, LocalScope)

		ctx.SetBindings(LocalScope, NewFrom(map[string]any{"new": 2}))

		_, ok := ctx.Attribute("old")
		assert.False(t, ok)
		v, ok := ctx.Attribute("new")
		require.True(t, ok)
		assert.Equal(t, 2, v)
	})

	t.Run("nil SetBindings installs a fresh container", func(t *testing.T) {
		t.Parallel()
		ctx := NewExecutionContext()
		ctx.SetAttribute("k", 1, LocalScope)
		ctx.SetBindings(LocalScope, nil)
		assert.Equal(t, 0, ctx.Bindings(LocalScope).Len())
	})

	t.Run("remove targets one scope", func(t *testing.T) {
		t.Parallel()
		ctx := NewExecutionContext()
		ctx.SetAttribute("k", "global", GlobalScope)
		ctx.SetAttribute("k", "local", LocalScope)

		prev, removed := ctx.RemoveAttribute("k", GlobalScope)
		require.True(t, removed)
		assert.Equal(t, "global", prev)
		assert.True(t, ctx.Bindings(LocalScope).Has("k"))
	})
}

func TestScope_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "local", LocalScope.String())
	assert.Equal(t, "global", GlobalScope.String())
	assert.Equal(t, "scope(9)", Scope(9).String())
}
