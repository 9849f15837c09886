package risor

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-scriptbridge/platform/bindings"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(slog.NewTextHandler(io.Discard, nil))
}

func evalScript(t *testing.T, source string, execCtx *bindings.ExecutionContext) (any, error) {
	t.Helper()
	engine := newTestEngine(t)
	compiled, err := engine.Compile(context.Background(), source)
	require.NoError(t, err, "compilation should succeed for %q", source)
	return compiled.Execute(context.Background(), bindings.NewScopeBridge(execCtx))
}

func TestEngine_Expressions(t *testing.T) {
	t.Parallel()

	t.Run("arithmetic expression returns its value", func(t *testing.T) {
		t.Parallel()
		result, err := evalScript(t, "1 + 1", bindings.NewExecutionContext())
		require.NoError(t, err)
		assert.Equal(t, int64(2), result)
	})

	t.Run("last expression wins", func(t *testing.T) {
		t.Parallel()
		result, err := evalScript(t, "x := 2\nx * 3", bindings.NewExecutionContext())
		require.NoError(t, err)
		assert.Equal(t, int64(6), result)
	})

	t.Run("map result converts to a Go map", func(t *testing.T) {
		t.Parallel()
		result, err := evalScript(t, `{"a": 1, "b": "two"}`, bindings.NewExecutionContext())
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": int64(1), "b": "two"}, result)
	})

	t.Run("builtins are available", func(t *testing.T) {
		t.Parallel()
		result, err := evalScript(t, `len("abc")`, bindings.NewExecutionContext())
		require.NoError(t, err)
		assert.Equal(t, int64(3), result)
	})
}

func TestEngine_Globals(t *testing.T) {
	t.Parallel()

	t.Run("host variables are visible as globals", func(t *testing.T) {
		t.Parallel()
		execCtx := bindings.NewExecutionContext()
		execCtx.SetAttribute("name", "World", bindings.GlobalScope)

		result, err := evalScript(t, `"Hello, " + name + "!"`, execCtx)
		require.NoError(t, err)
		assert.Equal(t, "Hello, World!", result)
	})

	t.Run("local shadows global in the snapshot", func(t *testing.T) {
		t.Parallel()
		execCtx := bindings.NewExecutionContext()
		execCtx.SetAttribute("mode", "global", bindings.GlobalScope)
		execCtx.SetAttribute("mode", "local", bindings.LocalScope)

		result, err := evalScript(t, "mode", execCtx)
		require.NoError(t, err)
		assert.Equal(t, "local", result)
	})

	t.Run("script assignments do not leak back", func(t *testing.T) {
		t.Parallel()
		execCtx := bindings.NewExecutionContext()

		_, err := evalScript(t, "x := 1\nx", execCtx)
		require.NoError(t, err)
		assert.False(t, execCtx.Bindings(bindings.LocalScope).Has("x"),
			"this engine is read-only toward the execution context")
	})

	t.Run("opaque host values are filtered from the environment", func(t *testing.T) {
		t.Parallel()
		execCtx := bindings.NewExecutionContext()
		execCtx.SetAttribute("handle", bindings.NewExecutionContext(), bindings.LocalScope)
		execCtx.SetAttribute("n", 20, bindings.LocalScope)

		result, err := evalScript(t, "n + 1", execCtx)
		require.NoError(t, err)
		assert.Equal(t, int64(21), result)
	})
}

func TestEngine_Failures(t *testing.T) {
	t.Parallel()

	t.Run("malformed source fails at compile", func(t *testing.T) {
		t.Parallel()
		engine := newTestEngine(t)
		_, err := engine.Compile(context.Background(), "malformed syntax (((")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCompileFailed)
	})

	t.Run("empty source is rejected", func(t *testing.T) {
		t.Parallel()
		engine := newTestEngine(t)
		_, err := engine.Compile(context.Background(), "\n  \n")
		assert.ErrorIs(t, err, ErrContentEmpty)
	})

	t.Run("unbound name is an execution failure", func(t *testing.T) {
		t.Parallel()
		// Name binding happens against the environment at run time, so an
		// unbound read fails here rather than yielding nil.
		_, err := evalScript(t, "undefinedVar", bindings.NewExecutionContext())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrExecutionFailed)
	})

	t.Run("error result is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := evalScript(t, `error("boom")`, bindings.NewExecutionContext())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrExecutionFailed)
	})

	t.Run("function result is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := evalScript(t, "func f() { 1 }\nf", bindings.NewExecutionContext())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrExecutionFailed)
	})
}

func TestEngine_Name(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "risor", newTestEngine(t).Name())
	assert.Equal(t, "risor.Engine", newTestEngine(t).String())
}
