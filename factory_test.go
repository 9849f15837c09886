package scriptbridge

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-scriptbridge/engines/types"
)

func TestDefaultFactory_SingletonIdentity(t *testing.T) {
	t.Parallel()

	const callers = 32
	results := make([]Factory, callers)

	// Concurrent first access from many goroutines must observe one instance
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = DefaultFactory()
		}()
	}
	wg.Wait()

	first := results[0]
	require.NotNil(t, first)
	for i, f := range results {
		assert.Same(t, first, f, "caller %d observed a different instance", i)
	}
}

func TestNewFactory(t *testing.T) {
	t.Parallel()

	t.Run("starlark", func(t *testing.T) {
		t.Parallel()
		f, err := NewFactory(types.Starlark)
		require.NoError(t, err)
		md := f.Metadata()
		assert.Equal(t, "Starlark", md.LanguageName)
		assert.Contains(t, md.Names, "starlark")

		engine, err := f.NewEngine(nil)
		require.NoError(t, err)
		assert.Equal(t, "starlark", engine.Name())
	})

	t.Run("risor", func(t *testing.T) {
		t.Parallel()
		f, err := NewFactory(types.Risor)
		require.NoError(t, err)
		md := f.Metadata()
		assert.Equal(t, "Risor", md.LanguageName)

		engine, err := f.NewEngine(nil)
		require.NoError(t, err)
		assert.Equal(t, "risor", engine.Name())
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()
		_, err := NewFactory(types.Type("lua"))
		assert.Error(t, err)
	})
}

func TestScriptEngine_Factory(t *testing.T) {
	t.Parallel()

	t.Run("unconfigured adapter reports the process default", func(t *testing.T) {
		t.Parallel()
		adapter, err := New()
		require.NoError(t, err)
		assert.Same(t, DefaultFactory(), adapter.Factory())
	})

	t.Run("configured factory wins", func(t *testing.T) {
		t.Parallel()
		custom, err := NewFactory(types.Risor)
		require.NoError(t, err)

		adapter, err := New(WithFactory(custom))
		require.NoError(t, err)
		assert.Same(t, custom, adapter.Factory())
	})
}
