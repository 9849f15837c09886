package risor

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestConvertToRisorGlobals(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("representable values pass through", func(t *testing.T) {
		t.Parallel()
		snapshot := map[string]any{
			"b":     true,
			"n":     int64(1),
			"f":     0.5,
			"s":     "text",
			"raw":   []byte("bytes"),
			"when":  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
			"list":  []any{int64(1), "two"},
			"table": map[string]any{"k": int64(9)},
		}

		got := convertToRisorGlobals(logger, snapshot)
		if diff := cmp.Diff(snapshot, got); diff != "" {
			t.Errorf("globals mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("opaque values are dropped", func(t *testing.T) {
		t.Parallel()
		type handle struct{}
		snapshot := map[string]any{
			"keep": "ok",
			"drop": &handle{},
		}

		got := convertToRisorGlobals(logger, snapshot)
		assert.Equal(t, map[string]any{"keep": "ok"}, got)
	})

	t.Run("containers holding opaque values are dropped whole", func(t *testing.T) {
		t.Parallel()
		type handle struct{}
		snapshot := map[string]any{
			"list":  []any{int64(1), &handle{}},
			"table": map[string]any{"h": &handle{}},
		}

		got := convertToRisorGlobals(logger, snapshot)
		assert.Empty(t, got)
	})
}
