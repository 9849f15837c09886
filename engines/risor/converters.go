package risor

import (
	"log/slog"
	"time"
)

// convertToRisorGlobals filters a merged variable snapshot down to the value
// shapes Risor can represent as globals. Host handles and other opaque values
// are skipped with a log line; the Risor engine cannot carry them through the
// VM the way the Starlark engine's opaque wrapper can.
func convertToRisorGlobals(logger *slog.Logger, snapshot map[string]any) map[string]any {
	globals := make(map[string]any, len(snapshot))
	for name, v := range snapshot {
		if !risorRepresentable(v) {
			logger.Debug("skipping global with no risor representation", "name", name)
			continue
		}
		globals[name] = v
	}
	return globals
}

func risorRepresentable(v any) bool {
	switch val := v.(type) {
	case nil, bool, int, int32, int64, float32, float64, string, []byte, time.Time:
		return true
	case []any:
		for _, elem := range val {
			if !risorRepresentable(elem) {
				return false
			}
		}
		return true
	case map[string]any:
		for _, elem := range val {
			if !risorRepresentable(elem) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
