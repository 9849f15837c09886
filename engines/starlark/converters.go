package starlark

import (
	"fmt"

	starlarkLib "go.starlark.net/starlark"
)

// hostValue carries an arbitrary host value through the Starlark VM opaquely.
// Scripts can pass it around and compare it for truthiness, nothing more; it
// unwraps to the original value on the way back out, preserving identity.
type hostValue struct {
	v any
}

func (h hostValue) String() string        { return fmt.Sprintf("<host %T>", h.v) }
func (h hostValue) Type() string          { return "host_value" }
func (h hostValue) Freeze()               {}
func (h hostValue) Truth() starlarkLib.Bool { return h.v != nil }
func (h hostValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: host_value") }

var _ starlarkLib.Value = hostValue{}

// convertToStarlarkValue converts a Go value into its Starlark representation.
// Values with no native representation are wrapped opaquely rather than
// rejected, so host handles (the execution context itself included) can cross
// the boundary.
func convertToStarlarkValue(v any) (starlarkLib.Value, error) {
	if v == nil {
		return starlarkLib.None, nil
	}

	switch val := v.(type) {
	case starlarkLib.Value:
		return val, nil
	case bool:
		return starlarkLib.Bool(val), nil
	case int:
		return starlarkLib.MakeInt(val), nil
	case int64:
		return starlarkLib.MakeInt64(val), nil
	case float64:
		return starlarkLib.Float(val), nil
	case string:
		return starlarkLib.String(val), nil
	case []any:
		elements := make([]starlarkLib.Value, len(val))
		for i, elem := range val {
			var err error
			elements[i], err = convertToStarlarkValue(elem)
			if err != nil {
				return nil, fmt.Errorf("failed to convert list element: %w", err)
			}
		}
		return starlarkLib.NewList(elements), nil
	case map[string]struct{}:
		// golang doesn't have a Set, but often a map[string]struct{} is used instead
		elements := starlarkLib.NewSet(len(val))
		for k := range val {
			if err := elements.Insert(starlarkLib.String(k)); err != nil {
				return nil, fmt.Errorf("failed to insert set element: %w", err)
			}
		}
		return elements, nil
	case map[string]any:
		dict := starlarkLib.NewDict(len(val))
		for k, v := range val {
			starlarkVal, err := convertToStarlarkValue(v)
			if err != nil {
				return nil, fmt.Errorf("failed to convert dict value: %w", err)
			}
			if err := dict.SetKey(starlarkLib.String(k), starlarkVal); err != nil {
				return nil, fmt.Errorf("failed to set dict key: %w", err)
			}
		}
		return dict, nil
	default:
		return hostValue{v: val}, nil
	}
}

// convertStarlarkValueToInterface converts a Starlark value back to a native
// Go value. Opaque host values unwrap to the original.
func convertStarlarkValueToInterface(v starlarkLib.Value) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch v := v.(type) {
	case starlarkLib.NoneType:
		return nil, nil
	case hostValue:
		return v.v, nil
	case starlarkLib.Bool:
		return bool(v), nil
	case starlarkLib.Int:
		i, _ := v.Int64()
		return i, nil
	case starlarkLib.Float:
		return float64(v), nil
	case starlarkLib.String:
		return string(v), nil
	case *starlarkLib.List:
		list := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			elem, err := convertStarlarkValueToInterface(v.Index(i))
			if err != nil {
				return nil, fmt.Errorf("failed to convert list element: %w", err)
			}
			list = append(list, elem)
		}
		return list, nil
	case *starlarkLib.Dict:
		// Create a string-keyed map for JSON compatibility
		dict := make(map[string]any)
		for _, k := range v.Keys() {
			val, found, err := v.Get(k)
			if err != nil || !found {
				continue // Skip invalid entries
			}

			kStr, ok := k.(starlarkLib.String)
			if !ok {
				// Convert non-string keys to strings for JSON compatibility
				kStr = starlarkLib.String(k.String())
			}

			vv, err := convertStarlarkValueToInterface(val)
			if err != nil {
				return nil, fmt.Errorf("failed to convert dict value: %w", err)
			}
			dict[string(kStr)] = vv
		}
		return dict, nil
	default:
		return nil, fmt.Errorf("%w: unsupported Starlark type %T", ErrConversionFailed, v)
	}
}
