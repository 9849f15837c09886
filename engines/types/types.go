// Package types enumerates the interpreter engines this module can adapt.
package types

import "fmt"

// Type identifies an interpreter engine implementation.
type Type string

const (
	// Starlark engine: https://github.com/google/starlark-go
	Starlark Type = "starlark"

	// Risor engine: https://github.com/risor-io/risor
	Risor Type = "risor"
)

func (t Type) String() string {
	return string(t)
}

// Parse converts a string into a known engine Type.
func Parse(s string) (Type, error) {
	switch Type(s) {
	case Starlark:
		return Starlark, nil
	case Risor:
		return Risor, nil
	default:
		return "", fmt.Errorf("unknown engine type: %q", s)
	}
}
