package starlark

import (
	"maps"

	starlarkJSON "go.starlark.net/lib/json"
	starlarkMath "go.starlark.net/lib/math"
	starlarkTime "go.starlark.net/lib/time"
	starlarkLib "go.starlark.net/starlark"
)

// Module namespace constants. Host bindings with the same name shadow these.
const (
	namespaceJSON = "json" // JSON encoding/decoding functions
	namespaceMath = "math" // mathematical functions and constants
	namespaceTime = "time" // time-related functions
)

// standardModules returns a copy of the Starlark universe with additional
// modules. Scripts resolve these names only when the execution context does
// not bind them itself.
func standardModules() starlarkLib.StringDict {
	// Clone the universe to avoid modifying the global one
	universe := maps.Clone(starlarkLib.Universe)

	universe[namespaceJSON] = starlarkJSON.Module
	universe[namespaceMath] = starlarkMath.Module
	universe[namespaceTime] = starlarkTime.Module

	return universe
}
