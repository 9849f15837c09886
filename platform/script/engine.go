// Package script defines the contract between the host-facing adapter and
// the interpreter engines, plus the single error kind crossing that boundary.
package script

import (
	"context"

	"github.com/robbyt/go-scriptbridge/platform/bindings"
)

// CompiledScript is an engine-owned artifact produced by compiling source
// text. It is stateless with respect to variable bindings: every variable a
// run reads or writes flows through the Variables view supplied to Execute.
// Compiled fresh per evaluation; not cached across calls.
type CompiledScript interface {
	// Execute runs the script against the supplied variable view. Any
	// execution fault is returned as an error; the adapter translates it.
	Execute(ctx context.Context, vars bindings.Variables) (any, error)

	// Source returns the source text this script was compiled from.
	Source() string
}

// Engine is the interpreter collaborator consumed as a black box: it turns
// source text into a CompiledScript and nothing else. One Engine instance is
// shared by all evaluations performed through one adapter.
type Engine interface {
	// Compile parses and compiles source text. Malformed input is reported
	// as an error before any execution happens.
	Compile(ctx context.Context, source string) (CompiledScript, error)

	// Name returns the engine's short identifier, e.g. "starlark".
	Name() string
}
