// Package starlark adapts the Starlark interpreter (go.starlark.net) to the
// script.Engine contract. It is the default engine: reads resolve through the
// variable bridge name-by-name, script writes merge back through it, and an
// unbound name evaluates to None rather than failing.
package starlark

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/robbyt/go-scriptbridge/engines/types"
	"github.com/robbyt/go-scriptbridge/internal/helpers"
	"github.com/robbyt/go-scriptbridge/platform/constants"
	"github.com/robbyt/go-scriptbridge/platform/script"
)

// Engine compiles Starlark source into executable programs. One Engine is
// shared by all evaluations performed through one adapter.
type Engine struct {
	modules    starlarkLib.StringDict
	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a Starlark engine. A nil handler installs the default logger
// configuration.
func New(handler slog.Handler) *Engine {
	handler, logger := helpers.SetupLogger(handler, "starlark", "Engine")

	return &Engine{
		modules:    standardModules(),
		logHandler: handler,
		logger:     logger,
	}
}

func (e *Engine) String() string {
	return "starlark.Engine"
}

// Name implements script.Engine.
func (e *Engine) Name() string {
	return types.Starlark.String()
}

// fileOptions returns the dialect used for script evaluation: top-level
// control flow, reassignment, sets, while loops and recursion are all
// allowed, since embedded scripts are imperative snippets rather than config
// modules.
func fileOptions() *syntax.FileOptions {
	return &syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
		Recursion:       true,
	}
}

// Compile implements script.Engine. Source that parses as a single
// expression is rewritten to assign the reserved result binding, so the
// expression's value survives program execution. Free names are recorded
// through the resolver's predeclared callback and resolved against the
// variable bridge at execution time.
func (e *Engine) Compile(_ context.Context, source string) (script.CompiledScript, error) {
	logger := e.logger.WithGroup("Compile")

	if strings.TrimSpace(source) == "" {
		return nil, ErrContentEmpty
	}

	text := source
	wrapped := false
	if _, err := syntax.ParseExpr("<script>", source, 0); err == nil {
		// Parenthesized so multi-line expressions and trailing comments
		// stay valid inside the assignment.
		text = constants.ResultBinding + " = (\n" + source + "\n)"
		wrapped = true
	}

	opts := fileOptions()
	f, err := opts.Parse("<script>", []byte(text), 0)
	if err != nil {
		logger.Warn("parse failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}

	// Claim every free name as predeclared while recording it; the actual
	// values are looked up through the bridge when the program runs.
	freeNames := make(map[string]struct{})
	prog, err := starlarkLib.FileProgram(f, func(name string) bool {
		freeNames[name] = struct{}{}
		return true
	})
	if err != nil {
		logger.Warn("resolve failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}

	logger.Debug("compiled", "freeNames", len(freeNames), "wrapped", wrapped)

	return &compiledScript{
		source:     source,
		prog:       prog,
		freeNames:  freeNames,
		modules:    e.modules,
		logHandler: e.logHandler,
		logger:     e.logger,
	}, nil
}

var _ script.Engine = (*Engine)(nil)
