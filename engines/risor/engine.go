// Package risor adapts the Risor interpreter (github.com/risor-io/risor) to
// the script.Engine contract. Risor scripts are expression-oriented: the
// value of the last expression is the evaluation result.
//
// Unlike the Starlark engine, Risor resolves global names at compile time and
// exposes no post-execution globals, so this engine seeds its environment
// from a bridge snapshot and is read-only toward the execution context.
// Reading a name absent from every scope is an execution failure here, not a
// None result.
package risor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	risorErrors "github.com/risor-io/risor/errz"
	risorParser "github.com/risor-io/risor/parser"

	"github.com/robbyt/go-scriptbridge/engines/types"
	"github.com/robbyt/go-scriptbridge/internal/helpers"
	"github.com/robbyt/go-scriptbridge/platform/script"
)

// Engine compiles Risor source into executable programs.
type Engine struct {
	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a Risor engine. A nil handler installs the default logger
// configuration.
func New(handler slog.Handler) *Engine {
	handler, logger := helpers.SetupLogger(handler, "risor", "Engine")

	return &Engine{
		logHandler: handler,
		logger:     logger,
	}
}

func (e *Engine) String() string {
	return "risor.Engine"
}

// Name implements script.Engine.
func (e *Engine) Name() string {
	return types.Risor.String()
}

// Compile implements script.Engine. Parsing happens here so malformed source
// is diagnosed before any execution; bytecode compilation is deferred to
// Execute, when the set of visible global names is known.
func (e *Engine) Compile(ctx context.Context, source string) (script.CompiledScript, error) {
	logger := e.logger.WithGroup("Compile")

	if strings.TrimSpace(source) == "" {
		return nil, ErrContentEmpty
	}

	ast, err := risorParser.Parse(ctx, source)
	if err != nil {
		// Produce a friendlier diagnostic when the parser offers one
		errMsg := err.Error()
		var friendlyErr risorErrors.FriendlyError
		if errors.As(err, &friendlyErr) {
			errMsg = friendlyErr.FriendlyErrorMessage()
		}
		logger.Warn("parse failed", "error", errMsg)
		return nil, fmt.Errorf("%w: %s", ErrCompileFailed, errMsg)
	}

	return &compiledScript{
		source:     source,
		ast:        ast,
		logHandler: e.logHandler,
		logger:     e.logger,
	}, nil
}

var _ script.Engine = (*Engine)(nil)
