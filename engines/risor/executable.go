package risor

import (
	"context"
	"fmt"
	"log/slog"

	risorLib "github.com/risor-io/risor"
	"github.com/risor-io/risor/ast"
	risorCompiler "github.com/risor-io/risor/compiler"

	"github.com/robbyt/go-scriptbridge/platform/bindings"
	"github.com/robbyt/go-scriptbridge/platform/script"
)

// compiledScript is a parsed Risor program. Bytecode is produced per run
// because Risor binds global names during compilation, and those names come
// from the variable view supplied at execution time.
type compiledScript struct {
	source     string
	ast        *ast.Program
	logHandler slog.Handler
	logger     *slog.Logger
}

// Source implements script.CompiledScript.
func (s *compiledScript) Source() string {
	return s.source
}

// Execute implements script.CompiledScript. The environment is seeded from a
// merged snapshot of the variable view (local precedence); the value of the
// script's last expression is the result.
func (s *compiledScript) Execute(ctx context.Context, vars bindings.Variables) (any, error) {
	logger := s.logger.WithGroup("Execute")

	globals := convertToRisorGlobals(logger, vars.Snapshot())

	globalNames := risorLib.NewConfig().GlobalNames()
	for name := range globals {
		globalNames = append(globalNames, name)
	}

	code, err := risorCompiler.Compile(s.ast, risorCompiler.WithGlobalNames(globalNames))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutionFailed, err)
	}

	result, err := risorLib.EvalCode(ctx, code, risorLib.WithGlobals(globals))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutionFailed, err)
	}
	logger.DebugContext(ctx, "exec complete", "type", result.Type())

	switch result.Type() {
	case "error":
		return nil, fmt.Errorf("%w: error returned from script: %s", ErrExecutionFailed, result.Inspect())
	case "function":
		return nil, fmt.Errorf("%w: function object returned from script: %s", ErrExecutionFailed, result.Inspect())
	}

	return result.Interface(), nil
}

var _ script.CompiledScript = (*compiledScript)(nil)
