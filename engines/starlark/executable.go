package starlark

import (
	"context"
	"fmt"
	"log/slog"

	starlarkLib "go.starlark.net/starlark"

	"github.com/robbyt/go-scriptbridge/platform/bindings"
	"github.com/robbyt/go-scriptbridge/platform/constants"
	"github.com/robbyt/go-scriptbridge/platform/script"
)

// compiledScript is a resolved Starlark program plus the free names it
// references. It holds no variable state; every run resolves those names
// through the Variables view it is given.
type compiledScript struct {
	source     string
	prog       *starlarkLib.Program
	freeNames  map[string]struct{}
	modules    starlarkLib.StringDict
	logHandler slog.Handler
	logger     *slog.Logger
}

// Source implements script.CompiledScript.
func (s *compiledScript) Source() string {
	return s.source
}

// predeclare builds the predeclared environment for one run. Resolution
// order per name: the variable bridge first (local before global inside it),
// then the standard modules, then None — so reading an unbound variable
// yields None instead of an error.
func (s *compiledScript) predeclare(vars bindings.Variables) (starlarkLib.StringDict, error) {
	predeclared := make(starlarkLib.StringDict, len(s.freeNames))
	for name := range s.freeNames {
		if v, ok := vars.Get(name); ok {
			starlarkVal, err := convertToStarlarkValue(v)
			if err != nil {
				return nil, fmt.Errorf("%w: variable %q: %w", ErrConversionFailed, name, err)
			}
			predeclared[name] = starlarkVal
			continue
		}
		if mod, ok := s.modules[name]; ok {
			predeclared[name] = mod
			continue
		}
		predeclared[name] = starlarkLib.None
	}
	return predeclared, nil
}

// Execute implements script.CompiledScript. The program runs on a fresh
// thread; module globals assigned by the script are written back through the
// bridge (owner-preserving update, default-local creation), and the reserved
// result binding carries the script's value.
func (s *compiledScript) Execute(ctx context.Context, vars bindings.Variables) (any, error) {
	logger := s.logger.WithGroup("Execute")

	predeclared, err := s.predeclare(vars)
	if err != nil {
		return nil, err
	}

	thread := &starlarkLib.Thread{
		Name: "eval",
		Print: func(thread *starlarkLib.Thread, msg string) {
			logger.InfoContext(ctx, msg, "starlark-thread", thread.Name)
		},
	}

	// Propagate context cancellation to the running thread.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(ctx.Err().Error())
		case <-done:
		}
	}()

	finalGlobals, err := s.prog.Init(thread, predeclared)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutionFailed, err)
	}

	var resultVal starlarkLib.Value
	for name, val := range finalGlobals {
		if name == constants.ResultBinding {
			resultVal = val
			continue
		}
		goVal, err := convertStarlarkValueToInterface(val)
		if err != nil {
			// Functions and other VM-only values stay inside the VM.
			logger.Debug("skipping write-back of unconvertible global", "name", name, "type", val.Type())
			continue
		}
		vars.Put(name, goVal)
	}

	if resultVal == nil || resultVal == starlarkLib.None {
		return nil, nil
	}

	if _, ok := resultVal.(starlarkLib.Callable); ok {
		return nil, fmt.Errorf("%w: function object returned from script", ErrExecutionFailed)
	}

	out, err := convertStarlarkValueToInterface(resultVal)
	if err != nil {
		return nil, err
	}
	return out, nil
}

var _ script.CompiledScript = (*compiledScript)(nil)
