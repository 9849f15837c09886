// Package scriptbridge embeds a script interpreter inside a host application
// through a standardized engine contract: the host supplies source text and
// an execution context, the engine compiles and runs the script against that
// context, and the adapter returns the result or a translated error.
//
// The heart of the package is platform/bindings.ScopeBridge, which reconciles
// the host's two-tier attribute-scope model (local and global) with the flat
// variable namespace an interpreter expects.
package scriptbridge

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/robbyt/go-scriptbridge/internal/helpers"
	"github.com/robbyt/go-scriptbridge/platform/bindings"
	"github.com/robbyt/go-scriptbridge/platform/constants"
	"github.com/robbyt/go-scriptbridge/platform/script"
	"github.com/robbyt/go-scriptbridge/platform/script/loader"
)

// maxLineSize caps a single source line when buffering a reader.
const maxLineSize = 1 << 20

// ScriptEngine is the host-facing evaluation adapter. It owns one interpreter
// engine instance for its lifetime and compiles scripts fresh on every call.
//
// Eval blocks the caller until the script finishes or fails. The adapter does
// not lock shared ExecutionContexts; concurrent evaluations against the same
// context are the host's to coordinate.
type ScriptEngine struct {
	factory    Factory
	engine     script.Engine
	defaultCtx *bindings.ExecutionContext
	logHandler slog.Handler
	logger     *slog.Logger
}

type config struct {
	factory    Factory
	logHandler slog.Handler
}

// Option configures a ScriptEngine during construction.
type Option func(*config) error

// WithFactory installs an explicit engine factory. Without it the adapter
// uses the process-wide default factory.
func WithFactory(f Factory) Option {
	return func(c *config) error {
		if f == nil {
			return fmt.Errorf("factory is nil")
		}
		c.factory = f
		return nil
	}
}

// WithLogHandler sets the slog handler used by the adapter and its engine.
func WithLogHandler(h slog.Handler) Option {
	return func(c *config) error {
		if h == nil {
			return fmt.Errorf("log handler is nil")
		}
		c.logHandler = h
		return nil
	}
}

// WithLogger sets the handler from an existing logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) error {
		if l == nil {
			return fmt.Errorf("logger is nil")
		}
		c.logHandler = l.Handler()
		return nil
	}
}

// New creates a ScriptEngine. The engine instance is built once, here, by the
// configured factory (or the process default); it is shared by every
// evaluation performed through this adapter.
func New(opts ...Option) (*ScriptEngine, error) {
	cfg := &config{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}

	factory := cfg.factory
	if factory == nil {
		factory = DefaultFactory()
	}

	engine, err := factory.NewEngine(cfg.logHandler)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	if engine == nil {
		return nil, script.ErrEngineNil
	}

	handler, logger := helpers.SetupLogger(cfg.logHandler, engine.Name(), "ScriptEngine")

	return &ScriptEngine{
		factory:    cfg.factory,
		engine:     engine,
		defaultCtx: bindings.NewExecutionContext(),
		logHandler: handler,
		logger:     logger,
	}, nil
}

func (e *ScriptEngine) String() string {
	return fmt.Sprintf("scriptbridge.ScriptEngine{engine: %s}", e.engine.Name())
}

// Factory returns the adapter's configured factory, or the process-wide
// default when none was configured.
func (e *ScriptEngine) Factory() Factory {
	if e.factory != nil {
		return e.factory
	}
	return DefaultFactory()
}

// CreateBindings returns a fresh, independent scope container the host may
// use to seed a new ExecutionContext.
func (e *ScriptEngine) CreateBindings() bindings.Bindings {
	return bindings.New()
}

// Context returns the adapter's own ExecutionContext, used when Eval is
// called with a nil context.
func (e *ScriptEngine) Context() *bindings.ExecutionContext {
	return e.defaultCtx
}

// Eval compiles and runs source against execCtx and returns the script's
// result value unchanged.
//
// Empty or whitespace-only source means "nothing to do": the result is nil
// and the engine is never invoked. A nil execCtx selects the adapter's own
// context. Before compilation the execution context is published into its
// local scope under the reserved name constants.ContextBinding, so scripts
// can introspect it. Compilation failures, execution faults and cancellation
// all surface as *script.Error.
func (e *ScriptEngine) Eval(ctx context.Context, source string, execCtx *bindings.ExecutionContext) (any, error) {
	logger := e.logger.WithGroup("Eval")

	if strings.TrimSpace(source) == "" {
		return nil, nil
	}

	if execCtx == nil {
		execCtx = e.defaultCtx
	}

	// Host-visibility contract: scripts can always reach their context.
	execCtx.SetAttribute(constants.ContextBinding, execCtx, bindings.LocalScope)

	compiled, err := e.engine.Compile(ctx, source)
	if err != nil {
		logger.Warn("compilation failed", "error", err)
		return nil, script.Translate(fmt.Errorf("%w: %w", script.ErrCompileFailed, err))
	}
	if compiled == nil {
		return nil, script.Translate(script.ErrNoCompiled)
	}

	bridge := bindings.NewScopeBridge(execCtx)
	result, err := compiled.Execute(ctx, bridge)
	if err != nil {
		logger.Warn("execution failed", "error", err)
		return nil, script.Translate(fmt.Errorf("%w: %w", script.ErrExecuteFailed, err))
	}

	logger.DebugContext(ctx, "evaluation complete")
	return result, nil
}

// EvalReader buffers script source from r and evaluates it like Eval. The
// source is reassembled line by line, each line newline-terminated. When r is
// an io.Closer it is closed before returning, on success and failure alike;
// read failures surface as *script.Error.
func (e *ScriptEngine) EvalReader(ctx context.Context, r io.Reader, execCtx *bindings.ExecutionContext) (any, error) {
	source, err := bufferLines(r)
	if err != nil {
		return nil, script.Translate(fmt.Errorf("%w: %w", script.ErrReadFailed, err))
	}
	return e.Eval(ctx, source, execCtx)
}

// EvalFrom evaluates script source obtained from a loader.
func (e *ScriptEngine) EvalFrom(ctx context.Context, ldr loader.Loader, execCtx *bindings.ExecutionContext) (any, error) {
	if ldr == nil {
		return nil, script.Translate(fmt.Errorf("%w: loader is nil", script.ErrReadFailed))
	}
	reader, err := ldr.GetReader()
	if err != nil {
		return nil, script.Translate(fmt.Errorf("%w: %w", script.ErrReadFailed, err))
	}
	return e.EvalReader(ctx, reader, execCtx)
}

// bufferLines drains r into an in-memory buffer line by line. The reader is
// released on every path; a close failure after a clean read is ignored, the
// content is already safe in the buffer.
func bufferLines(r io.Reader) (string, error) {
	if r == nil {
		return "", fmt.Errorf("reader is nil")
	}
	if c, ok := r.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}

	var buf strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		buf.WriteString(scanner.Text())
		buf.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
