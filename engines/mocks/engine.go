// Package mocks provides testify mock implementations of the engine
// contracts, for testing adapter behavior without a real interpreter.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/robbyt/go-scriptbridge/platform/bindings"
	"github.com/robbyt/go-scriptbridge/platform/script"
)

// Engine is a mock implementation of script.Engine.
type Engine struct {
	mock.Mock
}

// Compile is a mock implementation of the Compile method.
func (m *Engine) Compile(ctx context.Context, source string) (script.CompiledScript, error) {
	args := m.Called(ctx, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(script.CompiledScript), args.Error(1)
}

// Name is a mock implementation of the Name method.
func (m *Engine) Name() string {
	args := m.Called()
	return args.String(0)
}

// CompiledScript is a mock implementation of script.CompiledScript.
type CompiledScript struct {
	mock.Mock
}

// Execute is a mock implementation of the Execute method.
func (m *CompiledScript) Execute(ctx context.Context, vars bindings.Variables) (any, error) {
	args := m.Called(ctx, vars)
	return args.Get(0), args.Error(1)
}

// Source is a mock implementation of the Source method.
func (m *CompiledScript) Source() string {
	args := m.Called()
	return args.String(0)
}

var (
	_ script.Engine         = (*Engine)(nil)
	_ script.CompiledScript = (*CompiledScript)(nil)
)
