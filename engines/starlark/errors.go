package starlark

import "errors"

var (
	ErrContentEmpty     = errors.New("starlark content is empty")
	ErrCompileFailed    = errors.New("failed to compile starlark script")
	ErrExecutionFailed  = errors.New("starlark execution error")
	ErrConversionFailed = errors.New("starlark value conversion error")
)
