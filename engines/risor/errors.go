package risor

import "errors"

var (
	ErrContentEmpty    = errors.New("risor content is empty")
	ErrCompileFailed   = errors.New("failed to compile risor script")
	ErrExecutionFailed = errors.New("risor execution error")
)
