package script

import (
	"errors"
	"fmt"
)

// Sentinel failure stages. They tag the origin of a failure inside wrapped
// error chains; hosts still observe exactly one error kind (*Error).
var (
	ErrCompileFailed = errors.New("script compilation failed")
	ErrExecuteFailed = errors.New("script execution failed")
	ErrReadFailed    = errors.New("script source read failed")
	ErrEngineNil     = errors.New("engine is nil")
	ErrNoCompiled    = errors.New("compiled script is nil")
)

// Error is the single host-visible failure kind. Compilation failures,
// execution faults and source-read failures are all translated into it,
// carrying the underlying cause's description. Collapsing the taxonomy is a
// deliberate simplification of the host contract, not lost information: the
// cause chain stays reachable through Unwrap.
type Error struct {
	cause error
}

// NewError wraps cause into the host-visible error kind.
func NewError(cause error) *Error {
	return &Error{cause: cause}
}

func (e *Error) Error() string {
	if e.cause == nil {
		return "script error"
	}
	return fmt.Sprintf("script error: %s", e.cause.Error())
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Translate normalizes any failure into *Error. A nil error stays nil and an
// already-translated error passes through unchanged, so the adapter can apply
// it uniformly at its boundary.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	var scriptErr *Error
	if errors.As(err, &scriptErr) {
		return scriptErr
	}
	return NewError(err)
}
