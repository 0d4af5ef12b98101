package api

import (
	"errors"

	"github.com/okian/tuna/internal/domain/model"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrInvalidInput = model.ErrInvalidInput
	ErrUnavailable  = errors.New("unavailable")
	ErrTooLarge     = errors.New("request entity too large")
)

// requestError carries the op for logs while rendering only the cause.
type requestError struct {
	op    string
	kind  error
	cause error
}

func (e *requestError) Error() string {
	if e.cause == nil {
		return e.kind.Error()
	}
	return e.cause.Error()
}

func (e *requestError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

// wrapKind tags cause with kind so statusFor can classify it.
func wrapKind(op string, kind, cause error) error {
	return &requestError{op: op, kind: kind, cause: cause}
}
