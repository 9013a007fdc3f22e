package client

import (
	"context"
	"errors"
)

// Error taxonomy for the client facade (§7). NoMem has no Go analogue —
// true allocation failure panics rather than returning an error — so it
// is the one taxonomy member without a sentinel here.
var (
	ErrInvalidArg   = errors.New("client: invalid argument")
	ErrInvalidState = errors.New("client: invalid state for this operation")
	ErrNotFound     = errors.New("client: not found")
)

// TransportError wraps a transport-layer failure; Start returns one when
// the dial fails. It implements error and errors.Unwrap so callers can use
// errors.Is/As against the underlying cause.
type TransportError struct {
	Message     string
	Description error
	Context     context.Context
}

// NewTransportError builds a TransportError with the given reason,
// underlying cause (nil if none), and context (nil if none).
func NewTransportError(reason string, cause error, ctx context.Context) *TransportError {
	return &TransportError{Message: reason, Description: cause, Context: ctx}
}

func (e *TransportError) Error() string { return e.Message }
func (e *TransportError) Unwrap() error { return e.Description }
