package board

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOrder marks a request for an order the store has not seen.
	ErrUnknownOrder = errors.New("unknown order")
	// ErrUnknownItem marks a batch edit naming an item absent from the
	// order, under the reject policy.
	ErrUnknownItem = errors.New("unknown order item")
	// ErrInvalidStatus marks a batch edit with a status outside the board
	// vocabulary.
	ErrInvalidStatus = errors.New("invalid item status")
	// ErrBatchInFlight marks a second batch for an order whose previous
	// batch has not resolved yet.
	ErrBatchInFlight = errors.New("batch already in flight for order")
	// ErrOrderNotPending marks a start request for an order that already
	// left pending.
	ErrOrderNotPending = errors.New("order is not pending")
)

// TransportError wraps a failed call to the order service. The store and
// any open overlay are left untouched when one is returned, so the caller
// can re-offer the same action.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("order service: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err came from the order service transport.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
