package services

import "errors"

// Domain error values returned by the order engine. Controllers translate
// these into HTTP responses with errors.Is; the engine never retries on its
// own and every failed operation leaves the order unchanged.
var (
	// ErrUnknownOrder indicates the referenced order does not exist.
	ErrUnknownOrder = errors.New("order not found")

	// ErrUnknownMachine indicates the machine id does not resolve in the
	// external registry.
	ErrUnknownMachine = errors.New("machine not found")

	// ErrStateConflict indicates the requested transition is illegal from
	// the order's current state, including races lost against a concurrent
	// mutation. Callers recover by re-fetching state.
	ErrStateConflict = errors.New("state conflict")

	// ErrInvalidAuthor indicates an actor attempted an action it is not
	// entitled to, such as accepting its own counter offer or acting on an
	// order it does not participate in.
	ErrInvalidAuthor = errors.New("invalid author")

	// ErrValidation indicates malformed input, such as a non-positive
	// offer amount or a missing required field.
	ErrValidation = errors.New("validation failed")
)
