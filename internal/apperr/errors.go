// Package apperr defines the error taxonomy shared by every core operation.
// All failures are reported synchronously as one of these five kinds; callers
// match with errors.Is.
package apperr

import "errors"

var (
	// ErrInvalidArgument signals malformed input: zero or negative quantity,
	// an empty line-id list, a missing return reason.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound covers both a missing entity and an entity owned by
	// someone else. Ownership mismatches are deliberately reported as
	// not-found so the existence of other members' resources never leaks.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientStock signals the requested quantity exceeds the
	// variant's available stock at decrement time.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidTransition signals a status change outside the allowed
	// transition table for the order's current state.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnauthorized signals the actor lacks the role or ownership the
	// operation requires.
	ErrUnauthorized = errors.New("unauthorized")
)
