package services

import "errors"

// Service error taxonomy. Controllers map these onto HTTP statuses;
// everything else is treated as an internal error.
var (
	// ErrNotFound: referenced hotel/room/ticket/assignment absent.
	ErrNotFound = errors.New("not found")

	// ErrValidation: bad input (unknown status, missing fields,
	// unresolved amenity). No partial writes occur.
	ErrValidation = errors.New("validation failed")

	// ErrConflict: overlapping booking window or a consistency
	// violation such as transitioning out of a terminal state.
	ErrConflict = errors.New("conflict")
)
