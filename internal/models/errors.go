package models

import "errors"

// Error categories shared by the store, the services and the HTTP layer.
// Package-specific errors wrap one of these so callers can classify with errors.Is.
var (
	// ErrNotFound indicates that an ID does not resolve to a live entity
	ErrNotFound = errors.New("not found")

	// ErrInvalidTarget indicates a move whose destination cannot accept the card
	ErrInvalidTarget = errors.New("invalid target")

	// ErrValidation indicates malformed input
	ErrValidation = errors.New("validation failed")

	// ErrPersistence indicates that the store did not commit a write
	ErrPersistence = errors.New("persistence failure")
)
