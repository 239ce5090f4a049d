package domain

import "errors"

var (
	// ErrInvalidInput marks client-input errors: rejected before any store or
	// external-source I/O.
	ErrInvalidInput = errors.New("invalid input")

	ErrNotFound = errors.New("not found")
)
