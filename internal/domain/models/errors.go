package models

import "errors"

// Error kinds shared by every store. Store-specific errors wrap one of these
// so the HTTP layer can pick a status code with errors.Is.
var (
	// ErrValidation marks malformed or missing input (HTTP 400).
	ErrValidation = errors.New("invalid request")
	// ErrNotFound marks a removal that addressed nothing (HTTP 404).
	ErrNotFound = errors.New("not found")
)
