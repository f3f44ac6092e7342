package services

import "errors"

// Controllers map these onto HTTP statuses: ErrNotFound -> 404,
// ErrConflict/ErrInvalidState -> 400, everything else -> 500.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
)
