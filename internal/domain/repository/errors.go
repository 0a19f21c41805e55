package repository

import "errors"

var (
	// ErrNotFound indicates the referenced symbol is absent from the store.
	ErrNotFound = errors.New("stock not found")

	// ErrConflict indicates a concurrent write collided with this save.
	// Callers log and skip; the next scheduled tick retries naturally.
	ErrConflict = errors.New("stock write conflict")
)
