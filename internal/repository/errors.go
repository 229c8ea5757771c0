package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrConflict reports a unique constraint violation, such as a taken username.
	ErrConflict = errors.New("already exists")
)
