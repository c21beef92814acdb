package repository

import "errors"

var (
	// ErrNotFound covers both a missing row and a row owned by someone
	// else; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("record not found")

	ErrDuplicateEmail = errors.New("email already registered")
)
