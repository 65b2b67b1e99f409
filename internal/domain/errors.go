package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict (e.g. duplicate email).
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalid marks input validation failures so handlers can map them
	// to a 400 without inspecting message text.
	ErrInvalid = errors.New("invalid input")
)
