package domain

import "errors"

// Sentinel errors surfaced to callers. ErrNotFound deliberately covers both
// "row does not exist" and "row belongs to another user" so responses never
// reveal which ids exist.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotFound           = errors.New("not found")
	ErrInvalidStatus      = errors.New("status must be paid or unpaid")
)
