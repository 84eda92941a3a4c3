package repository

import "errors"

// ErrNotFound indicates an entity was not located in the caller's scope.
var ErrNotFound = errors.New("repository: not found")

// ErrConflict indicates a uniqueness constraint was violated.
var ErrConflict = errors.New("repository: conflict")
