package repository

import "errors"

// ErrDuplicateKey is returned when a write violates a unique constraint.
// Use cases translate it into the business-specific conflict error.
var ErrDuplicateKey = errors.New("duplicate key")
