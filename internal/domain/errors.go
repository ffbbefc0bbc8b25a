package domain

import "errors"

// Store errors. Repositories wrap the driver error with one of these so
// usecases can translate them without knowing the backend.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrDuplicate        = errors.New("duplicate key")
	ErrMissingReference = errors.New("referenced row does not exist")
)
