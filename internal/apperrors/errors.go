package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that an operation conflicts with the current state
// of the resource (e.g. deleting a posted transaction).
var ErrConflict = errors.New("operation conflicts with resource state")

// ErrInvalidTransition indicates an illegal status transition.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")
