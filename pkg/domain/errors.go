package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	// or is filtered out by an active/status predicate.
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when a caller is not authenticated
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials hides which credential check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden is returned when a user is not allowed to perform an action
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidState is returned when a status transition precondition is violated
	ErrInvalidState = errors.New("invalid state")
)
