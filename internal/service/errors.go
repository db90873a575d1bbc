package service

import "errors"

// Common service errors
var (
	// ErrPermissionDenied is returned when the actor's scope does not allow an action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when a resource is not found. Out-of-scope
	// reads also surface as not found so callers cannot probe for records
	// they may not see.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidTransition is returned when a lifecycle change is not allowed
	// from the activity's current status
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInconsistentState is returned when a mutation would violate a data
	// invariant, such as an actual end before the actual start
	ErrInconsistentState = errors.New("inconsistent activity state")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidPeriod is returned when a reporting period is empty or inverted
	ErrInvalidPeriod = errors.New("invalid reporting period")
)
