package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrRideNotPending is returned when a conditional pending-state update
	// matched no rows because the ride has already left the pending state.
	ErrRideNotPending = errors.New("ride is not pending")

	// ErrStatusConflict is returned when a conditional status update matched
	// no rows because the ride's status changed underneath the caller.
	ErrStatusConflict = errors.New("ride status does not allow this update")

	// ErrDuplicate is returned when a uniqueness constraint is violated.
	ErrDuplicate = errors.New("entity already exists")
)
