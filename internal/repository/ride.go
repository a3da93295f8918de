package repository

import (
	"context"

	"rideshare/internal/domain"
)

// RideRepository defines the persistence operations for rides and their
// dispatch queue markers.
type RideRepository interface {
	// Create persists a new pending ride together with its queue marker and
	// rider link as a single atomic unit.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// Accept performs the atomic pending→accepted transition: it sets the
	// vehicle and status with a conditional update guarded on the pending
	// state and retires the ride's queue marker in the same unit. Returns
	// ErrNotFound if the ride does not exist and ErrRideNotPending if the
	// conditional update matched no rows.
	Accept(ctx context.Context, rideID, vehicleID string) error

	// UpdateStatus moves the ride from one status to another with a
	// conditional update guarded on the expected prior status. Returns
	// ErrNotFound if the ride does not exist and ErrStatusConflict if the
	// status changed underneath the caller.
	UpdateStatus(ctx context.Context, rideID string, from, to domain.RideStatus) error

	// ListAvailable returns rides that still have a live queue marker and are
	// pending, ordered by start time ascending.
	ListAvailable(ctx context.Context) ([]*domain.AvailableRide, error)

	// GetStatusView returns the polling read model for a ride, joining the
	// assigned driver's live location when a vehicle is set.
	GetStatusView(ctx context.Context, rideID string) (*domain.RideStatusView, error)

	// HasActiveRideForDriver reports whether any ride bound to one of the
	// driver's vehicles is in an active (accepted or in-progress) state.
	HasActiveRideForDriver(ctx context.Context, driverID string) (bool, error)
}
