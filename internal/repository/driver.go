package repository

import (
	"context"

	"rideshare/internal/domain"
)

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// Create adds a new driver.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// GetByPersonID retrieves the driver record for a person, if any.
	GetByPersonID(ctx context.Context, personID string) (*domain.Driver, error)

	// UpdateLocation overwrites the driver's current location. Last writer
	// wins; no ordering guarantee beyond row-level atomicity.
	UpdateLocation(ctx context.Context, id string, lat, lng float64) error

	// UpdateRatingAggregate overwrites the driver's running rating and count.
	UpdateRatingAggregate(ctx context.Context, id string, rating float64, count int64) error
}
