package repository

import (
	"context"

	"rideshare/internal/domain"
)

// RatingRepository defines the persistence operations for ratings.
type RatingRepository interface {
	// Rate inserts the rating and recomputes the rated driver's running
	// average and count as one atomic unit, serialized per driver. Returns
	// ErrNotFound when no driver resolves from the ride's vehicle.
	Rate(ctx context.Context, rating *domain.Rating) (*domain.DriverRatingSummary, error)
}
