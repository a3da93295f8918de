package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// RatingService records immutable ratings and keeps each driver's running
// average consistent with them.
type RatingService struct {
	ratingRepo repository.RatingRepository
}

// NewRatingService creates a new RatingService.
func NewRatingService(ratingRepo repository.RatingRepository) *RatingService {
	return &RatingService{ratingRepo: ratingRepo}
}

// RateRideRequest contains the parameters for rating a ride.
type RateRideRequest struct {
	RideID  string
	Value   float64
	Comment string
}

// RateRide inserts the rating and returns the driver's recomputed aggregate.
// Insertion and aggregation happen in one store-level atomic unit serialized
// per driver, so concurrent ratings never lose updates.
func (s *RatingService) RateRide(ctx context.Context, req RateRideRequest) (*domain.DriverRatingSummary, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}
	if req.Value < domain.MinRatingValue || req.Value > domain.MaxRatingValue {
		return nil, ErrInvalidRatingValue
	}

	rating := &domain.Rating{
		ID:      uuid.New().String(),
		RideID:  req.RideID,
		Value:   req.Value,
		Comment: req.Comment,
		RatedAt: time.Now(),
	}

	return s.ratingRepo.Rate(ctx, rating)
}
