package domain

import "time"

// Rating bounds, inclusive.
const (
	MinRatingValue = 1.0
	MaxRatingValue = 5.0
)

// Rating is an append-only record referencing a ride. Never updated or
// deleted after insertion.
type Rating struct {
	ID      string
	RideID  string
	Value   float64
	Comment string
	RatedAt time.Time
}

// DriverRatingSummary is the aggregate recomputed after each new rating.
type DriverRatingSummary struct {
	DriverID    string
	Rating      float64
	RatingCount int64
}
