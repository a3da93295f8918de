package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// RatingRepository is a PostgreSQL implementation of repository.RatingRepository.
type RatingRepository struct {
	db *sql.DB
}

// NewRatingRepository creates a new PostgreSQL rating repository.
func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Rate inserts the rating and recomputes the rated driver's running average
// and count in one transaction. The driver row is locked for the duration so
// concurrent ratings for the same driver serialize instead of losing updates.
func (r *RatingRepository) Rate(ctx context.Context, rating *domain.Rating) (*domain.DriverRatingSummary, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Resolve the driver through the ride's vehicle.
	var driverID string
	err = tx.QueryRowContext(ctx, `
		SELECT d.id
		FROM rides r
		JOIN vehicles v ON r.vehicle_id = v.id
		JOIN drivers d ON v.driver_id = d.id
		WHERE r.id = $1
	`, rating.RideID).Scan(&driverID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = repository.ErrNotFound
			return nil, err
		}
		return nil, err
	}

	// Lock the driver row; concurrent aggregations for this driver wait here.
	var locked string
	if err = tx.QueryRowContext(ctx,
		`SELECT id FROM drivers WHERE id = $1 FOR UPDATE`, driverID,
	).Scan(&locked); err != nil {
		return nil, err
	}

	var comment sql.NullString
	if rating.Comment != "" {
		comment = sql.NullString{String: rating.Comment, Valid: true}
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO ratings (id, ride_id, value, comment, rated_at) VALUES ($1, $2, $3, $4, $5)`,
		rating.ID, rating.RideID, rating.Value, comment, rating.RatedAt,
	); err != nil {
		return nil, err
	}

	// Recompute the mean over every rating on this driver's rides.
	var count int64
	var mean float64
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(AVG(ra.value), 0)
		FROM ratings ra
		JOIN rides r ON ra.ride_id = r.id
		JOIN vehicles v ON r.vehicle_id = v.id
		WHERE v.driver_id = $1
	`, driverID).Scan(&count, &mean)
	if err != nil {
		return nil, err
	}

	txDriverRepo := NewDriverRepositoryWithTx(tx)
	if err = txDriverRepo.UpdateRatingAggregate(ctx, driverID, mean, count); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &domain.DriverRatingSummary{
		DriverID:    driverID,
		Rating:      mean,
		RatingCount: count,
	}, nil
}
