package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// NewDriverRepositoryWithTx creates a driver repository using a transaction.
func NewDriverRepositoryWithTx(tx *sql.Tx) *DriverRepository {
	return &DriverRepository{q: tx}
}

// Create adds a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (id, person_id, license, rating, rating_count, is_active, current_lat, current_lng)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var lat, lng sql.NullFloat64
	if driver.LocationSet {
		lat = sql.NullFloat64{Float64: driver.CurrentLat, Valid: true}
		lng = sql.NullFloat64{Float64: driver.CurrentLng, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		driver.ID,
		driver.PersonID,
		driver.License,
		driver.Rating,
		driver.RatingCount,
		driver.Active,
		lat,
		lng,
	)
	return err
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `
		SELECT id, person_id, license, rating, rating_count, is_active, current_lat, current_lng
		FROM drivers WHERE id = $1
	`
	return r.scanDriver(r.q.QueryRowContext(ctx, query, id))
}

// GetByPersonID retrieves the driver record for a person, if any.
func (r *DriverRepository) GetByPersonID(ctx context.Context, personID string) (*domain.Driver, error) {
	query := `
		SELECT id, person_id, license, rating, rating_count, is_active, current_lat, current_lng
		FROM drivers WHERE person_id = $1
	`
	return r.scanDriver(r.q.QueryRowContext(ctx, query, personID))
}

func (r *DriverRepository) scanDriver(row *sql.Row) (*domain.Driver, error) {
	var driver domain.Driver
	var lat, lng sql.NullFloat64

	err := row.Scan(
		&driver.ID,
		&driver.PersonID,
		&driver.License,
		&driver.Rating,
		&driver.RatingCount,
		&driver.Active,
		&lat,
		&lng,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if lat.Valid && lng.Valid {
		driver.CurrentLat = lat.Float64
		driver.CurrentLng = lng.Float64
		driver.LocationSet = true
	}

	return &driver, nil
}

// UpdateLocation overwrites the driver's current location.
func (r *DriverRepository) UpdateLocation(ctx context.Context, id string, lat, lng float64) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE drivers SET current_lat = $1, current_lng = $2 WHERE id = $3`,
		lat, lng, id,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// UpdateRatingAggregate overwrites the driver's running rating and count.
func (r *DriverRepository) UpdateRatingAggregate(ctx context.Context, id string, rating float64, count int64) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE drivers SET rating = $1, rating_count = $2 WHERE id = $3`,
		rating, count, id,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
