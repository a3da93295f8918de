package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	db *sql.DB // nil when transaction-scoped
	q  Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{db: db, q: db}
}

// NewRideRepositoryWithTx creates a ride repository using a transaction.
func NewRideRepositoryWithTx(tx *sql.Tx) *RideRepository {
	return &RideRepository{q: tx}
}

// Create persists a new pending ride, its queue marker, and the rider link in
// one transaction.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var fare sql.NullFloat64
	if ride.Fare > 0 {
		fare = sql.NullFloat64{Float64: ride.Fare, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO rides (id, vehicle_id, is_shared, start_time, fare, start_lat, start_lng, end_lat, end_lng, start_location, end_location, status)
		VALUES ($1, NULL, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		ride.ID,
		ride.Shared,
		ride.StartTime,
		fare,
		ride.StartLat,
		ride.StartLng,
		ride.EndLat,
		ride.EndLng,
		ride.StartLocation,
		ride.EndLocation,
		ride.Status,
	)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ride_requests (ride_id, requested_at) VALUES ($1, $2)`,
		ride.ID, ride.StartTime,
	)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ride_riders (rider_id, ride_id) VALUES ($1, $2)`,
		ride.RiderID, ride.ID,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `
		SELECT r.id, COALESCE(rr.rider_id, ''), r.vehicle_id, r.is_shared, r.start_time, r.end_time, r.fare,
		       r.start_lat, r.start_lng, r.end_lat, r.end_lng, r.start_location, r.end_location, r.status
		FROM rides r
		LEFT JOIN ride_riders rr ON rr.ride_id = r.id
		WHERE r.id = $1
	`

	var ride domain.Ride
	var vehicleID sql.NullString
	var endTime sql.NullTime
	var fare sql.NullFloat64

	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&ride.ID,
		&ride.RiderID,
		&vehicleID,
		&ride.Shared,
		&ride.StartTime,
		&endTime,
		&fare,
		&ride.StartLat,
		&ride.StartLng,
		&ride.EndLat,
		&ride.EndLng,
		&ride.StartLocation,
		&ride.EndLocation,
		&ride.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if vehicleID.Valid {
		ride.VehicleID = vehicleID.String
	}
	if endTime.Valid {
		ride.EndTime = endTime.Time
	}
	if fare.Valid {
		ride.Fare = fare.Float64
	}

	return &ride, nil
}

// Accept performs the atomic pending→accepted transition. The conditional
// update and the queue marker deletion commit together, so an accepted ride
// can never linger in the available list.
func (r *RideRepository) Accept(ctx context.Context, rideID, vehicleID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	result, err := tx.ExecContext(ctx,
		`UPDATE rides SET vehicle_id = $1, status = $2 WHERE id = $3 AND status = $4`,
		vehicleID, domain.RideStatusAccepted, rideID, domain.RideStatusPending,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		// Distinguish a missing ride from a lost race.
		var exists bool
		if err = tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM rides WHERE id = $1)`, rideID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			err = repository.ErrNotFound
			return err
		}
		err = repository.ErrRideNotPending
		return err
	}

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM ride_requests WHERE ride_id = $1`, rideID,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateStatus performs the conditional from→to status transition. Matching
// on the expected prior status means two interleaved progression calls can
// never regress a ride; the stale writer loses.
func (r *RideRepository) UpdateStatus(ctx context.Context, rideID string, from, to domain.RideStatus) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE rides SET status = $1 WHERE id = $2 AND status = $3`, to, rideID, from,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		var exists bool
		if err := r.q.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM rides WHERE id = $1)`, rideID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return repository.ErrNotFound
		}
		return repository.ErrStatusConflict
	}

	return nil
}

// ListAvailable returns pending rides with a live queue marker, earliest
// request first.
func (r *RideRepository) ListAvailable(ctx context.Context) ([]*domain.AvailableRide, error) {
	query := `
		SELECT r.id, r.start_location, r.end_location, r.start_lat, r.start_lng, r.end_lat, r.end_lng, rr.requested_at
		FROM ride_requests rr
		JOIN rides r ON rr.ride_id = r.id
		WHERE r.status = $1
		ORDER BY r.start_time ASC
	`

	rows, err := r.q.QueryContext(ctx, query, domain.RideStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.AvailableRide
	for rows.Next() {
		var ride domain.AvailableRide
		if err := rows.Scan(
			&ride.RideID,
			&ride.StartLocation,
			&ride.EndLocation,
			&ride.Start.Lat,
			&ride.Start.Lng,
			&ride.End.Lat,
			&ride.End.Lng,
			&ride.RequestedAt,
		); err != nil {
			return nil, err
		}
		rides = append(rides, &ride)
	}
	return rides, rows.Err()
}

// GetStatusView returns the polling read model, joining the assigned
// driver's live location when a vehicle is set.
func (r *RideRepository) GetStatusView(ctx context.Context, rideID string) (*domain.RideStatusView, error) {
	query := `
		SELECT r.id, r.status, r.start_lat, r.start_lng, r.end_lat, r.end_lng, d.current_lat, d.current_lng
		FROM rides r
		LEFT JOIN vehicles v ON r.vehicle_id = v.id
		LEFT JOIN drivers d ON v.driver_id = d.id
		WHERE r.id = $1
	`

	var view domain.RideStatusView
	var driverLat, driverLng sql.NullFloat64

	err := r.q.QueryRowContext(ctx, query, rideID).Scan(
		&view.RideID,
		&view.Status,
		&view.Start.Lat,
		&view.Start.Lng,
		&view.End.Lat,
		&view.End.Lng,
		&driverLat,
		&driverLng,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if driverLat.Valid && driverLng.Valid {
		view.Driver = &domain.LatLng{Lat: driverLat.Float64, Lng: driverLng.Float64}
	}

	return &view, nil
}

// HasActiveRideForDriver reports whether any ride bound to one of the
// driver's vehicles is in an active state.
func (r *RideRepository) HasActiveRideForDriver(ctx context.Context, driverID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM rides r
			JOIN vehicles v ON r.vehicle_id = v.id
			WHERE v.driver_id = $1 AND r.status NOT IN ($2, $3)
		)
	`

	var active bool
	err := r.q.QueryRowContext(ctx, query, driverID, domain.RideStatusPending, domain.RideStatusCompleted).Scan(&active)
	if err != nil {
		return false, err
	}

	return active, nil
}
