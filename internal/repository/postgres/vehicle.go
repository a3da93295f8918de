package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// VehicleRepository is a PostgreSQL implementation of repository.VehicleRepository.
type VehicleRepository struct {
	q Querier
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{q: db}
}

// NewVehicleRepositoryWithTx creates a vehicle repository using a transaction.
func NewVehicleRepositoryWithTx(tx *sql.Tx) *VehicleRepository {
	return &VehicleRepository{q: tx}
}

// Create adds a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, driver_id, plate, manufacturer, model, year, color, seats)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.q.ExecContext(ctx, query,
		vehicle.ID,
		vehicle.DriverID,
		vehicle.Plate,
		vehicle.Manufacturer,
		vehicle.Model,
		vehicle.Year,
		vehicle.Color,
		vehicle.Seats,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `
		SELECT id, driver_id, plate, manufacturer, model, year, color, seats
		FROM vehicles WHERE id = $1
	`
	return r.scanVehicle(r.q.QueryRowContext(ctx, query, id))
}

// GetByDriverID retrieves the driver's vehicle.
func (r *VehicleRepository) GetByDriverID(ctx context.Context, driverID string) (*domain.Vehicle, error) {
	query := `
		SELECT id, driver_id, plate, manufacturer, model, year, color, seats
		FROM vehicles WHERE driver_id = $1
		LIMIT 1
	`
	return r.scanVehicle(r.q.QueryRowContext(ctx, query, driverID))
}

func (r *VehicleRepository) scanVehicle(row *sql.Row) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	err := row.Scan(
		&vehicle.ID,
		&vehicle.DriverID,
		&vehicle.Plate,
		&vehicle.Manufacturer,
		&vehicle.Model,
		&vehicle.Year,
		&vehicle.Color,
		&vehicle.Seats,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}
