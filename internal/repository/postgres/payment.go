package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// PaymentRepository is a PostgreSQL implementation of repository.PaymentRepository.
type PaymentRepository struct {
	db *sql.DB
	q  Querier
}

// NewPaymentRepository creates a new PostgreSQL payment repository.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db, q: db}
}

// Record inserts the payment and marks the referenced ride completed in one
// transaction. There is no observable state where one write holds without
// the other.
func (r *PaymentRepository) Record(ctx context.Context, payment *domain.Payment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO payments (id, ride_id, amount, method, status, paid_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		payment.ID, payment.RideID, payment.Amount, payment.Method, payment.Status, payment.PaidAt,
	); err != nil {
		return err
	}

	// Only a dispatched, not-yet-completed ride can be finalized: a pending
	// ride has no vehicle bound, and a completed one is already paid.
	result, err := tx.ExecContext(ctx,
		`UPDATE rides SET status = $1, end_time = $2 WHERE id = $3 AND status NOT IN ($4, $5)`,
		domain.RideStatusCompleted, payment.PaidAt, payment.RideID,
		domain.RideStatusPending, domain.RideStatusCompleted,
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
		if err = tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM rides WHERE id = $1)`, payment.RideID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			err = repository.ErrNotFound
			return err
		}
		err = repository.ErrStatusConflict
		return err
	}

	return tx.Commit()
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `SELECT id, ride_id, amount, method, status, paid_at FROM payments WHERE id = $1`

	var payment domain.Payment
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&payment.ID,
		&payment.RideID,
		&payment.Amount,
		&payment.Method,
		&payment.Status,
		&payment.PaidAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &payment, nil
}
