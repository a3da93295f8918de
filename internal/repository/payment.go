package repository

import (
	"context"

	"rideshare/internal/domain"
)

// PaymentRepository defines the persistence operations for payments.
type PaymentRepository interface {
	// Record inserts the payment and marks the referenced ride completed as
	// one atomic unit. A ride is never left completed without its payment or
	// vice versa.
	Record(ctx context.Context, payment *domain.Payment) error

	// GetByID retrieves a payment by ID.
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
}
