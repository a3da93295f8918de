package repository

import (
	"context"

	"rideshare/internal/domain"
)

// PersonRepository defines the persistence operations for identity anchors.
type PersonRepository interface {
	// Create adds a new person.
	Create(ctx context.Context, person *domain.Person) error

	// GetByID retrieves a person by ID.
	GetByID(ctx context.Context, id string) (*domain.Person, error)

	// GetByEmail retrieves a person by email.
	GetByEmail(ctx context.Context, email string) (*domain.Person, error)
}

// RiderRepository defines the persistence operations for riders.
type RiderRepository interface {
	// Create adds a new rider.
	Create(ctx context.Context, rider *domain.Rider) error

	// GetByID retrieves a rider by ID.
	GetByID(ctx context.Context, id string) (*domain.Rider, error)
}
