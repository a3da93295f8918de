package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// PersonRepository is a PostgreSQL implementation of repository.PersonRepository.
type PersonRepository struct {
	q Querier
}

// NewPersonRepository creates a new PostgreSQL person repository.
func NewPersonRepository(db *sql.DB) *PersonRepository {
	return &PersonRepository{q: db}
}

// NewPersonRepositoryWithTx creates a person repository using a transaction.
func NewPersonRepositoryWithTx(tx *sql.Tx) *PersonRepository {
	return &PersonRepository{q: tx}
}

// Create adds a new person.
func (r *PersonRepository) Create(ctx context.Context, person *domain.Person) error {
	query := `INSERT INTO people (id, email, name, phone) VALUES ($1, $2, $3, $4)`

	_, err := r.q.ExecContext(ctx, query, person.ID, person.Email, person.Name, person.Phone)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

// GetByID retrieves a person by ID.
func (r *PersonRepository) GetByID(ctx context.Context, id string) (*domain.Person, error) {
	query := `SELECT id, email, COALESCE(name, ''), COALESCE(phone, '') FROM people WHERE id = $1`
	return r.scanPerson(r.q.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a person by email.
func (r *PersonRepository) GetByEmail(ctx context.Context, email string) (*domain.Person, error) {
	query := `SELECT id, email, COALESCE(name, ''), COALESCE(phone, '') FROM people WHERE email = $1`
	return r.scanPerson(r.q.QueryRowContext(ctx, query, email))
}

func (r *PersonRepository) scanPerson(row *sql.Row) (*domain.Person, error) {
	var person domain.Person
	err := row.Scan(&person.ID, &person.Email, &person.Name, &person.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &person, nil
}

// RiderRepository is a PostgreSQL implementation of repository.RiderRepository.
type RiderRepository struct {
	q Querier
}

// NewRiderRepository creates a new PostgreSQL rider repository.
func NewRiderRepository(db *sql.DB) *RiderRepository {
	return &RiderRepository{q: db}
}

// NewRiderRepositoryWithTx creates a rider repository using a transaction.
func NewRiderRepositoryWithTx(tx *sql.Tx) *RiderRepository {
	return &RiderRepository{q: tx}
}

// Create adds a new rider.
func (r *RiderRepository) Create(ctx context.Context, rider *domain.Rider) error {
	query := `INSERT INTO riders (id, person_id, password_hash, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.ExecContext(ctx, query, rider.ID, rider.PersonID, rider.PasswordHash, rider.CreatedAt)
	return err
}

// GetByID retrieves a rider by ID.
func (r *RiderRepository) GetByID(ctx context.Context, id string) (*domain.Rider, error) {
	query := `SELECT id, person_id, password_hash, created_at FROM riders WHERE id = $1`

	var rider domain.Rider
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&rider.ID,
		&rider.PersonID,
		&rider.PasswordHash,
		&rider.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &rider, nil
}
