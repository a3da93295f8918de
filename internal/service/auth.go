package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"rideshare/internal/auth"
	"rideshare/internal/domain"
	"rideshare/internal/repository"
	"rideshare/internal/repository/postgres"
)

// Starting location assigned to new drivers until their first report.
const (
	defaultDriverLat = 23.780636
	defaultDriverLng = 90.419325
)

// AuthService handles signup, login, and profile lookup.
type AuthService struct {
	db          *sql.DB
	personRepo  repository.PersonRepository
	riderRepo   repository.RiderRepository
	driverRepo  repository.DriverRepository
	vehicleRepo repository.VehicleRepository
	tokens      *auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	db *sql.DB,
	personRepo repository.PersonRepository,
	riderRepo repository.RiderRepository,
	driverRepo repository.DriverRepository,
	vehicleRepo repository.VehicleRepository,
	tokens *auth.TokenManager,
) *AuthService {
	return &AuthService{
		db:          db,
		personRepo:  personRepo,
		riderRepo:   riderRepo,
		driverRepo:  driverRepo,
		vehicleRepo: vehicleRepo,
		tokens:      tokens,
	}
}

// VehicleInput describes the vehicle registered during driver signup.
type VehicleInput struct {
	Plate        string
	Manufacturer string
	Model        string
	Year         int
	Color        string
	Seats        int
}

// SignUpRequest contains the parameters for signup.
type SignUpRequest struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	WantsToBeDriver bool
	License         string
	Vehicle         *VehicleInput
}

// SignUpResult contains the identities created by signup.
type SignUpResult struct {
	PersonID string
	RiderID  string
	DriverID string // empty unless signed up as driver
}

// SignUp creates the person and rider records, and optionally the driver and
// vehicle, in one transaction.
func (s *AuthService) SignUp(ctx context.Context, req SignUpRequest) (*SignUpResult, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, ErrInvalidSignup
	}
	if req.WantsToBeDriver && (req.License == "" || req.Vehicle == nil || req.Vehicle.Plate == "") {
		return nil, ErrMissingVehicle
	}

	if _, err := s.personRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, repository.ErrDuplicate
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txPersonRepo := postgres.NewPersonRepositoryWithTx(tx)
	txRiderRepo := postgres.NewRiderRepositoryWithTx(tx)
	txDriverRepo := postgres.NewDriverRepositoryWithTx(tx)
	txVehicleRepo := postgres.NewVehicleRepositoryWithTx(tx)

	person := &domain.Person{
		ID:    uuid.New().String(),
		Email: req.Email,
		Name:  req.Name,
		Phone: req.Phone,
	}
	if err = txPersonRepo.Create(ctx, person); err != nil {
		return nil, err
	}

	rider := &domain.Rider{
		ID:           uuid.New().String(),
		PersonID:     person.ID,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	if err = txRiderRepo.Create(ctx, rider); err != nil {
		return nil, err
	}

	result := &SignUpResult{PersonID: person.ID, RiderID: rider.ID}

	if req.WantsToBeDriver {
		driver := &domain.Driver{
			ID:          uuid.New().String(),
			PersonID:    person.ID,
			License:     req.License,
			Rating:      domain.DefaultDriverRating,
			Active:      true,
			CurrentLat:  defaultDriverLat,
			CurrentLng:  defaultDriverLng,
			LocationSet: true,
		}
		if err = txDriverRepo.Create(ctx, driver); err != nil {
			return nil, err
		}

		vehicle := &domain.Vehicle{
			ID:           uuid.New().String(),
			DriverID:     driver.ID,
			Plate:        req.Vehicle.Plate,
			Manufacturer: req.Vehicle.Manufacturer,
			Model:        req.Vehicle.Model,
			Year:         req.Vehicle.Year,
			Color:        req.Vehicle.Color,
			Seats:        req.Vehicle.Seats,
		}
		if err = txVehicleRepo.Create(ctx, vehicle); err != nil {
			return nil, err
		}

		result.DriverID = driver.ID
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return result, nil
}

// LoginRequest contains the parameters for login.
type LoginRequest struct {
	Role     domain.Role
	ID       string
	Password string // rider password or driver license
}

// LoginResult contains the issued credential.
type LoginResult struct {
	Token     string
	SubjectID string
	Role      domain.Role
}

// Login verifies the subject's credential and issues a bearer token. All
// failures map to ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if req.ID == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	switch req.Role {
	case domain.RoleRider:
		rider, err := s.riderRepo.GetByID(ctx, req.ID)
		if err != nil || !auth.CheckPassword(rider.PasswordHash, req.Password) {
			return nil, ErrInvalidCredentials
		}
	case domain.RoleDriver:
		driver, err := s.driverRepo.GetByID(ctx, req.ID)
		if err != nil || driver.License != req.Password {
			return nil, ErrInvalidCredentials
		}
	default:
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(req.ID, req.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, SubjectID: req.ID, Role: req.Role}, nil
}

// ProfileView is the assembled profile for the authenticated subject.
type ProfileView struct {
	PersonID string
	Name     string
	Email    string
	Phone    string
	Role     domain.Role

	// Rider fields.
	CreatedAt time.Time

	// Driver fields.
	License     string
	Rating      float64
	RatingCount int64
	Active      bool
	Vehicle     *domain.Vehicle
}

// Profile assembles the person and role-specific attributes for a subject.
func (s *AuthService) Profile(ctx context.Context, subjectID string, role domain.Role) (*ProfileView, error) {
	switch role {
	case domain.RoleRider:
		rider, err := s.riderRepo.GetByID(ctx, subjectID)
		if err != nil {
			return nil, err
		}
		person, err := s.personRepo.GetByID(ctx, rider.PersonID)
		if err != nil {
			return nil, err
		}
		return &ProfileView{
			PersonID:  person.ID,
			Name:      person.Name,
			Email:     person.Email,
			Phone:     person.Phone,
			Role:      domain.RoleRider,
			CreatedAt: rider.CreatedAt,
		}, nil

	case domain.RoleDriver:
		driver, err := s.driverRepo.GetByID(ctx, subjectID)
		if err != nil {
			return nil, err
		}
		person, err := s.personRepo.GetByID(ctx, driver.PersonID)
		if err != nil {
			return nil, err
		}
		view := &ProfileView{
			PersonID:    person.ID,
			Name:        person.Name,
			Email:       person.Email,
			Phone:       person.Phone,
			Role:        domain.RoleDriver,
			License:     driver.License,
			Rating:      driver.Rating,
			RatingCount: driver.RatingCount,
			Active:      driver.Active,
		}
		if vehicle, err := s.vehicleRepo.GetByDriverID(ctx, driver.ID); err == nil {
			view.Vehicle = vehicle
		}
		return view, nil
	}

	return nil, repository.ErrNotFound
}
