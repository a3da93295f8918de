package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"rideshare/internal/auth"
	"rideshare/internal/domain"
	"rideshare/internal/service"
)

func newAuthFixture() (*MockPersonRepository, *MockRiderRepository, *MockDriverRepository, *MockVehicleRepository, *service.AuthService) {
	personRepo := NewMockPersonRepository()
	riderRepo := NewMockRiderRepository()
	driverRepo := NewMockDriverRepository()
	vehicleRepo := NewMockVehicleRepository()
	tokens := auth.NewTokenManager("test-secret", 2*time.Hour)
	svc := service.NewAuthService(nil, personRepo, riderRepo, driverRepo, vehicleRepo, tokens)
	return personRepo, riderRepo, driverRepo, vehicleRepo, svc
}

func TestLogin_RiderPasswordVerified(t *testing.T) {
	ctx := context.Background()
	_, riderRepo, _, _, svc := newAuthFixture()

	hash, err := auth.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	riderRepo.AddRider(&domain.Rider{ID: "rider-1", PersonID: "person-1", PasswordHash: hash})

	result, err := svc.Login(ctx, service.LoginRequest{Role: domain.RoleRider, ID: "rider-1", Password: "s3cret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token")
	}
	if result.Role != domain.RoleRider {
		t.Errorf("expected rider role, got %s", result.Role)
	}

	_, err = svc.Login(ctx, service.LoginRequest{Role: domain.RoleRider, ID: "rider-1", Password: "wrong"})
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_DriverByLicense(t *testing.T) {
	ctx := context.Background()
	_, _, driverRepo, _, svc := newAuthFixture()

	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", PersonID: "person-1", License: "DL-42"})

	result, err := svc.Login(ctx, service.LoginRequest{Role: domain.RoleDriver, ID: "driver-1", Password: "DL-42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Role != domain.RoleDriver {
		t.Errorf("expected driver role, got %s", result.Role)
	}

	_, err = svc.Login(ctx, service.LoginRequest{Role: domain.RoleDriver, ID: "driver-1", Password: "DL-99"})
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownSubjectOrRoleRejected(t *testing.T) {
	ctx := context.Background()
	_, _, _, _, svc := newAuthFixture()

	testCases := []service.LoginRequest{
		{Role: domain.RoleRider, ID: "rider-missing", Password: "x"},
		{Role: domain.RoleDriver, ID: "driver-missing", Password: "x"},
		{Role: "Admin", ID: "someone", Password: "x"},
		{Role: domain.RoleRider, ID: "", Password: "x"},
		{Role: domain.RoleRider, ID: "rider-1", Password: ""},
	}

	for _, tc := range testCases {
		if _, err := svc.Login(ctx, tc); !errors.Is(err, service.ErrInvalidCredentials) {
			t.Errorf("login %+v: expected ErrInvalidCredentials, got %v", tc, err)
		}
	}
}

func TestProfile_RiderAndDriverViews(t *testing.T) {
	ctx := context.Background()
	personRepo, riderRepo, driverRepo, vehicleRepo, svc := newAuthFixture()

	created := time.Now().Add(-24 * time.Hour)
	_ = personRepo.Create(ctx, &domain.Person{ID: "person-1", Email: "a@example.com", Name: "Ayesha"})
	riderRepo.AddRider(&domain.Rider{ID: "rider-1", PersonID: "person-1", CreatedAt: created})

	_ = personRepo.Create(ctx, &domain.Person{ID: "person-2", Email: "b@example.com", Name: "Bashir"})
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", PersonID: "person-2", License: "DL-42", Rating: 4.5, RatingCount: 10, Active: true})
	vehicleRepo.AddVehicle(&domain.Vehicle{ID: "vehicle-1", DriverID: "driver-1", Plate: "DHK-1234"})

	riderView, err := svc.Profile(ctx, "rider-1", domain.RoleRider)
	if err != nil {
		t.Fatalf("rider profile: %v", err)
	}
	if riderView.Name != "Ayesha" || !riderView.CreatedAt.Equal(created) {
		t.Errorf("unexpected rider profile: %+v", riderView)
	}

	driverView, err := svc.Profile(ctx, "driver-1", domain.RoleDriver)
	if err != nil {
		t.Fatalf("driver profile: %v", err)
	}
	if driverView.License != "DL-42" || driverView.Rating != 4.5 {
		t.Errorf("unexpected driver profile: %+v", driverView)
	}
	if driverView.Vehicle == nil || driverView.Vehicle.Plate != "DHK-1234" {
		t.Errorf("expected vehicle on driver profile, got %+v", driverView.Vehicle)
	}
}
