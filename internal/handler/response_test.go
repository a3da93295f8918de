package handler

import (
	"errors"
	"net/http"
	"testing"

	"rideshare/internal/repository"
	"rideshare/internal/service"
)

func TestMapErrorToHTTPStatus(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", repository.ErrNotFound, http.StatusNotFound},
		{"missing input", service.ErrMissingLocationLabel, http.StatusBadRequest},
		{"driver without vehicle", service.ErrDriverHasNoVehicle, http.StatusBadRequest},
		{"fare not set", service.ErrFareNotSet, http.StatusBadRequest},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"lost dispatch race", service.ErrRideNotAvailable, http.StatusConflict},
		{"driver double-booked", service.ErrDriverHasActiveRide, http.StatusConflict},
		{"payment before dispatch", service.ErrRideNotDispatched, http.StatusConflict},
		{"ride already completed", service.ErrRideCompleted, http.StatusConflict},
		{"stale status write", repository.ErrStatusConflict, http.StatusConflict},
		{"invalid transition", service.ErrInvalidTransition, http.StatusConflict},
		{"no route", service.ErrNoRoute, http.StatusServiceUnavailable},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		if got := mapErrorToHTTPStatus(tc.err); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}
