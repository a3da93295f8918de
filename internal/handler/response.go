package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/repository"
	"rideshare/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
// Unrecognized errors get a generic message so internals never leak.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code == http.StatusInternalServerError {
		c.JSON(code, ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidRiderID),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidRideID),
		errors.Is(err, service.ErrInvalidStartLocation),
		errors.Is(err, service.ErrInvalidEndLocation),
		errors.Is(err, service.ErrMissingLocationLabel),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrInvalidPaymentID),
		errors.Is(err, service.ErrInvalidRatingValue),
		errors.Is(err, service.ErrInvalidSignup),
		errors.Is(err, service.ErrMissingVehicle),
		errors.Is(err, service.ErrDriverHasNoVehicle),
		errors.Is(err, service.ErrFareNotSet):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Conflict errors
	case errors.Is(err, service.ErrRideNotAvailable),
		errors.Is(err, service.ErrDriverHasActiveRide),
		errors.Is(err, service.ErrDispatchInProgress),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrRideNotDispatched),
		errors.Is(err, service.ErrRideCompleted),
		errors.Is(err, repository.ErrStatusConflict),
		errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict

	// Routing collaborator failures
	case errors.Is(err, service.ErrNoRoute):
		return http.StatusServiceUnavailable

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
