package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rideshare/internal/domain"
	"rideshare/internal/middleware"
	"rideshare/internal/service"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService *service.RideService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// CreateRideRequest is the HTTP request body for requesting a ride.
type CreateRideRequest struct {
	StartLat      float64 `json:"start_lat"`
	StartLng      float64 `json:"start_lng"`
	EndLat        float64 `json:"end_lat"`
	EndLng        float64 `json:"end_lng"`
	StartLocation string  `json:"start_location"`
	EndLocation   string  `json:"end_location"`
	Shared        bool    `json:"shared,omitempty"`
}

// RideResponse is the HTTP response for ride data.
type RideResponse struct {
	ID            string  `json:"id"`
	RiderID       string  `json:"rider_id"`
	VehicleID     string  `json:"vehicle_id,omitempty"`
	Shared        bool    `json:"shared"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time,omitempty"`
	Fare          float64 `json:"fare"`
	StartLat      float64 `json:"start_lat"`
	StartLng      float64 `json:"start_lng"`
	EndLat        float64 `json:"end_lat"`
	EndLng        float64 `json:"end_lng"`
	StartLocation string  `json:"start_location"`
	EndLocation   string  `json:"end_location"`
	Status        string  `json:"status"`
}

func rideResponse(ride *domain.Ride) RideResponse {
	resp := RideResponse{
		ID:            ride.ID,
		RiderID:       ride.RiderID,
		VehicleID:     ride.VehicleID,
		Shared:        ride.Shared,
		StartTime:     ride.StartTime.Format(time.RFC3339),
		Fare:          ride.Fare,
		StartLat:      ride.StartLat,
		StartLng:      ride.StartLng,
		EndLat:        ride.EndLat,
		EndLng:        ride.EndLng,
		StartLocation: ride.StartLocation,
		EndLocation:   ride.EndLocation,
		Status:        string(ride.Status),
	}
	if !ride.EndTime.IsZero() {
		resp.EndTime = ride.EndTime.Format(time.RFC3339)
	}
	return resp
}

// CreateRide handles POST /v1/rides
func (h *RideHandler) CreateRide(c *gin.Context) {
	var req CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.rideService.CreateRide(c.Request.Context(), service.CreateRideRequest{
		RiderID:       middleware.Subject(c),
		StartLat:      req.StartLat,
		StartLng:      req.StartLng,
		EndLat:        req.EndLat,
		EndLng:        req.EndLng,
		StartLocation: req.StartLocation,
		EndLocation:   req.EndLocation,
		Shared:        req.Shared,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, rideResponse(ride))
}

// AcceptRide handles POST /v1/rides/:id/accept
func (h *RideHandler) AcceptRide(c *gin.Context) {
	ride, err := h.rideService.AcceptRide(c.Request.Context(), service.AcceptRideRequest{
		DriverID: middleware.Subject(c),
		RideID:   c.Param("id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, rideResponse(ride))
}

// ProgressRideRequest is the HTTP request body for moving a ride forward.
type ProgressRideRequest struct {
	Status string `json:"status"`
}

// ProgressRide handles PATCH /v1/rides/:id/status
func (h *RideHandler) ProgressRide(c *gin.Context) {
	var req ProgressRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.rideService.ProgressRide(c.Request.Context(), c.Param("id"), domain.RideStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, rideResponse(ride))
}

// AvailableRideResponse is one entry in the driver-facing queue.
type AvailableRideResponse struct {
	RideID        string        `json:"ride_id"`
	StartLocation string        `json:"start_location"`
	EndLocation   string        `json:"end_location"`
	Start         domain.LatLng `json:"start"`
	End           domain.LatLng `json:"end"`
	RequestedAt   string        `json:"requested_at"`
}

// AvailableRides handles GET /v1/rides/available
func (h *RideHandler) AvailableRides(c *gin.Context) {
	rides, err := h.rideService.AvailableRides(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]AvailableRideResponse, 0, len(rides))
	for _, r := range rides {
		response = append(response, AvailableRideResponse{
			RideID:        r.RideID,
			StartLocation: r.StartLocation,
			EndLocation:   r.EndLocation,
			Start:         r.Start,
			End:           r.End,
			RequestedAt:   r.RequestedAt.Format(time.RFC3339),
		})
	}

	respondJSON(c, http.StatusOK, response)
}

// RideStatusResponse is the polling read model for a ride.
type RideStatusResponse struct {
	RideID string         `json:"ride_id"`
	Status string         `json:"status"`
	Start  domain.LatLng  `json:"start"`
	End    domain.LatLng  `json:"end"`
	Driver *domain.LatLng `json:"driver,omitempty"`
}

// RideStatus handles GET /v1/rides/:id/status
func (h *RideHandler) RideStatus(c *gin.Context) {
	view, err := h.rideService.RideStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, RideStatusResponse{
		RideID: view.RideID,
		Status: string(view.Status),
		Start:  view.Start,
		End:    view.End,
		Driver: view.Driver,
	})
}

// FareResponse is the HTTP response for a fare query.
type FareResponse struct {
	RideID string  `json:"ride_id"`
	Fare   float64 `json:"fare"`
}

// Fare handles GET /v1/rides/:id/fare
func (h *RideHandler) Fare(c *gin.Context) {
	rideID := c.Param("id")

	fare, err := h.rideService.Fare(c.Request.Context(), rideID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, FareResponse{RideID: rideID, Fare: fare})
}
