package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/service"
)

// RatingHandler handles HTTP requests for ride ratings.
type RatingHandler struct {
	ratingService *service.RatingService
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(ratingService *service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// RateRideRequest is the HTTP request body for rating a ride.
type RateRideRequest struct {
	Value   float64 `json:"value"`
	Comment string  `json:"comment,omitempty"`
}

// RateRideResponse is the driver's recomputed aggregate after the rating.
type RateRideResponse struct {
	DriverID    string  `json:"driver_id"`
	Rating      float64 `json:"rating"`
	RatingCount int64   `json:"rating_count"`
}

// RateRide handles POST /v1/rides/:id/rating
func (h *RatingHandler) RateRide(c *gin.Context) {
	var req RateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	summary, err := h.ratingService.RateRide(c.Request.Context(), service.RateRideRequest{
		RideID:  c.Param("id"),
		Value:   req.Value,
		Comment: req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, RateRideResponse{
		DriverID:    summary.DriverID,
		Rating:      summary.Rating,
		RatingCount: summary.RatingCount,
	})
}
