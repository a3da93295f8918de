package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/domain"
	"rideshare/internal/service"
)

// DirectionsHandler proxies route lookups to the routing collaborator.
type DirectionsHandler struct {
	routing service.RoutingService
}

// NewDirectionsHandler creates a new DirectionsHandler.
func NewDirectionsHandler(routing service.RoutingService) *DirectionsHandler {
	return &DirectionsHandler{routing: routing}
}

// DirectionsRequest is the HTTP request body for a route lookup.
type DirectionsRequest struct {
	Start domain.LatLng `json:"start"`
	End   domain.LatLng `json:"end"`
}

// DirectionsResponse is the HTTP response for a route lookup.
type DirectionsResponse struct {
	Path            []domain.LatLng `json:"path"`
	DistanceKm      float64         `json:"distance_km"`
	DurationSeconds float64         `json:"duration_seconds"`
}

// GetDirections handles POST /v1/directions
func (h *DirectionsHandler) GetDirections(c *gin.Context) {
	var req DirectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if h.routing == nil {
		respondError(c, service.ErrNoRoute)
		return
	}

	route, err := h.routing.Route(c.Request.Context(), req.Start, req.End)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, DirectionsResponse{
		Path:            route.Path,
		DistanceKm:      route.DistanceKm,
		DurationSeconds: route.Duration.Seconds(),
	})
}
