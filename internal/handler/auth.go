package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rideshare/internal/domain"
	"rideshare/internal/middleware"
	"rideshare/internal/service"
)

// AuthHandler handles signup, login, and profile requests.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// VehicleRequest is the vehicle section of a driver signup.
type VehicleRequest struct {
	Plate        string `json:"plate"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Model        string `json:"model,omitempty"`
	Year         int    `json:"year,omitempty"`
	Color        string `json:"color,omitempty"`
	Seats        int    `json:"seats,omitempty"`
}

// SignUpRequest is the HTTP request body for signup.
type SignUpRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone,omitempty"`
	Password string          `json:"password"`
	Driver   bool            `json:"driver,omitempty"`
	License  string          `json:"license,omitempty"`
	Vehicle  *VehicleRequest `json:"vehicle,omitempty"`
}

// SignUpResponse is the HTTP response for signup.
type SignUpResponse struct {
	PersonID string `json:"person_id"`
	RiderID  string `json:"rider_id"`
	DriverID string `json:"driver_id,omitempty"`
}

// SignUp handles POST /v1/auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	signup := service.SignUpRequest{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		WantsToBeDriver: req.Driver,
		License:         req.License,
	}
	if req.Vehicle != nil {
		signup.Vehicle = &service.VehicleInput{
			Plate:        req.Vehicle.Plate,
			Manufacturer: req.Vehicle.Manufacturer,
			Model:        req.Vehicle.Model,
			Year:         req.Vehicle.Year,
			Color:        req.Vehicle.Color,
			Seats:        req.Vehicle.Seats,
		}
	}

	result, err := h.authService.SignUp(c.Request.Context(), signup)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, SignUpResponse{
		PersonID: result.PersonID,
		RiderID:  result.RiderID,
		DriverID: result.DriverID,
	})
}

// LoginRequest is the HTTP request body for login. Drivers present their
// license as the password.
type LoginRequest struct {
	Role     string `json:"role"` // Rider or Driver
	ID       string `json:"id"`
	Password string `json:"password"`
}

// LoginResponse is the HTTP response for login.
type LoginResponse struct {
	Token     string `json:"token"`
	SubjectID string `json:"subject_id"`
	Role      string `json:"role"`
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), service.LoginRequest{
		Role:     domain.Role(req.Role),
		ID:       req.ID,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, LoginResponse{
		Token:     result.Token,
		SubjectID: result.SubjectID,
		Role:      string(result.Role),
	})
}

// ProfileVehicleResponse is the vehicle section of a driver profile.
type ProfileVehicleResponse struct {
	ID           string `json:"id"`
	Plate        string `json:"plate"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Model        string `json:"model,omitempty"`
	Year         int    `json:"year,omitempty"`
	Color        string `json:"color,omitempty"`
	Seats        int    `json:"seats,omitempty"`
}

// ProfileResponse is the HTTP response for the authenticated subject's profile.
type ProfileResponse struct {
	PersonID    string                  `json:"person_id"`
	Name        string                  `json:"name"`
	Email       string                  `json:"email"`
	Phone       string                  `json:"phone,omitempty"`
	Role        string                  `json:"role"`
	CreatedAt   string                  `json:"created_at,omitempty"`
	License     string                  `json:"license,omitempty"`
	Rating      float64                 `json:"rating,omitempty"`
	RatingCount int64                   `json:"rating_count,omitempty"`
	Active      bool                    `json:"active,omitempty"`
	Vehicle     *ProfileVehicleResponse `json:"vehicle,omitempty"`
}

// Profile handles GET /v1/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	view, err := h.authService.Profile(c.Request.Context(), middleware.Subject(c), middleware.Role(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := ProfileResponse{
		PersonID:    view.PersonID,
		Name:        view.Name,
		Email:       view.Email,
		Phone:       view.Phone,
		Role:        string(view.Role),
		License:     view.License,
		Rating:      view.Rating,
		RatingCount: view.RatingCount,
		Active:      view.Active,
	}
	if !view.CreatedAt.IsZero() {
		response.CreatedAt = view.CreatedAt.Format(time.RFC3339)
	}
	if view.Vehicle != nil {
		response.Vehicle = &ProfileVehicleResponse{
			ID:           view.Vehicle.ID,
			Plate:        view.Vehicle.Plate,
			Manufacturer: view.Vehicle.Manufacturer,
			Model:        view.Vehicle.Model,
			Year:         view.Vehicle.Year,
			Color:        view.Vehicle.Color,
			Seats:        view.Vehicle.Seats,
		}
	}

	respondJSON(c, http.StatusOK, response)
}
