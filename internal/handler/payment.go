package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rideshare/internal/domain"
	"rideshare/internal/service"
)

// PaymentHandler handles HTTP requests for payments.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// PayRideRequest is the HTTP request body for paying a ride.
type PayRideRequest struct {
	RideID string `json:"ride_id"`
	Method string `json:"method"` // cash, card, mobile_wallet, bank
}

// PaymentResponse is the HTTP response for payment data.
type PaymentResponse struct {
	ID     string  `json:"id"`
	RideID string  `json:"ride_id"`
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
	Status string  `json:"status"`
	PaidAt string  `json:"paid_at"`
}

func paymentResponse(payment *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:     payment.ID,
		RideID: payment.RideID,
		Amount: payment.Amount,
		Method: string(payment.Method),
		Status: string(payment.Status),
		PaidAt: payment.PaidAt.Format(time.RFC3339),
	}
}

// PayRide handles POST /v1/payments
func (h *PaymentHandler) PayRide(c *gin.Context) {
	var req PayRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	payment, err := h.paymentService.PayRide(c.Request.Context(), service.PayRideRequest{
		RideID: req.RideID,
		Method: domain.PaymentMethod(req.Method),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, paymentResponse(payment))
}

// GetPayment handles GET /v1/payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	payment, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, paymentResponse(payment))
}
