package payments

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"skinsano-backend/internal/shared/server/middleware"
	"skinsano-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the payments service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches payment routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/orders", h.createOrder)
	rg.POST("/payments/verify", h.verifyPayment)
}

type createOrderRequestBody struct {
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	AnalysisID     string  `json:"analysisId"`
	ConsultationID string  `json:"consultationId"`
}

func (h *Handler) createOrder(c *gin.Context) {
	if middleware.IsGuestFromContext(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to make a payment", nil)
		return
	}

	var req createOrderRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.CreateOrder(c.Request.Context(), CreateOrderInput{
		UserID:         middleware.UserIDFromContext(c),
		Amount:         req.Amount,
		Currency:       req.Currency,
		AnalysisID:     req.AnalysisID,
		ConsultationID: req.ConsultationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount):
			respond.Error(c, http.StatusBadRequest, "validation_error", "amount must be positive", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create payment order", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, result)
}

type verifyPaymentRequest struct {
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpaySignature string `json:"razorpaySignature"`
}

func (h *Handler) verifyPayment(c *gin.Context) {
	if middleware.IsGuestFromContext(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to verify a payment", nil)
		return
	}

	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	payment, err := h.Svc.Verify(c.Request.Context(), VerifyInput{
		UserID:            middleware.UserIDFromContext(c),
		RazorpayPaymentID: req.RazorpayPaymentID,
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpaySignature: req.RazorpaySignature,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "razorpayPaymentId and razorpayOrderId are required", nil)
		case errors.Is(err, ErrInvalidSignature):
			respond.Error(c, http.StatusBadRequest, "invalid_signature", "payment signature verification failed", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to verify payment", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"success": true,
		"payment": payment,
	})
}
