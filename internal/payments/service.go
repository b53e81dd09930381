package payments

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"skinsano-backend/internal/shared/telemetry"
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidInput     = errors.New("invalid payment input")
	ErrInvalidSignature = errors.New("invalid payment signature")
)

const demoCheckoutKey = "demo_key_12345"

// Upgrader promotes a user to premium after a verified payment. Implemented
// by the users service.
type Upgrader interface {
	Upgrade(ctx context.Context, userID string) error
}

// Service creates and verifies checkout orders. Without live Razorpay
// credentials it runs in demo mode: orders are synthesized locally and
// verification skips the signature check, so the purchase flow stays
// demonstrable in development.
type Service struct {
	Razorpay *RazorpayClient
	Repo     Repo
	Upgrader Upgrader
}

// NewService constructs a Service.
func NewService(razorpay *RazorpayClient, repo Repo, upgrader Upgrader) *Service {
	return &Service{Razorpay: razorpay, Repo: repo, Upgrader: upgrader}
}

// CreateOrderInput is the payload for a new checkout order. Amount is in
// currency units (rupees for INR).
type CreateOrderInput struct {
	UserID         string
	Amount         float64
	Currency       string
	AnalysisID     string
	ConsultationID string
}

// CreateOrderResult is returned to the client to open the checkout.
type CreateOrderResult struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Key      string `json:"key"`
	Demo     bool   `json:"demo"`
}

// CreateOrder creates a checkout order, degrading to a demo order when live
// credentials are missing or the API call fails.
func (s *Service) CreateOrder(ctx context.Context, input CreateOrderInput) (CreateOrderResult, error) {
	if input.Amount <= 0 {
		return CreateOrderResult{}, ErrInvalidAmount
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = "INR"
	}
	amount := int64(math.Round(input.Amount * 100))
	receipt := fmt.Sprintf("receipt_%d", time.Now().UnixMilli())
	notes := map[string]string{
		"userId":         input.UserID,
		"analysisId":     input.AnalysisID,
		"consultationId": input.ConsultationID,
	}

	result := CreateOrderResult{Amount: amount, Currency: currency}
	if s.Razorpay.Configured() {
		order, err := s.Razorpay.CreateOrder(ctx, amount, currency, receipt, notes)
		if err == nil {
			result.OrderID = order.ID
			result.Key = s.Razorpay.KeyID
		} else {
			telemetry.Warn("payment.order.demo_fallback", map[string]any{
				"user_id": input.UserID,
				"error":   err.Error(),
			})
		}
	}
	if result.OrderID == "" {
		result.OrderID = fmt.Sprintf("order_%d", time.Now().UnixMilli())
		result.Key = demoCheckoutKey
		result.Demo = true
	}

	record := PaymentOrder{
		OrderID:        result.OrderID,
		UserID:         input.UserID,
		Amount:         amount,
		Currency:       currency,
		AnalysisID:     input.AnalysisID,
		ConsultationID: input.ConsultationID,
		Status:         StatusCreated,
		Demo:           result.Demo,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Repo.CreateOrder(ctx, record); err != nil {
		// Order bookkeeping is best-effort; the checkout can still proceed.
		telemetry.Warn("payment.order.persist_failed", map[string]any{
			"order_id": record.OrderID,
			"error":    err.Error(),
		})
	}

	telemetry.Info("payment.order.created", map[string]any{
		"order_id": record.OrderID,
		"user_id":  input.UserID,
		"amount":   amount,
		"currency": currency,
		"demo":     result.Demo,
	})
	return result, nil
}

// VerifyInput is the checkout callback payload.
type VerifyInput struct {
	UserID            string
	RazorpayPaymentID string
	RazorpayOrderID   string
	RazorpaySignature string
}

// Verify checks the callback signature, records the payment, and upgrades
// the user to premium. Recording and upgrading are best-effort once the
// signature is accepted.
func (s *Service) Verify(ctx context.Context, input VerifyInput) (Payment, error) {
	if input.RazorpayPaymentID == "" || input.RazorpayOrderID == "" {
		return Payment{}, ErrInvalidInput
	}

	if s.Razorpay.Configured() {
		if !s.Razorpay.VerifySignature(input.RazorpayOrderID, input.RazorpayPaymentID, input.RazorpaySignature) {
			telemetry.Warn("payment.verify.rejected", map[string]any{
				"order_id": input.RazorpayOrderID,
				"user_id":  input.UserID,
			})
			return Payment{}, ErrInvalidSignature
		}
	}

	payment := Payment{
		ID:                uuid.NewString(),
		UserID:            input.UserID,
		RazorpayPaymentID: input.RazorpayPaymentID,
		RazorpayOrderID:   input.RazorpayOrderID,
		Currency:          "INR",
		Status:            StatusCompleted,
		CreatedAt:         time.Now().UTC(),
	}
	if order, err := s.Repo.GetOrder(ctx, input.RazorpayOrderID); err == nil {
		payment.Amount = order.Amount
		payment.Currency = order.Currency
		if err := s.Repo.UpdateOrderStatus(ctx, order.OrderID, StatusCompleted); err != nil {
			telemetry.Warn("payment.order.status_update_failed", map[string]any{
				"order_id": order.OrderID,
				"error":    err.Error(),
			})
		}
	}
	if err := s.Repo.CreatePayment(ctx, payment); err != nil {
		telemetry.Warn("payment.record.persist_failed", map[string]any{
			"payment_id": payment.ID,
			"error":      err.Error(),
		})
	}

	if s.Upgrader != nil {
		if err := s.Upgrader.Upgrade(ctx, input.UserID); err != nil {
			telemetry.Warn("payment.upgrade_failed", map[string]any{
				"user_id": input.UserID,
				"error":   err.Error(),
			})
		}
	}

	telemetry.Info("payment.verified", map[string]any{
		"payment_id": payment.ID,
		"order_id":   payment.RazorpayOrderID,
		"user_id":    input.UserID,
	})
	return payment, nil
}
