package payments

import "time"

const (
	StatusCreated   = "created"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// PaymentOrder is a created checkout order awaiting verification.
type PaymentOrder struct {
	OrderID        string    `json:"orderId"`
	UserID         string    `json:"userId"`
	Amount         int64     `json:"amount"`
	Currency       string    `json:"currency"`
	AnalysisID     string    `json:"analysisId,omitempty"`
	ConsultationID string    `json:"consultationId,omitempty"`
	Status         string    `json:"status"`
	Demo           bool      `json:"demo"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Payment is a verified payment record.
type Payment struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	RazorpayPaymentID string    `json:"razorpayPaymentId"`
	RazorpayOrderID   string    `json:"razorpayOrderId"`
	Amount            int64     `json:"amount"`
	Currency          string    `json:"currency"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
}
