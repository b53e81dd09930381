package payments

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("payment order not found")

// Repo defines persistence operations for payment orders and payments.
type Repo interface {
	CreateOrder(ctx context.Context, order PaymentOrder) error
	GetOrder(ctx context.Context, orderID string) (PaymentOrder, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) error
	CreatePayment(ctx context.Context, payment Payment) error
}
