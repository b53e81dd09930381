package payments

import (
	"context"
	"sync"
)

// MemoryRepo stores payment records in memory and is safe for concurrent
// use.
type MemoryRepo struct {
	mu       sync.RWMutex
	orders   map[string]PaymentOrder
	payments map[string]Payment
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		orders:   make(map[string]PaymentOrder),
		payments: make(map[string]Payment),
	}
}

func (r *MemoryRepo) CreateOrder(ctx context.Context, order PaymentOrder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.OrderID] = order
	return nil
}

func (r *MemoryRepo) GetOrder(ctx context.Context, orderID string) (PaymentOrder, error) {
	if err := ctx.Err(); err != nil {
		return PaymentOrder{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[orderID]
	if !ok {
		return PaymentOrder{}, ErrNotFound
	}
	return order, nil
}

func (r *MemoryRepo) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	order.Status = status
	r.orders[orderID] = order
	return nil
}

func (r *MemoryRepo) CreatePayment(ctx context.Context, payment Payment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[payment.ID] = payment
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
