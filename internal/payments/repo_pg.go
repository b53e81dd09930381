package payments

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) CreateOrder(ctx context.Context, order PaymentOrder) error {
	const query = `
INSERT INTO payment_orders (order_id, user_id, amount, currency, analysis_id, consultation_id, status, demo, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		order.OrderID,
		order.UserID,
		order.Amount,
		order.Currency,
		nullableString(order.AnalysisID),
		nullableString(order.ConsultationID),
		order.Status,
		order.Demo,
		order.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetOrder(ctx context.Context, orderID string) (PaymentOrder, error) {
	const query = `
SELECT order_id, user_id, amount, currency, analysis_id, consultation_id, status, demo, created_at
FROM payment_orders
WHERE order_id = $1
LIMIT 1`
	var order PaymentOrder
	var analysisID, consultationID sql.NullString
	err := r.DB.QueryRowContext(ctx, query, orderID).Scan(
		&order.OrderID,
		&order.UserID,
		&order.Amount,
		&order.Currency,
		&analysisID,
		&consultationID,
		&order.Status,
		&order.Demo,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PaymentOrder{}, ErrNotFound
		}
		return PaymentOrder{}, err
	}
	if analysisID.Valid {
		order.AnalysisID = analysisID.String
	}
	if consultationID.Valid {
		order.ConsultationID = consultationID.String
	}
	return order, nil
}

func (r *PGRepo) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	const query = `
UPDATE payment_orders
SET status = $1
WHERE order_id = $2`
	res, err := r.DB.ExecContext(ctx, query, status, orderID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) CreatePayment(ctx context.Context, payment Payment) error {
	const query = `
INSERT INTO payments (id, user_id, razorpay_payment_id, razorpay_order_id, amount, currency, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		payment.ID,
		payment.UserID,
		payment.RazorpayPaymentID,
		payment.RazorpayOrderID,
		payment.Amount,
		payment.Currency,
		payment.Status,
		payment.CreatedAt,
	)
	return err
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
