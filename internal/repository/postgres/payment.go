package postgres

import (
	"context"
	"database/sql"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (id, order_id, amount_cents, method, transaction_id, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.OrderID, p.AmountCents, p.Method, p.TransactionID, p.Status, p.CreatedAt)
	return err
}

func (r *paymentRepository) ListByOrder(ctx context.Context, orderID string) ([]domain.Payment, error) {
	query := `SELECT id, order_id, amount_cents, method, transaction_id, status, created_at
	          FROM payments WHERE order_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

func (r *paymentRepository) ListByCustomer(ctx context.Context, customerID string, page, pageSize int32) ([]domain.Payment, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	countQuery := `SELECT count(*) FROM payments p JOIN orders o ON p.order_id = o.id WHERE o.customer_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, customerID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT p.id, p.order_id, p.amount_cents, p.method, p.transaction_id, p.status, p.created_at
	          FROM payments p JOIN orders o ON p.order_id = o.id
	          WHERE o.customer_id = $1 ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, customerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	payments, err := collectPayments(rows)
	if err != nil {
		return nil, 0, err
	}
	return payments, count, nil
}

func collectPayments(rows *sql.Rows) ([]domain.Payment, error) {
	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.AmountCents, &p.Method, &p.TransactionID, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
