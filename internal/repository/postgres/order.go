package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository"
)

const orderColumns = `id, customer_id, customer_name, customer_email, products, status, start_date, end_date,
       total_amount_cents, paid_amount_cents, pickup_scheduled, return_scheduled, created_at, updated_at`

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	products, err := json.Marshal(o.Products)
	if err != nil {
		return err
	}

	query := `INSERT INTO orders (id, customer_id, customer_name, customer_email, products, status, start_date, end_date,
	                              total_amount_cents, paid_amount_cents, pickup_scheduled, return_scheduled, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	logger.DatabaseCall("INSERT", "orders", "orderID", o.ID)
	_, err = r.db.ExecContext(ctx, query, o.ID, o.CustomerID, o.CustomerName, o.CustomerEmail, products, o.Status,
		o.StartDate, o.EndDate, o.TotalAmountCents, o.PaidAmountCents, o.PickupScheduled, o.ReturnScheduled, o.CreatedAt, o.UpdatedAt)
	logger.DatabaseResult("INSERT", 1, err, "orderID", o.ID)
	return err
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return scanOrder(r.db.QueryRowContext(ctx, query, id))
}

func (r *orderRepository) Update(ctx context.Context, o *domain.Order) error {
	products, err := json.Marshal(o.Products)
	if err != nil {
		return err
	}

	query := `UPDATE orders SET products=$1, status=$2, start_date=$3, end_date=$4, total_amount_cents=$5,
	                 paid_amount_cents=$6, pickup_scheduled=$7, return_scheduled=$8, updated_at=$9
	          WHERE id=$10`
	result, err := r.db.ExecContext(ctx, query, products, o.Status, o.StartDate, o.EndDate, o.TotalAmountCents,
		o.PaidAmountCents, o.PickupScheduled, o.ReturnScheduled, o.UpdatedAt, o.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *orderRepository) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	return r.list(ctx, "", status, page, pageSize)
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	return r.list(ctx, customerID, status, page, pageSize)
}

func (r *orderRepository) list(ctx context.Context, customerID, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`

	var args []interface{}
	if customerID != "" {
		args = append(args, customerID)
		query += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	return orders, count, rows.Err()
}

// ListOpen returns every order that can still move through the lifecycle.
// Jobs and the notification deriver scan this set.
func (r *orderRepository) ListOpen(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
	          WHERE status NOT IN ($1, $2) ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, domain.OrderStatusReturned, domain.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *orderRepository) AddHistory(ctx context.Context, entry *domain.OrderHistory) error {
	var oldStatus sql.NullString
	if entry.OldStatus != "" {
		oldStatus = sql.NullString{String: string(entry.OldStatus), Valid: true}
	}
	query := `INSERT INTO order_history (order_id, old_status, new_status, changed_by_id, changed_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, entry.OrderID, oldStatus, entry.NewStatus, entry.ChangedByID, entry.ChangedAt).Scan(&entry.ID)
}

func (r *orderRepository) ListHistory(ctx context.Context, orderID string) ([]domain.OrderHistory, error) {
	query := `SELECT id, order_id, old_status, new_status, changed_by_id, changed_at
	          FROM order_history WHERE order_id = $1 ORDER BY changed_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.OrderHistory
	for rows.Next() {
		var e domain.OrderHistory
		var oldStatus sql.NullString
		if err := rows.Scan(&e.ID, &e.OrderID, &oldStatus, &e.NewStatus, &e.ChangedByID, &e.ChangedAt); err != nil {
			return nil, err
		}
		if oldStatus.Valid {
			e.OldStatus = domain.OrderStatus(oldStatus.String)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	o := &domain.Order{}
	var products []byte
	err := row.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.CustomerEmail, &products, &o.Status,
		&o.StartDate, &o.EndDate, &o.TotalAmountCents, &o.PaidAmountCents, &o.PickupScheduled, &o.ReturnScheduled,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(products) > 0 {
		if err := json.Unmarshal(products, &o.Products); err != nil {
			return nil, err
		}
	}
	return o, nil
}
