package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) ListFeed(ctx context.Context) ([]domain.Notification, error) {
	query := `SELECT id, kind, order_id, message, timestamp, read
	          FROM notifications ORDER BY position ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feed []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Kind, &n.OrderID, &n.Message, &n.Timestamp, &n.Read); err != nil {
			return nil, err
		}
		feed = append(feed, n)
	}
	return feed, rows.Err()
}

// ReplaceFeed swaps the stored feed inside one transaction so readers never
// observe a half-written feed. The slice order becomes the insertion order.
func (r *notificationRepository) ReplaceFeed(ctx context.Context, feed []domain.Notification) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM notifications`); err != nil {
		return err
	}

	insert := `INSERT INTO notifications (id, kind, order_id, message, timestamp, read)
	           VALUES ($1, $2, $3, $4, $5, $6)`
	for _, n := range feed {
		if _, err := tx.ExecContext(ctx, insert, n.ID, n.Kind, n.OrderID, n.Message, n.Timestamp, n.Read); err != nil {
			return err
		}
	}

	logger.DatabaseCall("REPLACE", "notifications", "entries", len(feed))
	return tx.Commit()
}

func (r *notificationRepository) ListByCustomer(ctx context.Context, customerID string, page, pageSize int32) ([]domain.Notification, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	countQuery := `SELECT count(*) FROM notifications n JOIN orders o ON n.order_id = o.id WHERE o.customer_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, customerID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT n.id, n.kind, n.order_id, n.message, n.timestamp, n.read
	          FROM notifications n JOIN orders o ON n.order_id = o.id
	          WHERE o.customer_id = $1 ORDER BY n.position DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, customerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Kind, &n.OrderID, &n.Message, &n.Timestamp, &n.Read); err != nil {
			return nil, 0, err
		}
		notes = append(notes, n)
	}
	return notes, count, rows.Err()
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string, read bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = $1 WHERE id = $2`, read, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("notification %s not found", id)
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("notification %s not found", id)
	}
	return nil
}
