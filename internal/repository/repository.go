package repository

import (
	"context"

	"rentdesk-backend/internal/domain"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, status string, page, pageSize int32) ([]domain.Order, int32, error)
	ListByCustomer(ctx context.Context, customerID, status string, page, pageSize int32) ([]domain.Order, int32, error)
	ListOpen(ctx context.Context) ([]domain.Order, error)

	// Status history
	AddHistory(ctx context.Context, entry *domain.OrderHistory) error
	ListHistory(ctx context.Context, orderID string) ([]domain.OrderHistory, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	ListByOrder(ctx context.Context, orderID string) ([]domain.Payment, error)
	ListByCustomer(ctx context.Context, customerID string, page, pageSize int32) ([]domain.Payment, int32, error)
}

type NotificationRepository interface {
	// ListFeed returns the whole stored feed in insertion order.
	ListFeed(ctx context.Context) ([]domain.Notification, error)
	// ReplaceFeed atomically swaps the stored feed for the given one,
	// preserving its order as the new insertion order.
	ReplaceFeed(ctx context.Context, feed []domain.Notification) error
	ListByCustomer(ctx context.Context, customerID string, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkRead(ctx context.Context, id string, read bool) error
	Delete(ctx context.Context, id string) error
}
