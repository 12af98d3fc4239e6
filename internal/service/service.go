package service

import (
	"context"
	"time"

	"rentdesk-backend/internal/billing"
	"rentdesk-backend/internal/domain"
)

type OrderService interface {
	CreateQuotation(ctx context.Context, customerID, customerName, customerEmail string, items []domain.LineItem, startDate, endDate time.Time) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, []domain.OrderHistory, error)
	ListOrders(ctx context.Context, status string, page, pageSize int32) ([]domain.Order, int32, error)
	ListCustomerOrders(ctx context.Context, customerID, status string, page, pageSize int32) ([]domain.Order, int32, error)
	// Transition moves the order to the target status, recording history and
	// settling the late fee into the total on return.
	Transition(ctx context.Context, orderID string, target domain.OrderStatus, changedByID string) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

// BalanceSummary is the amount picture for one order at a point in time.
type BalanceSummary struct {
	OutstandingCents int64                `json:"outstanding_cents"`
	LateFeeCents     int64                `json:"late_fee_cents"`
	State            billing.PaymentState `json:"state"`
}

type PaymentService interface {
	RecordPayment(ctx context.Context, orderID string, amountCents int64, method, transactionID string) (*domain.Payment, error)
	ListOrderPayments(ctx context.Context, orderID string) ([]domain.Payment, error)
	ListCustomerPayments(ctx context.Context, customerID string, page, pageSize int32) ([]domain.Payment, int32, error)
	OrderBalance(ctx context.Context, orderID string) (*BalanceSummary, error)
}

type NotificationService interface {
	// RefreshFeed rescans the open orders and swaps in the next derived feed.
	// Returns the resulting feed size.
	RefreshFeed(ctx context.Context) (int, error)
	ListNotifications(ctx context.Context, customerID string, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkRead(ctx context.Context, id string, read bool) error
	Delete(ctx context.Context, id string) error
}

type EmailService interface {
	SendOrderStatusUpdate(ctx context.Context, email, name string, order *domain.Order) error
	SendPickupReminder(ctx context.Context, email, name, productName string, scheduled time.Time) error
	SendReturnReminder(ctx context.Context, email, name, productName string, scheduled time.Time) error
	SendOverdueNotice(ctx context.Context, email, name, productName string, daysOverdue int, lateFeeCents int64) error
}
