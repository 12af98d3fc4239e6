package service

import (
	"context"
	"fmt"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/notify"
	"rentdesk-backend/internal/repository"
)

type notificationService struct {
	orders        repository.OrderRepository
	notifications repository.NotificationRepository
	deriver       *notify.Deriver
	now           func() time.Time
}

func NewNotificationService(orders repository.OrderRepository, notifications repository.NotificationRepository, deriver *notify.Deriver) NotificationService {
	return &notificationService{
		orders:        orders,
		notifications: notifications,
		deriver:       deriver,
		now:           time.Now,
	}
}

// RefreshFeed rederives the notification feed from the open orders and swaps
// it into storage. Running it twice back to back is a no-op beyond message
// refreshes; the deriver keys make the scan idempotent.
func (s *notificationService) RefreshFeed(ctx context.Context) (int, error) {
	orders, err := s.orders.ListOpen(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list open orders: %w", err)
	}
	prev, err := s.notifications.ListFeed(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load notification feed: %w", err)
	}

	next := s.deriver.Derive(prev, orders, s.now())
	if err := s.notifications.ReplaceFeed(ctx, next); err != nil {
		return 0, fmt.Errorf("failed to store notification feed: %w", err)
	}

	logger.Info("Notification feed refreshed", "openOrders", len(orders), "feedSize", len(next))
	return len(next), nil
}

func (s *notificationService) ListNotifications(ctx context.Context, customerID string, page, pageSize int32) ([]domain.Notification, int32, error) {
	return s.notifications.ListByCustomer(ctx, customerID, normalizePage(page), normalizePageSize(pageSize))
}

func (s *notificationService) MarkRead(ctx context.Context, id string, read bool) error {
	return s.notifications.MarkRead(ctx, id, read)
}

func (s *notificationService) Delete(ctx context.Context, id string) error {
	return s.notifications.Delete(ctx, id)
}
