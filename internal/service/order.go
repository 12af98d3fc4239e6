package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentdesk-backend/internal/billing"
	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderNotDeletable   = errors.New("only quotations can be deleted")
	ErrInvalidStatusFilter = errors.New("invalid status filter")
)

type orderService struct {
	orders             repository.OrderRepository
	email              EmailService
	lateFeePerDayCents int64
	now                func() time.Time
}

func NewOrderService(orders repository.OrderRepository, email EmailService, lateFeePerDayCents int64) OrderService {
	if lateFeePerDayCents <= 0 {
		lateFeePerDayCents = billing.DefaultLateFeePerDayCents
	}
	return &orderService{
		orders:             orders,
		email:              email,
		lateFeePerDayCents: lateFeePerDayCents,
		now:                time.Now,
	}
}

// CreateQuotation opens a new order in QUOTATION with its total computed from
// the line items. Nothing is scheduled yet; scheduling happens on transition.
func (s *orderService) CreateQuotation(ctx context.Context, customerID, customerName, customerEmail string, items []domain.LineItem, startDate, endDate time.Time) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("order must have at least one product")
	}

	now := s.now()
	order := &domain.Order{
		ID:               uuid.New().String(),
		CustomerID:       customerID,
		CustomerName:     customerName,
		CustomerEmail:    customerEmail,
		Products:         items,
		Status:           domain.OrderStatusQuotation,
		StartDate:        startDate,
		EndDate:          endDate,
		TotalAmountCents: billing.OrderTotalCents(items),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.orders.AddHistory(ctx, &domain.OrderHistory{
		OrderID:     order.ID,
		NewStatus:   order.Status,
		ChangedByID: customerID,
		ChangedAt:   now,
	}); err != nil {
		logger.Error("Failed to record order history", "orderID", order.ID, "error", err)
	}

	logger.Info("Quotation created", "orderID", order.ID, "customerID", customerID, "totalCents", order.TotalAmountCents)
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*domain.Order, []domain.OrderHistory, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrOrderNotFound
		}
		return nil, nil, fmt.Errorf("failed to get order: %w", err)
	}

	history, err := s.orders.ListHistory(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get order history: %w", err)
	}
	return order, history, nil
}

func (s *orderService) ListOrders(ctx context.Context, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	status, err := normalizeStatusFilter(status)
	if err != nil {
		return nil, 0, err
	}
	return s.orders.List(ctx, status, normalizePage(page), normalizePageSize(pageSize))
}

func (s *orderService) ListCustomerOrders(ctx context.Context, customerID, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	status, err := normalizeStatusFilter(status)
	if err != nil {
		return nil, 0, err
	}
	return s.orders.ListByCustomer(ctx, customerID, status, normalizePage(page), normalizePageSize(pageSize))
}

// Transition applies one lifecycle step and persists the result. Entering
// RETURNED settles the accrued late fee into the order total so the final
// balance includes it. A status-change email goes out best effort.
func (s *orderService) Transition(ctx context.Context, orderID string, target domain.OrderStatus, changedByID string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	now := s.now()
	next, err := domain.ApplyTransition(*order, target, now)
	if err != nil {
		return nil, err
	}

	if target == domain.OrderStatusReturned {
		fee := billing.LateFeeCents(*order, now, s.lateFeePerDayCents)
		if delta := fee - billing.AppliedLateFeeCents(*order); delta > 0 {
			next.TotalAmountCents += delta
			logger.Info("Late fee settled on return", "orderID", orderID, "feeCents", fee)
		}
	}

	if err := s.orders.Update(ctx, &next); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if err := s.orders.AddHistory(ctx, &domain.OrderHistory{
		OrderID:     orderID,
		OldStatus:   order.Status,
		NewStatus:   target,
		ChangedByID: changedByID,
		ChangedAt:   now,
	}); err != nil {
		logger.Error("Failed to record order history", "orderID", orderID, "error", err)
	}

	if s.email != nil && next.CustomerEmail != "" {
		if err := s.email.SendOrderStatusUpdate(ctx, next.CustomerEmail, next.CustomerName, &next); err != nil {
			logger.Warn("Failed to send status update email", "orderID", orderID, "error", err)
		}
	}

	logger.Info("Order transitioned", "orderID", orderID, "from", order.Status, "to", target, "changedBy", changedByID)
	return &next, nil
}

// DeleteOrder removes an order outright. Only quotations may be deleted; a
// confirmed order must be cancelled instead so its history survives.
func (s *orderService) DeleteOrder(ctx context.Context, id string) error {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to get order: %w", err)
	}
	if order.Status != domain.OrderStatusQuotation {
		return fmt.Errorf("order %s is %s: %w", id, order.Status, ErrOrderNotDeletable)
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	logger.Info("Quotation deleted", "orderID", id)
	return nil
}

func normalizeStatusFilter(status string) (string, error) {
	if status == "" {
		return "", nil
	}
	parsed, err := domain.ParseOrderStatus(status)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidStatusFilter, err)
	}
	return string(parsed), nil
}

func normalizePage(page int32) int32 {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePageSize(pageSize int32) int32 {
	if pageSize < 1 || pageSize > 100 {
		return 20
	}
	return pageSize
}
