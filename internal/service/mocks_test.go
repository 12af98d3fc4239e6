package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"rentdesk-backend/internal/domain"
)

type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepo) Update(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderRepo) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
}

func (m *MockOrderRepo) ListByCustomer(ctx context.Context, customerID, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	args := m.Called(ctx, customerID, status, page, pageSize)
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
}

func (m *MockOrderRepo) ListOpen(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepo) AddHistory(ctx context.Context, entry *domain.OrderHistory) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockOrderRepo) ListHistory(ctx context.Context, orderID string) ([]domain.OrderHistory, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderHistory), args.Error(1)
}

type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockPaymentRepo) ListByOrder(ctx context.Context, orderID string) ([]domain.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) ListByCustomer(ctx context.Context, customerID string, page, pageSize int32) ([]domain.Payment, int32, error) {
	args := m.Called(ctx, customerID, page, pageSize)
	return args.Get(0).([]domain.Payment), args.Get(1).(int32), args.Error(2)
}

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) ListFeed(ctx context.Context) ([]domain.Notification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepo) ReplaceFeed(ctx context.Context, feed []domain.Notification) error {
	return m.Called(ctx, feed).Error(0)
}

func (m *MockNotificationRepo) ListByCustomer(ctx context.Context, customerID string, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, customerID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}

func (m *MockNotificationRepo) MarkRead(ctx context.Context, id string, read bool) error {
	return m.Called(ctx, id, read).Error(0)
}

func (m *MockNotificationRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOrderStatusUpdate(ctx context.Context, email, name string, order *domain.Order) error {
	return m.Called(ctx, email, name, order).Error(0)
}

func (m *MockEmailService) SendPickupReminder(ctx context.Context, email, name, productName string, scheduled time.Time) error {
	return m.Called(ctx, email, name, productName, scheduled).Error(0)
}

func (m *MockEmailService) SendReturnReminder(ctx context.Context, email, name, productName string, scheduled time.Time) error {
	return m.Called(ctx, email, name, productName, scheduled).Error(0)
}

func (m *MockEmailService) SendOverdueNotice(ctx context.Context, email, name, productName string, daysOverdue int, lateFeeCents int64) error {
	return m.Called(ctx, email, name, productName, daysOverdue, lateFeeCents).Error(0)
}
