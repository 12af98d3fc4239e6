package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentdesk-backend/internal/billing"
	"rentdesk-backend/internal/domain"
)

func TestPaymentService_RecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		orders := new(MockOrderRepo)
		payments := new(MockPaymentRepo)
		svc := NewPaymentService(orders, payments, 10000).(*paymentService)
		svc.now = fixedClock()

		o := storedOrder(domain.OrderStatusConfirmed)
		orders.On("GetByID", ctx, "ord-1").Return(o, nil).Once()
		payments.On("Create", ctx, mock.MatchedBy(func(p *domain.Payment) bool {
			return p.OrderID == "ord-1" && p.AmountCents == 50000 && p.Status == domain.PaymentStatusCompleted
		})).Return(nil).Once()
		orders.On("Update", ctx, mock.MatchedBy(func(u *domain.Order) bool {
			return u.PaidAmountCents == 50000
		})).Return(nil).Once()

		payment, err := svc.RecordPayment(ctx, "ord-1", 50000, "card", "txn-1")
		require.NoError(t, err)
		assert.Equal(t, int64(50000), payment.AmountCents)
		orders.AssertExpectations(t)
		payments.AssertExpectations(t)
	})

	t.Run("OverpayRejected", func(t *testing.T) {
		orders := new(MockOrderRepo)
		payments := new(MockPaymentRepo)
		svc := NewPaymentService(orders, payments, 10000)

		o := storedOrder(domain.OrderStatusConfirmed)
		o.PaidAmountCents = 140000 // 10000 outstanding
		orders.On("GetByID", ctx, "ord-1").Return(o, nil).Once()

		_, err := svc.RecordPayment(ctx, "ord-1", 20000, "card", "txn-2")
		assert.ErrorIs(t, err, ErrPaymentExceedsBalance)
		payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("NonPositiveRejected", func(t *testing.T) {
		svc := NewPaymentService(new(MockOrderRepo), new(MockPaymentRepo), 10000)
		_, err := svc.RecordPayment(ctx, "ord-1", 0, "card", "")
		assert.Error(t, err)
	})

	t.Run("CancelledOrderRejected", func(t *testing.T) {
		orders := new(MockOrderRepo)
		svc := NewPaymentService(orders, new(MockPaymentRepo), 10000)

		orders.On("GetByID", ctx, "ord-1").Return(storedOrder(domain.OrderStatusCancelled), nil).Once()

		_, err := svc.RecordPayment(ctx, "ord-1", 100, "card", "")
		assert.Error(t, err)
	})

	t.Run("MalformedOrderSurfaces", func(t *testing.T) {
		orders := new(MockOrderRepo)
		svc := NewPaymentService(orders, new(MockPaymentRepo), 10000)

		o := storedOrder(domain.OrderStatusConfirmed)
		o.PaidAmountCents = o.TotalAmountCents + 5000
		orders.On("GetByID", ctx, "ord-1").Return(o, nil).Once()

		_, err := svc.RecordPayment(ctx, "ord-1", 100, "card", "")
		require.Error(t, err)
		assert.True(t, domain.IsMalformedOrder(err))
	})
}

func TestPaymentService_OrderBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("PendingLateFeeReported", func(t *testing.T) {
		orders := new(MockOrderRepo)
		svc := NewPaymentService(orders, new(MockPaymentRepo), 10000).(*paymentService)
		svc.now = fixedClock()

		o := storedOrder(domain.OrderStatusDelivered)
		ret := testNow.Add(-25 * time.Hour)
		o.ReturnScheduled = &ret
		o.PaidAmountCents = 100000
		orders.On("GetByID", ctx, "ord-1").Return(o, nil).Once()

		summary, err := svc.OrderBalance(ctx, "ord-1")
		require.NoError(t, err)
		assert.Equal(t, int64(50000), summary.OutstandingCents)
		assert.Equal(t, int64(20000), summary.LateFeeCents)
		assert.Equal(t, billing.PaymentStatePartial, summary.State)
	})

	t.Run("SettledFeeNotDoubleReported", func(t *testing.T) {
		orders := new(MockOrderRepo)
		svc := NewPaymentService(orders, new(MockPaymentRepo), 10000).(*paymentService)
		svc.now = fixedClock()

		o := storedOrder(domain.OrderStatusDelivered)
		ret := testNow.Add(-25 * time.Hour)
		o.ReturnScheduled = &ret
		o.TotalAmountCents += 20000 // fee already folded in by the nightly job
		orders.On("GetByID", ctx, "ord-1").Return(o, nil).Once()

		summary, err := svc.OrderBalance(ctx, "ord-1")
		require.NoError(t, err)
		assert.Equal(t, int64(170000), summary.OutstandingCents)
		assert.Equal(t, int64(0), summary.LateFeeCents)
	})

	t.Run("PaidInFull", func(t *testing.T) {
		orders := new(MockOrderRepo)
		svc := NewPaymentService(orders, new(MockPaymentRepo), 10000).(*paymentService)
		svc.now = fixedClock()

		o := storedOrder(domain.OrderStatusReturned)
		o.PaidAmountCents = o.TotalAmountCents
		orders.On("GetByID", ctx, "ord-1").Return(o, nil).Once()

		summary, err := svc.OrderBalance(ctx, "ord-1")
		require.NoError(t, err)
		assert.Equal(t, int64(0), summary.OutstandingCents)
		assert.Equal(t, billing.PaymentStatePaid, summary.State)
	})
}
