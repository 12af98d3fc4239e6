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

var ErrPaymentExceedsBalance = errors.New("payment exceeds outstanding balance")

type paymentService struct {
	orders             repository.OrderRepository
	payments           repository.PaymentRepository
	lateFeePerDayCents int64
	now                func() time.Time
}

func NewPaymentService(orders repository.OrderRepository, payments repository.PaymentRepository, lateFeePerDayCents int64) PaymentService {
	if lateFeePerDayCents <= 0 {
		lateFeePerDayCents = billing.DefaultLateFeePerDayCents
	}
	return &paymentService{
		orders:             orders,
		payments:           payments,
		lateFeePerDayCents: lateFeePerDayCents,
		now:                time.Now,
	}
}

// RecordPayment books a completed payment against the order and bumps its paid
// amount. Overpaying is rejected up front so the order never violates the
// paid-within-total invariant.
func (s *paymentService) RecordPayment(ctx context.Context, orderID string, amountCents int64, method, transactionID string) (*domain.Payment, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("payment amount must be positive")
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order.Status == domain.OrderStatusCancelled {
		return nil, fmt.Errorf("cannot record payment on cancelled order %s", orderID)
	}

	outstanding, err := billing.OutstandingBalanceCents(*order)
	if err != nil {
		return nil, err
	}
	if amountCents > outstanding {
		return nil, fmt.Errorf("payment of %d cents against balance of %d cents: %w", amountCents, outstanding, ErrPaymentExceedsBalance)
	}

	now := s.now()
	payment := &domain.Payment{
		ID:            uuid.New().String(),
		OrderID:       orderID,
		AmountCents:   amountCents,
		Method:        method,
		TransactionID: transactionID,
		Status:        domain.PaymentStatusCompleted,
		CreatedAt:     now,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	order.PaidAmountCents += amountCents
	order.UpdatedAt = now
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order paid amount: %w", err)
	}

	logger.Info("Payment recorded", "orderID", orderID, "paymentID", payment.ID, "amountCents", amountCents, "method", method)
	return payment, nil
}

func (s *paymentService) ListOrderPayments(ctx context.Context, orderID string) ([]domain.Payment, error) {
	return s.payments.ListByOrder(ctx, orderID)
}

func (s *paymentService) ListCustomerPayments(ctx context.Context, customerID string, page, pageSize int32) ([]domain.Payment, int32, error) {
	return s.payments.ListByCustomer(ctx, customerID, normalizePage(page), normalizePageSize(pageSize))
}

// OrderBalance reports the outstanding amount, the late fee accrued so far,
// and the payment state. The late fee is informational until the order is
// returned, at which point it is settled into the total.
func (s *paymentService) OrderBalance(ctx context.Context, orderID string) (*BalanceSummary, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	outstanding, err := billing.OutstandingBalanceCents(*order)
	if err != nil {
		return nil, err
	}

	// Report only the fee not yet folded into the total, so outstanding plus
	// the pending fee is what the customer will ultimately owe.
	pendingFee := billing.LateFeeCents(*order, s.now(), s.lateFeePerDayCents) - billing.AppliedLateFeeCents(*order)
	if pendingFee < 0 {
		pendingFee = 0
	}
	return &BalanceSummary{
		OutstandingCents: outstanding,
		LateFeeCents:     pendingFee,
		State:            billing.DerivePaymentState(*order),
	}, nil
}
