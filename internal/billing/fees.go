// Package billing computes amounts derived from an order's payment record and
// timing: outstanding balance, late-return fees, and line-item totals. All
// functions are pure; time is always supplied by the caller.
package billing

import (
	"time"

	"rentdesk-backend/internal/domain"
)

// DefaultLateFeePerDayCents is the penalty applied per day past the scheduled
// return. There is no admin surface for changing it; deployments override it
// in config.
const DefaultLateFeePerDayCents int64 = 10000

// OrderTotalCents sums the line-item subtotals (quantity * rate * duration).
func OrderTotalCents(items []domain.LineItem) int64 {
	var total int64
	for _, li := range items {
		total += li.SubtotalCents()
	}
	return total
}

// OutstandingBalanceCents returns the amount still owed on the order. The
// order is validated first, so a paid amount exceeding the total surfaces as
// a MalformedOrderError instead of being clamped away.
func OutstandingBalanceCents(order domain.Order) (int64, error) {
	if err := order.Validate(); err != nil {
		return 0, err
	}
	return order.TotalAmountCents - order.PaidAmountCents, nil
}

// LateFeeCents returns the penalty owed as of the given instant. Returned
// orders, orders with no scheduled return, and on-time orders owe nothing.
// Any partial day late counts as a full day: one hour past the scheduled
// return already incurs one day's fee.
func LateFeeCents(order domain.Order, asOf time.Time, ratePerDayCents int64) int64 {
	if order.Status == domain.OrderStatusReturned || order.ReturnScheduled == nil {
		return 0
	}
	if !asOf.After(*order.ReturnScheduled) {
		return 0
	}
	late := asOf.Sub(*order.ReturnScheduled)
	days := int64(late / (24 * time.Hour))
	if late%(24*time.Hour) > 0 {
		days++
	}
	return days * ratePerDayCents
}

// AppliedLateFeeCents reports how much late fee has already been folded into
// the order's total. The base total is always recomputable from the line
// items, so the excess over it is the applied fee.
func AppliedLateFeeCents(order domain.Order) int64 {
	applied := order.TotalAmountCents - OrderTotalCents(order.Products)
	if applied < 0 {
		return 0
	}
	return applied
}

type PaymentState string

const (
	PaymentStateUnpaid  PaymentState = "UNPAID"
	PaymentStatePartial PaymentState = "PARTIAL"
	PaymentStatePaid    PaymentState = "PAID"
)

// DerivePaymentState classifies the order by how much of its total has been
// collected. A zero-total order counts as paid.
func DerivePaymentState(order domain.Order) PaymentState {
	switch {
	case order.PaidAmountCents >= order.TotalAmountCents:
		return PaymentStatePaid
	case order.PaidAmountCents > 0:
		return PaymentStatePartial
	default:
		return PaymentStateUnpaid
	}
}
