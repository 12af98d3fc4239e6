package jobs

import (
	"context"

	"rentdesk-backend/internal/billing"
	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
)

// ApplyLateFees folds the fee accrued so far into each overdue order's total.
// The job is idempotent: it only adds the difference between the accrued fee
// and what previous runs already applied, so running it twice in one day
// changes nothing.
func (r *Runner) ApplyLateFees(ctx context.Context) error {
	return r.runWithRecovery(ctx, "apply_late_fees", r.applyLateFees)
}

func (r *Runner) applyLateFees(ctx context.Context) error {
	orders, err := r.orders.ListOpen(ctx)
	if err != nil {
		return err
	}

	now := r.now()
	rate := r.config.Billing.LateFeePerDayCents
	var updated int
	for _, o := range orders {
		if o.Status != domain.OrderStatusDelivered {
			continue
		}
		if err := o.Validate(); err != nil {
			logger.Error("Skipping malformed order", "orderID", o.ID, "error", err)
			continue
		}

		accrued := billing.LateFeeCents(o, now, rate)
		delta := accrued - billing.AppliedLateFeeCents(o)
		if delta <= 0 {
			continue
		}

		o.TotalAmountCents += delta
		o.UpdatedAt = now
		if err := r.orders.Update(ctx, &o); err != nil {
			logger.Error("Failed to apply late fee", "orderID", o.ID, "error", err)
			continue
		}
		updated++
		logger.Info("Late fee applied", "orderID", o.ID, "accruedCents", accrued, "addedCents", delta)
	}

	logger.Info("Late fee pass finished", "orders", len(orders), "updated", updated)
	return nil
}
