package jobs

import (
	"context"
	"time"

	"rentdesk-backend/internal/billing"
	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/metrics"
)

// RefreshNotifications rederives the notification feed from the open orders.
func (r *Runner) RefreshNotifications(ctx context.Context) error {
	return r.runWithRecovery(ctx, "refresh_notifications", r.refreshNotifications)
}

func (r *Runner) refreshNotifications(ctx context.Context) error {
	size, err := r.notifications.RefreshFeed(ctx)
	if err != nil {
		return err
	}
	metrics.NotificationFeedSize.Set(float64(size))
	return nil
}

// SendUpcomingReminders emails customers whose scheduled pickup or return
// falls inside the configured reminder windows, mirroring the in-app feed.
func (r *Runner) SendUpcomingReminders(ctx context.Context) error {
	return r.runWithRecovery(ctx, "send_upcoming_reminders", r.sendUpcomingReminders)
}

func (r *Runner) sendUpcomingReminders(ctx context.Context) error {
	orders, err := r.orders.ListOpen(ctx)
	if err != nil {
		return err
	}

	now := r.now()
	returnWindow := *r.config.Notifications.ReminderWindowDays
	pickupWindow := *r.config.Notifications.PickupWindowDays
	var sent int
	for _, o := range orders {
		if o.CustomerEmail == "" {
			continue
		}
		switch o.Status {
		case domain.OrderStatusDelivered:
			if o.ReturnScheduled == nil {
				continue
			}
			days := wholeDaysUntil(o.ReturnScheduled.Sub(now))
			if days <= 0 || days > returnWindow {
				continue
			}
			if err := r.email.SendReturnReminder(ctx, o.CustomerEmail, o.CustomerName, productLabel(o), *o.ReturnScheduled); err != nil {
				logger.Error("Failed to send return reminder", "orderID", o.ID, "error", err)
				continue
			}
			sent++
		case domain.OrderStatusConfirmed:
			if o.PickupScheduled == nil {
				continue
			}
			days := wholeDaysUntil(o.PickupScheduled.Sub(now))
			if days < 0 || days > pickupWindow {
				continue
			}
			if err := r.email.SendPickupReminder(ctx, o.CustomerEmail, o.CustomerName, productLabel(o), *o.PickupScheduled); err != nil {
				logger.Error("Failed to send pickup reminder", "orderID", o.ID, "error", err)
				continue
			}
			sent++
		}
	}

	logger.Info("Upcoming reminder pass finished", "orders", len(orders), "sent", sent)
	return nil
}

// SendOverdueReminders emails every customer whose delivered order is past
// its scheduled return, quoting the fee accrued so far.
func (r *Runner) SendOverdueReminders(ctx context.Context) error {
	return r.runWithRecovery(ctx, "send_overdue_reminders", r.sendOverdueReminders)
}

func (r *Runner) sendOverdueReminders(ctx context.Context) error {
	orders, err := r.orders.ListOpen(ctx)
	if err != nil {
		return err
	}

	now := r.now()
	rate := r.config.Billing.LateFeePerDayCents
	var sent int
	for _, o := range orders {
		if o.Status != domain.OrderStatusDelivered || o.ReturnScheduled == nil {
			continue
		}
		if !now.After(*o.ReturnScheduled) {
			continue
		}
		if o.CustomerEmail == "" {
			continue
		}

		daysOverdue := overdueDays(now.Sub(*o.ReturnScheduled))
		fee := billing.LateFeeCents(o, now, rate)
		if err := r.email.SendOverdueNotice(ctx, o.CustomerEmail, o.CustomerName, productLabel(o), daysOverdue, fee); err != nil {
			logger.Error("Failed to send overdue notice", "orderID", o.ID, "error", err)
			continue
		}
		sent++
	}

	logger.Info("Overdue reminder pass finished", "orders", len(orders), "sent", sent)
	return nil
}

// overdueDays counts any partial day late as a full day, matching the fee
// accrual.
func overdueDays(late time.Duration) int {
	days := int(late / (24 * time.Hour))
	if late%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// wholeDaysUntil rounds a lead time up to whole days so a window boundary
// lands on the same calendar day the feed deriver uses.
func wholeDaysUntil(d time.Duration) int {
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}

func productLabel(o domain.Order) string {
	if len(o.Products) > 0 {
		return o.Products[0].ProductName
	}
	return "order " + o.ID
}
