// Package notify derives the reminder/overdue notification feed from the
// order set. The deriver is pure: it takes the previous feed and the current
// time and returns the next feed, leaving scheduling and persistence to the
// caller.
package notify

import (
	"fmt"
	"math"
	"time"

	"rentdesk-backend/internal/domain"
)

// Config controls the derivation windows. All values are explicit; there are
// no ambient defaults read at derive time.
type Config struct {
	ReminderWindowDays int  `yaml:"reminder_window_days"`
	PickupWindowDays   int  `yaml:"pickup_window_days"`
	OverdueEnabled     bool `yaml:"overdue_enabled"`
	HistoryCap         int  `yaml:"history_cap"`
}

func DefaultConfig() Config {
	return Config{
		ReminderWindowDays: 3,
		PickupWindowDays:   1,
		OverdueEnabled:     true,
		HistoryCap:         50,
	}
}

type Deriver struct {
	cfg Config
}

func NewDeriver(cfg Config) *Deriver {
	return &Deriver{cfg: cfg}
}

// Derive scans the order set against now and returns the next notification
// feed. Entries whose key already exists in prev keep their timestamp and
// read flag (the message text is refreshed); entries whose condition no
// longer holds are dropped; genuinely new keys are appended unread. The
// result is capped at HistoryCap by evicting the oldest insertions first.
// Derive is deterministic: the same prev, orders, and now always yield an
// identical feed.
func (d *Deriver) Derive(prev []domain.Notification, orders []domain.Order, now time.Time) []domain.Notification {
	candidates := d.scan(orders, now)

	byKey := make(map[string]domain.Notification, len(candidates))
	for _, c := range candidates {
		byKey[c.ID] = c
	}

	next := make([]domain.Notification, 0, len(candidates))
	kept := make(map[string]bool, len(prev))
	for _, n := range prev {
		c, active := byKey[n.ID]
		if !active || kept[n.ID] {
			continue
		}
		n.Message = c.Message
		next = append(next, n)
		kept[n.ID] = true
	}
	for _, c := range candidates {
		if !kept[c.ID] {
			next = append(next, c)
			kept[c.ID] = true
		}
	}

	if d.cfg.HistoryCap > 0 && len(next) > d.cfg.HistoryCap {
		next = next[len(next)-d.cfg.HistoryCap:]
	}
	return next
}

// scan produces the currently-triggered notifications in a stable order:
// return reminders and overdue alerts first, then pickup reminders.
func (d *Deriver) scan(orders []domain.Order, now time.Time) []domain.Notification {
	var out []domain.Notification

	for _, o := range orders {
		if o.Status != domain.OrderStatusDelivered || o.ReturnScheduled == nil {
			continue
		}
		daysUntilReturn := ceilDays(o.ReturnScheduled.Sub(now))
		switch {
		case daysUntilReturn > 0 && daysUntilReturn <= d.cfg.ReminderWindowDays:
			out = append(out, domain.Notification{
				ID:        domain.NotificationKey(domain.NotificationKindReturnReminder, o.ID),
				Kind:      domain.NotificationKindReturnReminder,
				OrderID:   o.ID,
				Message:   fmt.Sprintf("Your rental of %s is due for return in %d days.", orderLabel(o), daysUntilReturn),
				Timestamp: now,
			})
		case daysUntilReturn < 0 && d.cfg.OverdueEnabled:
			out = append(out, domain.Notification{
				ID:        domain.NotificationKey(domain.NotificationKindOverdue, o.ID),
				Kind:      domain.NotificationKindOverdue,
				OrderID:   o.ID,
				Message:   fmt.Sprintf("Your rental of %s is overdue by %d days. Please return it.", orderLabel(o), -daysUntilReturn),
				Timestamp: now,
			})
		}
	}

	for _, o := range orders {
		if o.Status != domain.OrderStatusConfirmed || o.PickupScheduled == nil {
			continue
		}
		daysUntilPickup := ceilDays(o.PickupScheduled.Sub(now))
		if daysUntilPickup >= 0 && daysUntilPickup <= d.cfg.PickupWindowDays {
			out = append(out, domain.Notification{
				ID:        domain.NotificationKey(domain.NotificationKindPickupReminder, o.ID),
				Kind:      domain.NotificationKindPickupReminder,
				OrderID:   o.ID,
				Message:   fmt.Sprintf("Pickup for %s is scheduled in %d days.", orderLabel(o), daysUntilPickup),
				Timestamp: now,
			})
		}
	}

	return out
}

// ceilDays converts a duration to whole days, rounding toward positive
// infinity so a window boundary lands on the correct calendar day rather
// than one early.
func ceilDays(d time.Duration) int {
	return int(math.Ceil(d.Hours() / 24))
}

func orderLabel(o domain.Order) string {
	if len(o.Products) > 0 {
		return o.Products[0].ProductName
	}
	return "order " + o.ID
}
