package domain

import "time"

type NotificationKind string

const (
	NotificationKindReturnReminder NotificationKind = "RETURN_REMINDER"
	NotificationKindOverdue        NotificationKind = "OVERDUE"
	NotificationKindPickupReminder NotificationKind = "PICKUP_REMINDER"
)

// Notification is a derived alert produced by scanning orders against the
// current time. Its ID is deterministic per (kind, order) so regenerating the
// feed never duplicates an alert for the same condition.
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	OrderID   string           `json:"order_id"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
}

// NotificationKey derives the dedup key for a (kind, order) pair.
func NotificationKey(kind NotificationKind, orderID string) string {
	return string(kind) + ":" + orderID
}
