package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// Payment records an amount collected against an order. The processor itself
// is external; only its outcome lands here.
type Payment struct {
	ID            string        `json:"id"`
	OrderID       string        `json:"order_id"`
	AmountCents   int64         `json:"amount_cents"`
	Method        string        `json:"method"`
	TransactionID string        `json:"transaction_id"`
	Status        PaymentStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}
