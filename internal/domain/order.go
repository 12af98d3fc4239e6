package domain

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusQuotation OrderStatus = "QUOTATION"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusPickup    OrderStatus = "PICKUP"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusReturned  OrderStatus = "RETURNED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// legacyStatusAliases maps the older display vocabulary onto the canonical
// set. ACTIVE covered both fulfillment sub-states; it maps to DELIVERED
// because an "active" rental is one in the customer's possession.
var legacyStatusAliases = map[string]OrderStatus{
	"ACTIVE":    OrderStatusDelivered,
	"COMPLETED": OrderStatusReturned,
}

// ParseOrderStatus resolves a status string to the canonical set, accepting
// legacy aliases on input. Canonical names are the only ones ever emitted.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusQuotation, OrderStatusConfirmed, OrderStatusPickup,
		OrderStatusDelivered, OrderStatusReturned, OrderStatusCancelled:
		return OrderStatus(s), nil
	}
	if canonical, ok := legacyStatusAliases[s]; ok {
		return canonical, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// IsTerminal reports whether no further transitions are legal from s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusReturned || s == OrderStatusCancelled
}

type DurationType string

const (
	DurationTypeHour  DurationType = "hour"
	DurationTypeDay   DurationType = "day"
	DurationTypeWeek  DurationType = "week"
	DurationTypeMonth DurationType = "month"
)

// LineItem is one rented product on an order. RateCents is the price per
// duration unit; the subtotal is quantity * rate * duration.
type LineItem struct {
	ProductID    string       `json:"product_id"`
	ProductName  string       `json:"product_name"`
	Quantity     int32        `json:"quantity"`
	RateCents    int64        `json:"rate_cents"`
	Duration     int32        `json:"duration"`
	DurationType DurationType `json:"duration_type"`
}

// SubtotalCents returns quantity * rate * duration for this line.
func (li LineItem) SubtotalCents() int64 {
	return int64(li.Quantity) * li.RateCents * int64(li.Duration)
}

// Order is a customer's booking of one or more products for a date range.
// Customer fields are denormalized for display; they are not authoritative
// identity. Amounts are integer cents.
type Order struct {
	ID               string      `json:"id"`
	CustomerID       string      `json:"customer_id"`
	CustomerName     string      `json:"customer_name"`
	CustomerEmail    string      `json:"customer_email"`
	Products         []LineItem  `json:"products"`
	Status           OrderStatus `json:"status"`
	StartDate        time.Time   `json:"start_date"`
	EndDate          time.Time   `json:"end_date"`
	TotalAmountCents int64       `json:"total_amount_cents"`
	PaidAmountCents  int64       `json:"paid_amount_cents"`
	PickupScheduled  *time.Time  `json:"pickup_scheduled,omitempty"`
	ReturnScheduled  *time.Time  `json:"return_scheduled,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// Validate fails fast on data-model invariant violations. These indicate
// upstream corruption, never user error, so nothing is clamped.
func (o *Order) Validate() error {
	if _, err := ParseOrderStatus(string(o.Status)); err != nil {
		return &MalformedOrderError{OrderID: o.ID, Field: "status", Reason: err.Error()}
	}
	if o.EndDate.Before(o.StartDate) {
		return &MalformedOrderError{OrderID: o.ID, Field: "end_date", Reason: "end date before start date"}
	}
	if o.TotalAmountCents < 0 {
		return &MalformedOrderError{OrderID: o.ID, Field: "total_amount_cents", Reason: "negative total"}
	}
	if o.PaidAmountCents < 0 {
		return &MalformedOrderError{OrderID: o.ID, Field: "paid_amount_cents", Reason: "negative paid amount"}
	}
	if o.PaidAmountCents > o.TotalAmountCents {
		return &MalformedOrderError{OrderID: o.ID, Field: "paid_amount_cents", Reason: "paid amount exceeds total"}
	}
	for i, li := range o.Products {
		if li.Quantity < 1 {
			return &MalformedOrderError{OrderID: o.ID, Field: fmt.Sprintf("products[%d].quantity", i), Reason: "quantity must be >= 1"}
		}
		if li.RateCents < 0 {
			return &MalformedOrderError{OrderID: o.ID, Field: fmt.Sprintf("products[%d].rate_cents", i), Reason: "negative rate"}
		}
		if li.Duration < 1 {
			return &MalformedOrderError{OrderID: o.ID, Field: fmt.Sprintf("products[%d].duration", i), Reason: "duration must be >= 1"}
		}
		switch li.DurationType {
		case DurationTypeHour, DurationTypeDay, DurationTypeWeek, DurationTypeMonth:
		default:
			return &MalformedOrderError{OrderID: o.ID, Field: fmt.Sprintf("products[%d].duration_type", i), Reason: fmt.Sprintf("unknown duration type %q", li.DurationType)}
		}
	}
	return nil
}

// OrderHistory records one status transition on an order.
type OrderHistory struct {
	ID          int64       `json:"id"`
	OrderID     string      `json:"order_id"`
	OldStatus   OrderStatus `json:"old_status,omitempty"`
	NewStatus   OrderStatus `json:"new_status"`
	ChangedByID string      `json:"changed_by_id"`
	ChangedAt   time.Time   `json:"changed_at"`
}
