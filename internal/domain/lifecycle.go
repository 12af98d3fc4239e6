package domain

import "time"

// forwardSuccessor is the single legal forward step per status. The lifecycle
// is monotonic along QUOTATION -> CONFIRMED -> PICKUP -> DELIVERED -> RETURNED,
// with CANCELLED reachable from any non-terminal status.
var forwardSuccessor = map[OrderStatus]OrderStatus{
	OrderStatusQuotation: OrderStatusConfirmed,
	OrderStatusConfirmed: OrderStatusPickup,
	OrderStatusPickup:    OrderStatusDelivered,
	OrderStatusDelivered: OrderStatusReturned,
}

// NextLegalStates returns every status reachable from current in one step.
// Terminal statuses (RETURNED, CANCELLED) return an empty slice.
func NextLegalStates(current OrderStatus) []OrderStatus {
	if current.IsTerminal() {
		return nil
	}
	next, ok := forwardSuccessor[current]
	if !ok {
		return nil
	}
	return []OrderStatus{next, OrderStatusCancelled}
}

// CanTransition reports whether target is reachable from current in one step.
func CanTransition(current, target OrderStatus) bool {
	for _, s := range NextLegalStates(current) {
		if s == target {
			return true
		}
	}
	return false
}

// ApplyTransition returns a copy of the order with the target status applied.
// Entering CONFIRMED stamps PickupScheduled and entering DELIVERED stamps
// ReturnScheduled, each only when absent. The input is never mutated and no
// I/O happens here; persisting the result is the caller's job.
func ApplyTransition(order Order, target OrderStatus, now time.Time) (Order, error) {
	if err := order.Validate(); err != nil {
		return Order{}, err
	}
	if !CanTransition(order.Status, target) {
		return Order{}, &InvalidTransitionError{OrderID: order.ID, From: order.Status, To: target}
	}

	next := order
	next.Products = append([]LineItem(nil), order.Products...)
	next.Status = target
	next.UpdatedAt = now

	switch target {
	case OrderStatusConfirmed:
		if next.PickupScheduled == nil {
			t := order.StartDate
			next.PickupScheduled = &t
		}
	case OrderStatusDelivered:
		if next.ReturnScheduled == nil {
			t := order.EndDate
			next.ReturnScheduled = &t
		}
	}
	return next, nil
}
