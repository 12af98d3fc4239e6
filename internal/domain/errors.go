package domain

import (
	"errors"
	"fmt"
)

// InvalidTransitionError is returned when a requested status change is not
// reachable from the order's current status. It is always recoverable by the
// caller (reject the action, surface a message).
type InvalidTransitionError struct {
	OrderID string
	From    OrderStatus
	To      OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition for order %s: %s -> %s", e.OrderID, e.From, e.To)
}

func IsInvalidTransition(err error) bool {
	var ite *InvalidTransitionError
	return errors.As(err, &ite)
}

// MalformedOrderError indicates an order that violates a data-model invariant
// (paid over total, end before start, bad line item). This points at an
// upstream data bug, not a user error, so callers should log it as severe
// rather than show it as a rejected action.
type MalformedOrderError struct {
	OrderID string
	Field   string
	Reason  string
}

func (e *MalformedOrderError) Error() string {
	return fmt.Sprintf("malformed order %s: %s: %s", e.OrderID, e.Field, e.Reason)
}

func IsMalformedOrder(err error) bool {
	var moe *MalformedOrderError
	return errors.As(err, &moe)
}
