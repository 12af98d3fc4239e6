package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextLegalStates(t *testing.T) {
	cases := []struct {
		current OrderStatus
		want    []OrderStatus
	}{
		{OrderStatusQuotation, []OrderStatus{OrderStatusConfirmed, OrderStatusCancelled}},
		{OrderStatusConfirmed, []OrderStatus{OrderStatusPickup, OrderStatusCancelled}},
		{OrderStatusPickup, []OrderStatus{OrderStatusDelivered, OrderStatusCancelled}},
		{OrderStatusDelivered, []OrderStatus{OrderStatusReturned, OrderStatusCancelled}},
		{OrderStatusReturned, nil},
		{OrderStatusCancelled, nil},
	}
	for _, tc := range cases {
		t.Run(string(tc.current), func(t *testing.T) {
			assert.Equal(t, tc.want, NextLegalStates(tc.current))
		})
	}
}

func TestCanTransition(t *testing.T) {
	t.Run("CancelFromAnyNonTerminal", func(t *testing.T) {
		for _, s := range []OrderStatus{OrderStatusQuotation, OrderStatusConfirmed, OrderStatusPickup, OrderStatusDelivered} {
			assert.True(t, CanTransition(s, OrderStatusCancelled), "should cancel from %s", s)
		}
	})

	t.Run("NoSkippingSteps", func(t *testing.T) {
		assert.False(t, CanTransition(OrderStatusQuotation, OrderStatusPickup))
		assert.False(t, CanTransition(OrderStatusConfirmed, OrderStatusReturned))
	})

	t.Run("NoBackwardSteps", func(t *testing.T) {
		assert.False(t, CanTransition(OrderStatusDelivered, OrderStatusPickup))
		assert.False(t, CanTransition(OrderStatusConfirmed, OrderStatusQuotation))
	})

	t.Run("TerminalIsAbsorbing", func(t *testing.T) {
		for _, target := range []OrderStatus{OrderStatusQuotation, OrderStatusConfirmed, OrderStatusPickup, OrderStatusDelivered, OrderStatusReturned, OrderStatusCancelled} {
			assert.False(t, CanTransition(OrderStatusReturned, target))
			assert.False(t, CanTransition(OrderStatusCancelled, target))
		}
	})

	t.Run("NoSelfTransition", func(t *testing.T) {
		assert.False(t, CanTransition(OrderStatusDelivered, OrderStatusDelivered))
	})
}

func TestApplyTransition(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	t.Run("FullForwardPath", func(t *testing.T) {
		o := validOrder()
		path := []OrderStatus{OrderStatusConfirmed, OrderStatusPickup, OrderStatusDelivered, OrderStatusReturned}
		for _, target := range path {
			next, err := ApplyTransition(o, target, now)
			require.NoError(t, err, "transition to %s", target)
			assert.Equal(t, target, next.Status)
			assert.Equal(t, now, next.UpdatedAt)
			o = next
		}
	})

	t.Run("StampsPickupScheduleOnConfirm", func(t *testing.T) {
		o := validOrder()
		next, err := ApplyTransition(o, OrderStatusConfirmed, now)
		require.NoError(t, err)
		require.NotNil(t, next.PickupScheduled)
		assert.Equal(t, o.StartDate, *next.PickupScheduled)
	})

	t.Run("StampsReturnScheduleOnDeliver", func(t *testing.T) {
		o := validOrder()
		o.Status = OrderStatusPickup
		next, err := ApplyTransition(o, OrderStatusDelivered, now)
		require.NoError(t, err)
		require.NotNil(t, next.ReturnScheduled)
		assert.Equal(t, o.EndDate, *next.ReturnScheduled)
	})

	t.Run("KeepsExistingSchedule", func(t *testing.T) {
		o := validOrder()
		existing := now.Add(time.Hour)
		o.PickupScheduled = &existing
		next, err := ApplyTransition(o, OrderStatusConfirmed, now)
		require.NoError(t, err)
		assert.Equal(t, existing, *next.PickupScheduled)
	})

	t.Run("ReplayRejected", func(t *testing.T) {
		o := validOrder()
		o.Status = OrderStatusDelivered
		returned, err := ApplyTransition(o, OrderStatusReturned, now)
		require.NoError(t, err)

		_, err = ApplyTransition(returned, OrderStatusReturned, now)
		require.Error(t, err)
		assert.True(t, IsInvalidTransition(err))
	})

	t.Run("InvalidTransitionDetails", func(t *testing.T) {
		o := validOrder()
		_, err := ApplyTransition(o, OrderStatusDelivered, now)
		var ite *InvalidTransitionError
		require.ErrorAs(t, err, &ite)
		assert.Equal(t, o.ID, ite.OrderID)
		assert.Equal(t, OrderStatusQuotation, ite.From)
		assert.Equal(t, OrderStatusDelivered, ite.To)
	})

	t.Run("ValidatesBeforeTransition", func(t *testing.T) {
		o := validOrder()
		o.PaidAmountCents = o.TotalAmountCents + 100
		_, err := ApplyTransition(o, OrderStatusConfirmed, now)
		require.Error(t, err)
		assert.True(t, IsMalformedOrder(err))
	})

	t.Run("InputNotMutated", func(t *testing.T) {
		o := validOrder()
		_, err := ApplyTransition(o, OrderStatusConfirmed, now)
		require.NoError(t, err)
		assert.Equal(t, OrderStatusQuotation, o.Status)
		assert.Nil(t, o.PickupScheduled)
	})
}
