package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidOrderStatus(t *testing.T) {
	for _, s := range []string{OrderStatusPending, OrderStatusPaid, OrderStatusAssigned, OrderStatusCompleted, OrderStatusCancelled} {
		assert.True(t, IsValidOrderStatus(s), s)
	}
	assert.False(t, IsValidOrderStatus("Shipped"))
	assert.False(t, IsValidOrderStatus(""))
	assert.False(t, IsValidOrderStatus("pending"))
}

func TestCanTransitionOrder(t *testing.T) {
	allowed := []struct{ from, to string }{
		{OrderStatusPending, OrderStatusPaid},
		{OrderStatusPending, OrderStatusCancelled},
		{OrderStatusPaid, OrderStatusAssigned},
		{OrderStatusPaid, OrderStatusCancelled},
		{OrderStatusAssigned, OrderStatusCompleted},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransitionOrder(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	forbidden := []struct{ from, to string }{
		{OrderStatusCompleted, OrderStatusPending},
		{OrderStatusCompleted, OrderStatusCancelled},
		{OrderStatusCancelled, OrderStatusPending},
		{OrderStatusAssigned, OrderStatusCancelled},
		{OrderStatusAssigned, OrderStatusPaid},
		{OrderStatusPending, OrderStatusAssigned},
		{OrderStatusPending, OrderStatusCompleted},
		{OrderStatusPending, OrderStatusPending},
	}
	for _, tc := range forbidden {
		assert.False(t, CanTransitionOrder(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestCanTransitionOrderUnknownStatus(t *testing.T) {
	assert.False(t, CanTransitionOrder("Shipped", OrderStatusPaid))
	assert.False(t, CanTransitionOrder(OrderStatusPending, "Shipped"))
}
