package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOrderStatusForwardSequence(t *testing.T) {
	steps := []struct {
		from OrderStatus
		to   OrderStatus
	}{
		{OrderPendingPayment, OrderProcessing},
		{OrderProcessing, OrderPacked},
		{OrderPacked, OrderShipped},
		{OrderShipped, OrderOutForDelivery},
		{OrderOutForDelivery, OrderDelivered},
	}

	for _, step := range steps {
		got, err := NextOrderStatus(step.from, step.to, RoleSeller)
		require.NoError(t, err, "%s -> %s", step.from, step.to)
		assert.Equal(t, step.to, got)
	}
}

func TestNextOrderStatusRejectsSkips(t *testing.T) {
	_, err := NextOrderStatus(OrderProcessing, OrderShipped, RoleSeller)
	assert.ErrorIs(t, err, ErrInvalidTransition, "cannot skip packed")

	_, err = NextOrderStatus(OrderPendingPayment, OrderDelivered, RoleSeller)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = NextOrderStatus(OrderShipped, OrderProcessing, RoleSeller)
	assert.ErrorIs(t, err, ErrInvalidTransition, "the sequence never runs backwards")
}

func TestNextOrderStatusTerminalStatesAreImmutable(t *testing.T) {
	terminals := []OrderStatus{OrderDelivered, OrderCancelled, OrderReturned}
	targets := []OrderStatus{
		OrderProcessing, OrderPacked, OrderShipped,
		OrderOutForDelivery, OrderDelivered, OrderCancelled, OrderReturned,
	}

	for _, status := range terminals {
		for _, target := range targets {
			_, err := NextOrderStatus(status, target, RoleAdmin)
			assert.ErrorIs(t, err, ErrTerminalState, "%s -> %s", status, target)
		}
	}
}

func TestNextOrderStatusCancellationWindow(t *testing.T) {
	// Customers may back out until the seller starts packing.
	for _, from := range []OrderStatus{OrderPendingPayment, OrderProcessing} {
		got, err := NextOrderStatus(from, OrderCancelled, RoleCustomer)
		require.NoError(t, err, "customer cancel from %s", from)
		assert.Equal(t, OrderCancelled, got)
	}
	_, err := NextOrderStatus(OrderPacked, OrderCancelled, RoleCustomer)
	assert.ErrorIs(t, err, ErrActionForbidden, "packed is past the customer window")

	// Sellers may cancel anything not yet shipped.
	got, err := NextOrderStatus(OrderPacked, OrderCancelled, RoleSeller)
	require.NoError(t, err)
	assert.Equal(t, OrderCancelled, got)

	_, err = NextOrderStatus(OrderShipped, OrderCancelled, RoleSeller)
	assert.ErrorIs(t, err, ErrInvalidTransition, "shipped goods come back as returns, not cancellations")
}

func TestNextOrderStatusReturns(t *testing.T) {
	for _, from := range []OrderStatus{OrderShipped, OrderOutForDelivery} {
		got, err := NextOrderStatus(from, OrderReturned, RoleSeller)
		require.NoError(t, err, "return from %s", from)
		assert.Equal(t, OrderReturned, got)
	}

	_, err := NextOrderStatus(OrderShipped, OrderReturned, RoleCustomer)
	assert.ErrorIs(t, err, ErrActionForbidden, "customers request returns through the seller")
}

func TestNextOrderStatusFulfillmentIsSellerSide(t *testing.T) {
	_, err := NextOrderStatus(OrderProcessing, OrderPacked, RoleCustomer)
	assert.ErrorIs(t, err, ErrActionForbidden)

	_, err = NextOrderStatus(OrderProcessing, OrderPacked, RoleProvider)
	assert.ErrorIs(t, err, ErrActionForbidden)

	_, err = NextOrderStatus(OrderProcessing, OrderStatus("warehouse"), RoleSeller)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
