package domain

import "fmt"

// OrderStatus is the fulfillment state of a product order, persisted as a
// string.
type OrderStatus string

const (
	OrderPendingPayment OrderStatus = "pending_payment"
	OrderProcessing     OrderStatus = "processing"
	OrderPacked         OrderStatus = "packed"
	OrderShipped        OrderStatus = "shipped"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
	OrderReturned       OrderStatus = "returned"
)

// orderSequence is the forward-only fulfillment path. Each status may only
// advance to the next entry; skipping ahead is rejected.
var orderSequence = map[OrderStatus]OrderStatus{
	OrderPendingPayment: OrderProcessing,
	OrderProcessing:     OrderPacked,
	OrderPacked:         OrderShipped,
	OrderShipped:        OrderOutForDelivery,
	OrderOutForDelivery: OrderDelivered,
}

// orderRank positions each fulfillment status on the forward path, used to
// decide how far along cancellation is still possible.
var orderRank = map[OrderStatus]int{
	OrderPendingPayment: 0,
	OrderProcessing:     1,
	OrderPacked:         2,
	OrderShipped:        3,
	OrderOutForDelivery: 4,
	OrderDelivered:      5,
}

// fulfillmentRoles may advance an order along the sequence.
var fulfillmentRoles = []Role{RoleSeller, RoleAdmin}

// IsTerminalOrderStatus reports whether the order can no longer change.
func IsTerminalOrderStatus(s OrderStatus) bool {
	return s == OrderDelivered || s == OrderCancelled || s == OrderReturned
}

// NextOrderStatus validates a requested status change for an order. Unlike
// bookings, callers name the target status directly (the seller dashboard
// drives a status control), so validation is against the forward-only
// sequence plus the two exits:
//
//   - cancelled is reachable from any pre-shipped status; customers may only
//     cancel while the order is still pending_payment or processing.
//   - returned is reachable from any pre-delivered status (return to sender),
//     by seller or admin.
//
// Delivered, cancelled and returned orders are immutable.
func NextOrderStatus(current, target OrderStatus, role Role) (OrderStatus, error) {
	if _, known := orderRank[target]; !known && target != OrderCancelled && target != OrderReturned {
		return "", fmt.Errorf("%w: unknown order status %q", ErrInvalidTransition, target)
	}
	if IsTerminalOrderStatus(current) {
		return "", fmt.Errorf("%w: order is %s", ErrTerminalState, current)
	}

	switch target {
	case OrderCancelled:
		rank := orderRank[current]
		switch role {
		case RoleCustomer:
			if rank > orderRank[OrderProcessing] {
				return "", fmt.Errorf("%w: customers may not cancel a %s order", ErrActionForbidden, current)
			}
		case RoleSeller, RoleAdmin:
			if rank >= orderRank[OrderShipped] {
				return "", fmt.Errorf("%w: cannot cancel a %s order", ErrInvalidTransition, current)
			}
		default:
			return "", fmt.Errorf("%w: role %q may not cancel orders", ErrActionForbidden, role)
		}
		return OrderCancelled, nil

	case OrderReturned:
		if !roleAllowed(fulfillmentRoles, role) {
			return "", fmt.Errorf("%w: role %q may not mark orders returned", ErrActionForbidden, role)
		}
		return OrderReturned, nil

	default:
		next, ok := orderSequence[current]
		if !ok || next != target {
			return "", fmt.Errorf("%w: cannot move order from %s to %s", ErrInvalidTransition, current, target)
		}
		if !roleAllowed(fulfillmentRoles, role) {
			return "", fmt.Errorf("%w: role %q may not advance fulfillment", ErrActionForbidden, role)
		}
		return target, nil
	}
}
