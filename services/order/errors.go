package order

import "errors"

// Error taxonomy of the order service. Validation errors (empty cart,
// missing address) surface before any persistence attempt, so no order or
// item row ever exists for a rejected checkout.
var (
	ErrValidation        = errors.New("invalid order input")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrNotFound          = errors.New("order not found")
	ErrForbidden         = errors.New("not allowed for this order")
	ErrStatusConflict    = errors.New("order was modified concurrently, retry")
	ErrInsufficientStock = errors.New("insufficient stock for one or more items")
)
