package booking

import "errors"

// Error taxonomy of the booking service. Validation errors surface before
// any persistence attempt; conflict errors mean a compare-and-swap status
// update lost the race.
var (
	ErrValidation     = errors.New("invalid booking input")
	ErrNotFound       = errors.New("booking not found")
	ErrForbidden      = errors.New("not allowed for this booking")
	ErrStatusConflict = errors.New("booking was modified concurrently, retry")
)
