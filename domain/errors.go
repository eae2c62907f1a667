package domain

import "errors"

// Sentinel errors shared by the lifecycle tables. Services wrap these with
// entity context; the HTTP layer maps them onto status codes.
var (
	// ErrInvalidTransition means the requested move is not in the allowed
	// transition table for the entity's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrTerminalState means the entity has reached a status no action may
	// leave.
	ErrTerminalState = errors.New("status is terminal")
	// ErrActionForbidden means the transition exists but the acting role may
	// not perform it.
	ErrActionForbidden = errors.New("action not permitted for role")
)
