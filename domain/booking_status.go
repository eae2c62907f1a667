package domain

import "fmt"

// BookingStatus is the lifecycle state of a service booking, persisted as a
// string.
type BookingStatus string

const (
	BookingPending         BookingStatus = "pending"
	BookingConfirmed       BookingStatus = "confirmed"
	BookingProviderEnroute BookingStatus = "provider_enroute"
	BookingInProgress      BookingStatus = "in_progress"
	BookingCompleted       BookingStatus = "completed"
	BookingCancelled       BookingStatus = "cancelled"
	BookingRefundRequested BookingStatus = "refund_requested"
	BookingRefunded        BookingStatus = "refunded"
)

// BookingAction is a request to move a booking along its lifecycle.
type BookingAction string

const (
	BookingActionAccept   BookingAction = "accept"
	BookingActionReject   BookingAction = "reject"
	BookingActionEnroute  BookingAction = "enroute"
	BookingActionStart    BookingAction = "start"
	BookingActionComplete BookingAction = "complete"
	BookingActionCancel   BookingAction = "cancel"
)

type bookingTransition struct {
	From  BookingStatus
	To    BookingStatus
	Roles []Role
}

// bookingTransitions is the full allowed-transition table. Anything not
// listed here is rejected, including every action on a terminal status.
var bookingTransitions = map[BookingAction][]bookingTransition{
	BookingActionAccept: {
		{From: BookingPending, To: BookingConfirmed, Roles: []Role{RoleProvider, RoleAdmin}},
	},
	BookingActionReject: {
		{From: BookingPending, To: BookingCancelled, Roles: []Role{RoleProvider, RoleAdmin}},
	},
	BookingActionEnroute: {
		{From: BookingConfirmed, To: BookingProviderEnroute, Roles: []Role{RoleProvider}},
	},
	BookingActionStart: {
		// Enroute is an optional hop; starting straight from confirmed is valid.
		{From: BookingConfirmed, To: BookingInProgress, Roles: []Role{RoleProvider}},
		{From: BookingProviderEnroute, To: BookingInProgress, Roles: []Role{RoleProvider}},
	},
	BookingActionComplete: {
		{From: BookingInProgress, To: BookingCompleted, Roles: []Role{RoleProvider, RoleAdmin}},
	},
	BookingActionCancel: {
		{From: BookingPending, To: BookingCancelled, Roles: []Role{RoleCustomer, RoleAdmin}},
		{From: BookingConfirmed, To: BookingCancelled, Roles: []Role{RoleCustomer, RoleAdmin}},
		{From: BookingProviderEnroute, To: BookingCancelled, Roles: []Role{RoleAdmin}},
	},
}

// IsTerminalBookingStatus reports whether no action, including an admin
// override, may move the booking further.
func IsTerminalBookingStatus(s BookingStatus) bool {
	return s == BookingCompleted || s == BookingCancelled || s == BookingRefunded
}

// NextBookingStatus resolves an action against the current status and the
// acting role. It returns the resulting status, or an error when the action
// is unknown, not allowed from the current status, or not permitted for the
// role.
func NextBookingStatus(current BookingStatus, action BookingAction, role Role) (BookingStatus, error) {
	rows, ok := bookingTransitions[action]
	if !ok {
		return "", fmt.Errorf("%w: unknown booking action %q", ErrInvalidTransition, action)
	}
	if IsTerminalBookingStatus(current) {
		return "", fmt.Errorf("%w: booking is %s", ErrTerminalState, current)
	}
	for _, row := range rows {
		if row.From != current {
			continue
		}
		if !roleAllowed(row.Roles, role) {
			return "", fmt.Errorf("%w: role %q may not %s a %s booking", ErrActionForbidden, role, action, current)
		}
		return row.To, nil
	}
	return "", fmt.Errorf("%w: cannot %s a %s booking", ErrInvalidTransition, action, current)
}

// CanOverrideBookingStatus validates a direct administrative status write.
// The refund states and provider_enroute have no regular transition into
// them beyond the table above; support reaches them through an admin
// override. Overrides still respect the terminal-state law.
func CanOverrideBookingStatus(current, target BookingStatus, role Role) error {
	if role != RoleAdmin {
		return fmt.Errorf("%w: only admins may override booking status", ErrActionForbidden)
	}
	if IsTerminalBookingStatus(current) {
		return fmt.Errorf("%w: booking is %s", ErrTerminalState, current)
	}
	switch target {
	case BookingPending, BookingConfirmed, BookingProviderEnroute, BookingInProgress,
		BookingCompleted, BookingCancelled, BookingRefundRequested, BookingRefunded:
		return nil
	default:
		return fmt.Errorf("%w: unknown booking status %q", ErrInvalidTransition, target)
	}
}
