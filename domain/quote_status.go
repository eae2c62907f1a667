package domain

import "fmt"

// QuoteStatus tracks a custom-price request: the customer asks, the provider
// offers, the customer decides. Structurally the same request/offer/accept
// shape as bookings, but it never touches the booking or order tables.
type QuoteStatus string

const (
	QuotePending   QuoteStatus = "pending"
	QuoteResponded QuoteStatus = "responded"
	QuoteAccepted  QuoteStatus = "accepted"
	QuoteRejected  QuoteStatus = "rejected"
	QuoteClosed    QuoteStatus = "closed"
)

// QuoteAction is a request to move a quote along its lifecycle.
type QuoteAction string

const (
	QuoteActionRespond QuoteAction = "respond"
	QuoteActionAccept  QuoteAction = "accept"
	QuoteActionReject  QuoteAction = "reject"
	QuoteActionClose   QuoteAction = "close"
)

type quoteTransition struct {
	From  QuoteStatus
	To    QuoteStatus
	Roles []Role
}

var quoteTransitions = map[QuoteAction][]quoteTransition{
	QuoteActionRespond: {
		{From: QuotePending, To: QuoteResponded, Roles: []Role{RoleProvider}},
		// Providers may revise an outstanding offer.
		{From: QuoteResponded, To: QuoteResponded, Roles: []Role{RoleProvider}},
	},
	QuoteActionAccept: {
		{From: QuoteResponded, To: QuoteAccepted, Roles: []Role{RoleCustomer}},
	},
	QuoteActionReject: {
		{From: QuoteResponded, To: QuoteRejected, Roles: []Role{RoleCustomer}},
	},
	QuoteActionClose: {
		{From: QuotePending, To: QuoteClosed, Roles: []Role{RoleCustomer, RoleAdmin}},
		{From: QuoteResponded, To: QuoteClosed, Roles: []Role{RoleCustomer, RoleAdmin}},
		{From: QuoteAccepted, To: QuoteClosed, Roles: []Role{RoleAdmin}},
		{From: QuoteRejected, To: QuoteClosed, Roles: []Role{RoleAdmin}},
	},
}

// IsTerminalQuoteStatus reports whether the quote can no longer change.
func IsTerminalQuoteStatus(s QuoteStatus) bool {
	return s == QuoteClosed
}

// NextQuoteStatus resolves a quote action against the current status and
// acting role.
func NextQuoteStatus(current QuoteStatus, action QuoteAction, role Role) (QuoteStatus, error) {
	rows, ok := quoteTransitions[action]
	if !ok {
		return "", fmt.Errorf("%w: unknown quote action %q", ErrInvalidTransition, action)
	}
	if IsTerminalQuoteStatus(current) {
		return "", fmt.Errorf("%w: quote is %s", ErrTerminalState, current)
	}
	for _, row := range rows {
		if row.From != current {
			continue
		}
		if !roleAllowed(row.Roles, role) {
			return "", fmt.Errorf("%w: role %q may not %s a %s quote", ErrActionForbidden, role, action, current)
		}
		return row.To, nil
	}
	return "", fmt.Errorf("%w: cannot %s a %s quote", ErrInvalidTransition, action, current)
}
