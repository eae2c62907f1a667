package domain

// Role identifies which side of the marketplace an actor acts from.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

// Actor is the authenticated identity a service call runs as. It is resolved
// once at the HTTP boundary and passed explicitly; services never read
// ambient auth state.
type Actor struct {
	ID   string
	Role Role
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func roleAllowed(roles []Role, r Role) bool {
	for _, allowed := range roles {
		if allowed == r {
			return true
		}
	}
	return false
}
