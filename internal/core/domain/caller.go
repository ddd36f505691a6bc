package domain

const (
	RoleAdmin    = "admin"
	RoleSeller   = "seller"
	RoleCustomer = "customer"
)

// Caller identifies an authenticated request originator. The token
// validation itself is an external collaborator concern.
type Caller struct {
	ID   string
	Role string
}

func (c Caller) HasRole(roles ...string) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}
