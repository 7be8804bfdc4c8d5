package auth

import "strings"

type Role string

const (
	RoleCustomer   Role = "customer"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleCustomer, RoleAdmin, RoleSuperAdmin:
		return r, true
	default:
		return "", false
	}
}

func (r Role) String() string {
	return string(r)
}

// IsStaff reports whether the role may see bookings it does not own.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}
