package auth

import "context"

// Principal is the authenticated caller of a request.
type Principal struct {
	Subject string
	Role    Role
}

type contextKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}

// CanReadBooking reports whether p may read a booking owned by customerID.
func (p Principal) CanReadBooking(customerID string) bool {
	if p.Role.IsStaff() {
		return true
	}
	return p.Role == RoleCustomer && p.Subject != "" && p.Subject == customerID
}
