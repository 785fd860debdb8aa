package customer

import "context"

// Customer is the storefront platform's view of the current visitor.
// A nil *Customer means the visitor is a guest with no session at all.
// An empty Email means the platform returned a session without a signed-in
// customer behind it, which we also treat as a guest.
type Customer struct {
	ID              string
	Email           string
	MembershipGroup string
}

// IsGuest reports whether this record represents an unauthenticated visitor.
func (c *Customer) IsGuest() bool {
	return c == nil || c.Email == ""
}

type Source interface {
	GetCustomer(ctx context.Context, id string) (*Customer, error)
}
