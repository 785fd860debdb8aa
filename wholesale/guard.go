package wholesale

import "sync"

// GuardSet is the submit-while-submitting guard made explicit: at most one
// submission may be in flight per customer. The storefront script disabled
// the submit button; a shared service needs the same rule enforced
// server-side.
type GuardSet struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewGuardSet() *GuardSet {
	return &GuardSet{
		inFlight: map[string]struct{}{},
	}
}

// Begin reports whether the caller may start a submission for customerID.
// A false return means one is already outstanding; the caller must not
// submit and must not call End.
func (g *GuardSet) Begin(customerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.inFlight[customerID]; ok {
		return false
	}

	g.inFlight[customerID] = struct{}{}
	return true
}

func (g *GuardSet) End(customerID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.inFlight, customerID)
}
