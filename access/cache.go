package access

import "sync"

// DecisionCache memoizes the last decision for a single customer identity.
// It replaces the ambient module-level caches the storefront script grew:
// ownership is explicit and the invalidation rule is exactly one thing,
// the customer identity changing.
type DecisionCache struct {
	mu         sync.Mutex
	customerID string
	decision   Decision
	valid      bool
}

func NewDecisionCache() *DecisionCache {
	return &DecisionCache{}
}

// Get returns the memoized decision for customerID. Asking about a
// different customer than the one cached invalidates the memo.
func (c *DecisionCache) Get(customerID string) (Decision, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid || c.customerID != customerID {
		c.valid = false
		return Decision{}, false
	}

	return c.decision, true
}

func (c *DecisionCache) Put(customerID string, decision Decision) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.customerID = customerID
	c.decision = decision
	c.valid = true
}

func (c *DecisionCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.valid = false
}
