package access

import (
	"context"
	"strings"

	"github.com/shopglass/wholesale-gate/customer"
)

// Decision is what the storefront script needs to know on every page view:
// whether wholesale prices may be shown and whether the visitor should be
// sent to the registration route instead.
type Decision struct {
	ShowPrices                 bool
	MustRedirectToRegistration bool
}

// Evaluator classifies a customer record into a Decision. It holds no
// timers and does no polling; the host platform calls it on page-load and
// login-change notifications.
type Evaluator struct {
	targetGroup       string
	registrationRoute string
}

func NewEvaluator(targetGroup string, registrationRoute string) *Evaluator {
	return &Evaluator{
		targetGroup:       targetGroup,
		registrationRoute: registrationRoute,
	}
}

// Evaluate derives the access decision for the given customer on the given
// route. Guests are never force-redirected; they browse without prices.
// Members of the target group see prices. Everyone else is pointed at the
// registration route, unless they are already on it.
func (e *Evaluator) Evaluate(cust *customer.Customer, currentRoute string) Decision {
	if cust.IsGuest() {
		return Decision{ShowPrices: false, MustRedirectToRegistration: false}
	}

	if strings.EqualFold(cust.MembershipGroup, e.targetGroup) {
		return Decision{ShowPrices: true, MustRedirectToRegistration: false}
	}

	return e.notApprovedDecision(currentRoute)
}

// EvaluateByID looks the customer up through the platform source first.
// A lookup failure must never grant price visibility, so it degrades to the
// not-approved decision rather than returning an error to the caller.
func (e *Evaluator) EvaluateByID(ctx context.Context, src customer.Source, customerID string, currentRoute string) Decision {
	if customerID == "" {
		return Decision{ShowPrices: false, MustRedirectToRegistration: false}
	}

	cust, err := src.GetCustomer(ctx, customerID)
	if err != nil {
		return e.notApprovedDecision(currentRoute)
	}

	return e.Evaluate(cust, currentRoute)
}

func (e *Evaluator) notApprovedDecision(currentRoute string) Decision {
	return Decision{
		ShowPrices:                 false,
		MustRedirectToRegistration: !routeEqual(currentRoute, e.registrationRoute),
	}
}

func routeEqual(a, b string) bool {
	return strings.Trim(a, "/") == strings.Trim(b, "/")
}
