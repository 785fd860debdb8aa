package api

import (
	"net/http"
)

type AccessDecision struct {
	ShowPrices                 bool `json:"showPrices"`
	MustRedirectToRegistration bool `json:"mustRedirectToRegistration"`
}

// getAccess answers whether the storefront should show wholesale prices to
// the given customer, and whether it should push them to the registration
// page. A missing customerId is a guest, which is a valid answer, not an
// error.
func (a *API) getAccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	customerId := r.URL.Query().Get("customerId")
	route := r.URL.Query().Get("route")

	decision := a.evaluator.EvaluateByID(ctx, a.customers, customerId, route)

	a.writeJSON(w, http.StatusOK, AccessDecision{
		ShowPrices:                 decision.ShowPrices,
		MustRedirectToRegistration: decision.MustRedirectToRegistration,
	})
}
