package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/International-Combat-Archery-Alliance/auth"
)

// sessionFromRequest validates the storefront session token carried on the
// Authorization header and returns the session it identifies.
func (a *API) sessionFromRequest(r *http.Request) (auth.AuthToken, error) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return nil, fmt.Errorf("no bearer token on request")
	}

	return a.authValidator.Validate(r.Context(), token, a.settings.StoreID)
}
