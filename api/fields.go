package api

import (
	"net/http"

	"github.com/shopglass/wholesale-gate/wholesale"
)

type FieldsResponse struct {
	Fields []wholesale.FieldDefinition `json:"fields"`
}

// getFields exposes the active signup form definition so the storefront
// renders exactly the fields the server will validate.
func (a *API) getFields(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, FieldsResponse{Fields: a.fields})
}
