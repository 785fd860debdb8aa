package api

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

func (a *API) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /register", a.postRegister)
	mux.HandleFunc("GET /access", a.getAccess)
	mux.HandleFunc("GET /approval/{customerId}", a.getApproval)
	mux.HandleFunc("GET /fields", a.getFields)
	mux.HandleFunc("GET /submissions", a.getSubmissions)

	return mux
}

// Handler wraps the routes in the full middleware stack. Middlewares are
// listed innermost first.
func (a *API) Handler(swagger *openapi3.T) http.Handler {
	return useMiddlewares(a.Routes(),
		a.openapiValidateMiddleware(swagger),
		a.corsMiddleware(),
		a.loggingMiddleware(),
		a.requestContextMiddleware(),
	)
}
