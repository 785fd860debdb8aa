package api

import (
	"net/http"
)

type ApprovalStatus struct {
	IsApproved bool `json:"isApproved"`
}

func (a *API) getApproval(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := a.getLoggerOrBaseLogger(ctx)

	customerId := r.PathValue("customerId")
	if customerId == "" {
		a.writeError(w, http.StatusBadRequest, Error{
			Code:    MissingCustomer,
			Message: "Must specify a customer id",
		})
		return
	}

	isApproved, err := a.backend.ApprovalStatus(ctx, customerId)
	if err != nil {
		logger.Error("Failed to fetch approval status", "error", err, "customerId", customerId)

		a.writeError(w, http.StatusBadGateway, Error{
			Code:    BackendError,
			Message: "Failed to fetch approval status",
		})
		return
	}

	a.writeJSON(w, http.StatusOK, ApprovalStatus{IsApproved: isApproved})
}
