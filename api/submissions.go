package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/shopglass/wholesale-gate/slices"
	"github.com/shopglass/wholesale-gate/wholesale"
)

type Submission struct {
	CustomerID     string    `json:"customerId"`
	IdempotencyKey string    `json:"idempotencyKey"`
	Status         string    `json:"status"`
	GroupID        *int64    `json:"groupId,omitempty"`
	Email          string    `json:"email,omitempty"`
	CompanyName    string    `json:"companyName"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

type SubmissionsResponse struct {
	Data        []Submission `json:"data"`
	Cursor      *string      `json:"cursor,omitempty"`
	HasNextPage bool         `json:"hasNextPage"`
}

func recordToApiSubmission(record wholesale.SubmissionRecord) Submission {
	return Submission{
		CustomerID:     record.CustomerID,
		IdempotencyKey: record.IdempotencyKey,
		Status:         record.Status,
		GroupID:        record.GroupID,
		Email:          record.Email,
		CompanyName:    record.CompanyName,
		SubmittedAt:    record.SubmittedAt,
	}
}

// getSubmissions lists recorded applications for back-office review, newest
// first. Admin sessions only.
func (a *API) getSubmissions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := a.getLoggerOrBaseLogger(ctx)

	session, err := a.sessionFromRequest(r)
	if err != nil || !session.IsAdmin() {
		logger.Warn("Non-admin attempted to list submissions", "error", err)

		a.writeError(w, http.StatusUnauthorized, Error{
			Code:    AuthError,
			Message: "Must be an admin to list submissions",
		})
		return
	}

	limit := 10
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		userLimit, err := strconv.Atoi(limitParam)
		if err != nil || userLimit < 1 || userLimit > 50 {
			logger.Warn("Limit out of bounds", "limit", limitParam)

			a.writeError(w, http.StatusBadRequest, Error{
				Code:    LimitOutOfBounds,
				Message: "Limit must be between 1 and 50",
			})
			return
		}
		limit = userLimit
	}

	var cursor *string
	if cursorParam := r.URL.Query().Get("cursor"); cursorParam != "" {
		cursor = &cursorParam
	}

	result, err := a.db.GetAllSubmissions(ctx, int32(limit), cursor)
	if err != nil {
		logger.Error("Failed to get submissions", "error", err)

		var wholesaleErr *wholesale.Error
		if errors.As(err, &wholesaleErr) {
			switch wholesaleErr.Reason {
			case wholesale.REASON_INVALID_CURSOR:
				a.writeError(w, http.StatusBadRequest, Error{
					Code:    InvalidCursor,
					Message: "Cursor is invalid",
				})
				return
			}
		}

		a.writeError(w, http.StatusInternalServerError, Error{
			Code:    InternalError,
			Message: "Failed to get submissions",
		})
		return
	}

	a.writeJSON(w, http.StatusOK, SubmissionsResponse{
		Data:        slices.Map(result.Data, recordToApiSubmission),
		Cursor:      result.Cursor,
		HasNextPage: result.HasNextPage,
	})
}
