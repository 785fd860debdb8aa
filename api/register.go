package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/International-Combat-Archery-Alliance/auth"
	"github.com/shopglass/wholesale-gate/backend"
	"github.com/shopglass/wholesale-gate/wholesale"
)

type WholesaleApplication struct {
	Name            string `json:"name"`
	CompanyName     string `json:"companyName"`
	CountryCode     string `json:"countryCode"`
	PostalCode      string `json:"postalCode"`
	Phone           string `json:"phone"`
	CellPhone       string `json:"cellPhone,omitempty"`
	TaxID           string `json:"taxId"`
	HearAbout       string `json:"hear,omitempty"`
	AcceptMarketing bool   `json:"acceptMarketing,omitempty"`
	CustomerID      string `json:"customerId"`
}

type RegisterResponse struct {
	Outcome          string `json:"outcome"`
	AwaitingApproval bool   `json:"awaitingApproval"`
	Status           string `json:"status"`
	CustomerID       int64  `json:"customerId"`
	GroupID          *int64 `json:"groupId,omitempty"`
}

func apiApplicationToValues(app WholesaleApplication) wholesale.RegistrationValues {
	return wholesale.RegistrationValues{
		Name:            app.Name,
		CompanyName:     app.CompanyName,
		CountryCode:     app.CountryCode,
		PostalCode:      app.PostalCode,
		Phone:           app.Phone,
		CellPhone:       app.CellPhone,
		TaxID:           app.TaxID,
		HearAbout:       app.HearAbout,
		AcceptMarketing: app.AcceptMarketing,
		CustomerID:      app.CustomerID,
	}
}

func (a *API) postRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := a.getLoggerOrBaseLogger(ctx)

	session, err := a.sessionFromRequest(r)
	if err != nil {
		logger.Warn("Registration attempted without a valid session", "error", err)

		a.writeError(w, http.StatusUnauthorized, Error{
			Code:    AuthError,
			Message: "Must be signed in to register",
		})
		return
	}

	_, err = a.captchaValidator.Validate(ctx, r.Header.Get("Cf-Turnstile-Response"), r.RemoteAddr)
	if err != nil {
		logger.Warn("Captcha validation failed for registration", "error", err)

		a.writeError(w, http.StatusBadRequest, Error{
			Code:    CaptchaInvalid,
			Message: "Captcha challenge failed",
		})
		return
	}

	var app WholesaleApplication
	err = json.NewDecoder(r.Body).Decode(&app)
	if errors.Is(err, io.EOF) {
		logger.Warn("Nil body for registration")

		a.writeError(w, http.StatusBadRequest, Error{
			Code:    EmptyBody,
			Message: "Must specify a body",
		})
		return
	} else if err != nil {
		logger.Warn("Invalid body for registration", "error", err)

		a.writeError(w, http.StatusBadRequest, Error{
			Code:    InvalidBody,
			Message: "Invalid body",
		})
		return
	}

	values := apiApplicationToValues(app)
	if values.CustomerID == "" {
		logger.Warn("Registration without a customer identity")

		a.writeError(w, http.StatusBadRequest, Error{
			Code:    MissingCustomer,
			Message: "Must be signed in as a customer to register",
		})
		return
	}

	if !a.guards.Begin(values.CustomerID) {
		logger.Warn("Registration already in flight", "customerId", values.CustomerID)

		a.writeError(w, http.StatusConflict, Error{
			Code:    SubmissionInFlight,
			Message: "A registration for this customer is already being processed",
		})
		return
	}
	defer a.guards.End(values.CustomerID)

	outcome, err := wholesale.AttemptSubmission(ctx, values, a.fields, a.backend, a.backend)
	if err != nil {
		logger.Error("Error trying to register", "error", err)

		var wholesaleErr *wholesale.Error

		if errors.As(err, &wholesaleErr) {
			switch wholesaleErr.Reason {
			case wholesale.REASON_VALIDATION_FAILED:
				a.writeError(w, http.StatusBadRequest, Error{
					Code:        ValidationFailed,
					Message:     "One or more fields are invalid",
					FieldErrors: wholesaleErr.FieldErrors,
				})
				return
			case wholesale.REASON_MISSING_CUSTOMER:
				a.writeError(w, http.StatusBadRequest, Error{
					Code:    MissingCustomer,
					Message: "Must be signed in as a customer to register",
				})
				return
			case wholesale.REASON_SUBMIT_FAILED:
				statusCode, respErr := backendFailureResponse(err)
				a.writeError(w, statusCode, respErr)
				return
			}
		}

		a.writeError(w, http.StatusInternalServerError, Error{
			Code:    InternalError,
			Message: "Failed to register",
		})
		return
	}

	a.recordSubmission(r, values, session, outcome)

	if outcome.State == wholesale.OUTCOME_PENDING_APPROVAL && session.UserEmail() != "" {
		err = wholesale.SendApplicationReceivedEmail(ctx, a.emailSender, a.settings.FromAddress, session.UserEmail(), values)
		if err != nil {
			logger.Error("Failed to send application received email", "error", err)
		}
	}

	a.writeJSON(w, http.StatusOK, RegisterResponse{
		Outcome:          string(outcome.State),
		AwaitingApproval: outcome.State == wholesale.OUTCOME_PENDING_APPROVAL,
		Status:           outcome.Result.Status,
		CustomerID:       outcome.Result.CustomerID,
		GroupID:          outcome.Result.GroupID,
	})
}

// backendFailureResponse picks the response for a submission the commerce
// backend refused or never finished. Rejections carry the backend's own
// message through so the shopper sees why they were turned down.
func backendFailureResponse(err error) (int, Error) {
	var backendErr *backend.Error

	if errors.As(err, &backendErr) {
		switch backendErr.Reason {
		case backend.REASON_REJECTED_BY_SERVER:
			return http.StatusUnprocessableEntity, Error{
				Code:    BackendError,
				Message: backendErr.Message,
			}
		case backend.REASON_RETRIES_EXHAUSTED:
			return http.StatusGatewayTimeout, Error{
				Code:    BackendError,
				Message: "Registration is still being processed, try again later",
			}
		}
	}

	return http.StatusBadGateway, Error{
		Code:    BackendError,
		Message: "Failed to reach the registration backend",
	}
}

// recordSubmission writes the audit record for an accepted submission. The
// record is bookkeeping, not part of the registration contract, so a write
// failure is logged and the shopper still gets their outcome.
func (a *API) recordSubmission(r *http.Request, values wholesale.RegistrationValues, session auth.AuthToken, outcome wholesale.Outcome) {
	ctx := r.Context()
	logger := a.getLoggerOrBaseLogger(ctx)

	err := a.db.CreateSubmission(ctx, wholesale.SubmissionRecord{
		CustomerID:     values.CustomerID,
		Version:        1,
		IdempotencyKey: outcome.Result.IdempotencyKey,
		Status:         outcome.Result.Status,
		GroupID:        outcome.Result.GroupID,
		Email:          session.UserEmail(),
		CompanyName:    values.CompanyName,
		SubmittedAt:    time.Now().UTC(),
	})
	if err != nil {
		var wholesaleErr *wholesale.Error
		if errors.As(err, &wholesaleErr) && wholesaleErr.Reason == wholesale.REASON_RECORD_ALREADY_EXISTS {
			logger.Warn("Submission record already exists", "customerId", values.CustomerID)
			return
		}

		logger.Error("Failed to write submission record", "error", err, "customerId", values.CustomerID)
	}
}
