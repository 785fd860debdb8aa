package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type ErrorCode string

const (
	InternalError        ErrorCode = "InternalError"
	InputValidationError ErrorCode = "InputValidationError"
	AuthError            ErrorCode = "AuthError"
	CaptchaInvalid       ErrorCode = "CaptchaInvalid"
	EmptyBody            ErrorCode = "EmptyBody"
	InvalidBody          ErrorCode = "InvalidBody"
	NotFound             ErrorCode = "NotFound"
	LimitOutOfBounds     ErrorCode = "LimitOutOfBounds"
	InvalidCursor        ErrorCode = "InvalidCursor"
	ValidationFailed     ErrorCode = "ValidationFailed"
	SubmissionInFlight   ErrorCode = "SubmissionInFlight"
	MissingCustomer      ErrorCode = "MissingCustomer"
	BackendError         ErrorCode = "BackendError"
)

type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	// FieldErrors maps field name to message for ValidationFailed responses.
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

func (a *API) writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("Failed to encode response body", slog.String("error", err.Error()))
	}
}

func (a *API) writeError(w http.ResponseWriter, statusCode int, e Error) {
	a.writeJSON(w, statusCode, e)
}
