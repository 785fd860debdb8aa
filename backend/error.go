package backend

import "fmt"

type ErrorReason string

const (
	REASON_TOKEN_UNAVAILABLE  ErrorReason = "TOKEN_UNAVAILABLE"
	REASON_REQUEST_FAILED     ErrorReason = "REQUEST_FAILED"
	REASON_REJECTED_BY_SERVER ErrorReason = "REJECTED_BY_SERVER"
	REASON_RETRIES_EXHAUSTED  ErrorReason = "RETRIES_EXHAUSTED"
	REASON_INVALID_RESPONSE   ErrorReason = "INVALID_RESPONSE"
	REASON_CANCELED           ErrorReason = "CANCELED"
)

type Error struct {
	Reason  ErrorReason
	Message string
	Cause   error

	// StatusCode is set for REASON_REJECTED_BY_SERVER.
	StatusCode int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s. Cause: %s", e.Reason, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newBackendError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

func NewTokenUnavailableError(message string, cause error) *Error {
	return newBackendError(REASON_TOKEN_UNAVAILABLE, message, cause)
}

func NewRequestFailedError(message string, cause error) *Error {
	return newBackendError(REASON_REQUEST_FAILED, message, cause)
}

func NewRejectedByServerError(statusCode int, message string) *Error {
	err := newBackendError(REASON_REJECTED_BY_SERVER, message, nil)
	err.StatusCode = statusCode
	return err
}

func NewRetriesExhaustedError(attempts int) *Error {
	return newBackendError(REASON_RETRIES_EXHAUSTED, fmt.Sprintf("Registration backend still pending after %d attempts", attempts), nil)
}

func NewInvalidResponseError(message string, cause error) *Error {
	return newBackendError(REASON_INVALID_RESPONSE, message, cause)
}

func NewCanceledError(message string, cause error) *Error {
	return newBackendError(REASON_CANCELED, message, cause)
}
