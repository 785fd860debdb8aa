package customer

import "fmt"

type ErrorReason string

const (
	REASON_CUSTOMER_DOES_NOT_EXIST ErrorReason = "CUSTOMER_DOES_NOT_EXIST"
	REASON_FAILED_TO_FETCH         ErrorReason = "FAILED_TO_FETCH"
	REASON_INVALID_RESPONSE        ErrorReason = "INVALID_RESPONSE"
)

type Error struct {
	Reason  ErrorReason
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s. Cause: %s", e.Reason, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newCustomerError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

func NewCustomerDoesNotExistError(message string, cause error) *Error {
	return newCustomerError(REASON_CUSTOMER_DOES_NOT_EXIST, message, cause)
}

func NewFailedToFetchError(message string, cause error) *Error {
	return newCustomerError(REASON_FAILED_TO_FETCH, message, cause)
}

func NewInvalidResponseError(message string, cause error) *Error {
	return newCustomerError(REASON_INVALID_RESPONSE, message, cause)
}
