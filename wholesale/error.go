package wholesale

import "fmt"

type ErrorReason string

const (
	REASON_VALIDATION_FAILED               ErrorReason = "VALIDATION_FAILED"
	REASON_MISSING_CUSTOMER                ErrorReason = "MISSING_CUSTOMER"
	REASON_SUBMISSION_IN_FLIGHT            ErrorReason = "SUBMISSION_IN_FLIGHT"
	REASON_SUBMIT_FAILED                   ErrorReason = "SUBMIT_FAILED"
	REASON_FAILED_TO_TRANSLATE_TO_DB_MODEL ErrorReason = "FAILED_TO_TRANSLATE_TO_DB_MODEL"
	REASON_FAILED_TO_WRITE                 ErrorReason = "FAILED_TO_WRITE"
	REASON_FAILED_TO_FETCH                 ErrorReason = "FAILED_TO_FETCH"
	REASON_RECORD_DOES_NOT_EXIST           ErrorReason = "RECORD_DOES_NOT_EXIST"
	REASON_RECORD_ALREADY_EXISTS           ErrorReason = "RECORD_ALREADY_EXISTS"
	REASON_INVALID_CURSOR                  ErrorReason = "INVALID_CURSOR"
)

type Error struct {
	Reason  ErrorReason
	Message string
	Cause   error

	// FieldErrors is populated only for REASON_VALIDATION_FAILED.
	FieldErrors map[string]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s. Cause: %s", e.Reason, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newWholesaleError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

func NewValidationFailedError(fieldErrors map[string]string) *Error {
	err := newWholesaleError(REASON_VALIDATION_FAILED, fmt.Sprintf("%d fields failed validation", len(fieldErrors)), nil)
	err.FieldErrors = fieldErrors
	return err
}

func NewMissingCustomerError(message string) *Error {
	return newWholesaleError(REASON_MISSING_CUSTOMER, message, nil)
}

func NewSubmissionInFlightError(customerID string) *Error {
	return newWholesaleError(REASON_SUBMISSION_IN_FLIGHT, fmt.Sprintf("A submission is already in flight for customer %q", customerID), nil)
}

func NewSubmitFailedError(message string, cause error) *Error {
	return newWholesaleError(REASON_SUBMIT_FAILED, message, cause)
}

func NewFailedToTranslateToDBModelError(message string, cause error) *Error {
	return newWholesaleError(REASON_FAILED_TO_TRANSLATE_TO_DB_MODEL, message, cause)
}

func NewFailedToWriteError(message string, cause error) *Error {
	return newWholesaleError(REASON_FAILED_TO_WRITE, message, cause)
}

func NewFailedToFetchError(message string, cause error) *Error {
	return newWholesaleError(REASON_FAILED_TO_FETCH, message, cause)
}

func NewRecordDoesNotExistError(message string, cause error) *Error {
	return newWholesaleError(REASON_RECORD_DOES_NOT_EXIST, message, cause)
}

func NewRecordAlreadyExistsError(message string, cause error) *Error {
	return newWholesaleError(REASON_RECORD_ALREADY_EXISTS, message, cause)
}

func NewInvalidCursorError(message string, cause error) *Error {
	return newWholesaleError(REASON_INVALID_CURSOR, message, cause)
}
