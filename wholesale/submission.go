package wholesale

import (
	"context"
	"fmt"
)

// SubmissionResult is the registration backend's answer to an accepted
// application. IdempotencyKey is the key the submitter generated for the
// logical submission, so callers can record it alongside the outcome.
type SubmissionResult struct {
	Status         string
	CustomerID     int64
	GroupID        *int64
	IdempotencyKey string
}

// Submitter sends one application to the registration backend. A single
// call is one logical submission: the submitter owns the idempotency key
// and any retry-later handling, and returns only a terminal result.
type Submitter interface {
	Register(ctx context.Context, values RegistrationValues) (SubmissionResult, error)
}

type ApprovalChecker interface {
	ApprovalStatus(ctx context.Context, customerID string) (bool, error)
}

type OutcomeState string

const (
	OUTCOME_APPROVED         OutcomeState = "APPROVED"
	OUTCOME_PENDING_APPROVAL OutcomeState = "PENDING_APPROVAL"
)

// Outcome is what the storefront acts on after a submission: approved
// customers get a visibility refresh and a redirect, pending ones get an
// awaiting-approval notice and stay put.
type Outcome struct {
	State  OutcomeState
	Result SubmissionResult
}

// AttemptSubmission validates and submits one wholesale application.
//
// Local validation failures and a missing customer identity never reach the
// network. After an accepted submission the approval status is re-checked;
// a failed approval lookup counts as not approved, never as approved.
func AttemptSubmission(ctx context.Context, values RegistrationValues, fields FieldSet, submitter Submitter, approvals ApprovalChecker) (Outcome, error) {
	if values.CustomerID == "" {
		return Outcome{}, NewMissingCustomerError("Cannot submit a registration without a customer identity")
	}

	if fieldErrors := Validate(values, fields); len(fieldErrors) > 0 {
		return Outcome{}, NewValidationFailedError(fieldErrors)
	}

	result, err := submitter.Register(ctx, values)
	if err != nil {
		return Outcome{}, NewSubmitFailedError(fmt.Sprintf("Failed to submit registration for customer %q", values.CustomerID), err)
	}

	approved, err := approvals.ApprovalStatus(ctx, values.CustomerID)
	if err != nil || !approved {
		return Outcome{State: OUTCOME_PENDING_APPROVAL, Result: result}, nil
	}

	return Outcome{State: OUTCOME_APPROVED, Result: result}, nil
}
