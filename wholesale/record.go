package wholesale

import (
	"context"
	"time"
)

// SubmissionRecord is the audit trail of one accepted submission: which
// customer applied, under which idempotency key, and what the backend said.
type SubmissionRecord struct {
	CustomerID     string
	Version        int
	IdempotencyKey string
	Status         string
	GroupID        *int64
	Email          string
	CompanyName    string
	SubmittedAt    time.Time
}

type GetAllSubmissionsResponse struct {
	Data        []SubmissionRecord
	Cursor      *string
	HasNextPage bool
}

type RecordStore interface {
	CreateSubmission(ctx context.Context, record SubmissionRecord) error
	GetSubmission(ctx context.Context, customerID string) (SubmissionRecord, error)
	GetAllSubmissions(ctx context.Context, limit int32, cursor *string) (GetAllSubmissionsResponse, error)
}
