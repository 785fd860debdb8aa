package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/International-Combat-Archery-Alliance/auth"
	"github.com/International-Combat-Archery-Alliance/captcha"
	"github.com/International-Combat-Archery-Alliance/email"
	"github.com/shopglass/wholesale-gate/customer"
	"github.com/shopglass/wholesale-gate/wholesale"
)

var noopLogger = slog.New(slog.DiscardHandler)

var testSettings = Settings{
	StoreID:           "store-1",
	TargetGroup:       "Wholesale",
	RegistrationRoute: "/wholesale-register",
	FromAddress:       "noreply@shopglass.example",
	AllowedOrigins:    []string{"https://shop.example"},
}

type mockAuthToken struct {
	email   string
	isAdmin bool
}

func (m *mockAuthToken) ExpiresAt() time.Time  { return time.Now().Add(time.Hour) }
func (m *mockAuthToken) ProfilePicURL() string { return "" }
func (m *mockAuthToken) IsAdmin() bool         { return m.isAdmin }
func (m *mockAuthToken) UserEmail() string     { return m.email }
func (m *mockAuthToken) Roles() []auth.Role    { return nil }

type mockAuthValidator struct {
	ValidateFunc func(ctx context.Context, token string, clientID string) (auth.AuthToken, error)
}

func (m *mockAuthValidator) Validate(ctx context.Context, token string, clientID string) (auth.AuthToken, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, token, clientID)
	}
	return &mockAuthToken{email: "buyer@example.com"}, nil
}

type mockCaptchaValidatedData struct{}

func (m *mockCaptchaValidatedData) Hostname() string       { return "shop.example" }
func (m *mockCaptchaValidatedData) Action() string         { return "" }
func (m *mockCaptchaValidatedData) ChallengeTS() time.Time { return time.Now() }

type mockCaptchaValidator struct {
	ValidateFunc func(ctx context.Context, token string, remoteIP string) (captcha.ValidatedData, error)
}

func (m *mockCaptchaValidator) Validate(ctx context.Context, token string, remoteIP string) (captcha.ValidatedData, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, token, remoteIP)
	}
	return &mockCaptchaValidatedData{}, nil
}

type mockEmailSender struct {
	SendEmailFunc func(ctx context.Context, e email.Email) error
	sent          []email.Email
}

func (m *mockEmailSender) SendEmail(ctx context.Context, e email.Email) error {
	m.sent = append(m.sent, e)
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, e)
	}
	return nil
}

type mockDB struct {
	CreateSubmissionFunc  func(ctx context.Context, record wholesale.SubmissionRecord) error
	GetSubmissionFunc     func(ctx context.Context, customerID string) (wholesale.SubmissionRecord, error)
	GetAllSubmissionsFunc func(ctx context.Context, limit int32, cursor *string) (wholesale.GetAllSubmissionsResponse, error)
}

func (m *mockDB) CreateSubmission(ctx context.Context, record wholesale.SubmissionRecord) error {
	if m.CreateSubmissionFunc != nil {
		return m.CreateSubmissionFunc(ctx, record)
	}
	return nil
}

func (m *mockDB) GetSubmission(ctx context.Context, customerID string) (wholesale.SubmissionRecord, error) {
	if m.GetSubmissionFunc != nil {
		return m.GetSubmissionFunc(ctx, customerID)
	}
	return wholesale.SubmissionRecord{}, nil
}

func (m *mockDB) GetAllSubmissions(ctx context.Context, limit int32, cursor *string) (wholesale.GetAllSubmissionsResponse, error) {
	if m.GetAllSubmissionsFunc != nil {
		return m.GetAllSubmissionsFunc(ctx, limit, cursor)
	}
	return wholesale.GetAllSubmissionsResponse{}, nil
}

type mockBackend struct {
	RegisterFunc       func(ctx context.Context, values wholesale.RegistrationValues) (wholesale.SubmissionResult, error)
	ApprovalStatusFunc func(ctx context.Context, customerID string) (bool, error)
	registerCalls      int
}

func (m *mockBackend) Register(ctx context.Context, values wholesale.RegistrationValues) (wholesale.SubmissionResult, error) {
	m.registerCalls++
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, values)
	}
	return wholesale.SubmissionResult{
		Status:         "PENDING_APPROVAL",
		CustomerID:     42,
		IdempotencyKey: "test-key",
	}, nil
}

func (m *mockBackend) ApprovalStatus(ctx context.Context, customerID string) (bool, error) {
	if m.ApprovalStatusFunc != nil {
		return m.ApprovalStatusFunc(ctx, customerID)
	}
	return false, nil
}

type mockCustomerSource struct {
	GetCustomerFunc func(ctx context.Context, id string) (*customer.Customer, error)
}

func (m *mockCustomerSource) GetCustomer(ctx context.Context, id string) (*customer.Customer, error) {
	if m.GetCustomerFunc != nil {
		return m.GetCustomerFunc(ctx, id)
	}
	return &customer.Customer{ID: id, Email: "buyer@example.com"}, nil
}
