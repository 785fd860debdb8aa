package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/International-Combat-Archery-Alliance/captcha"
	"github.com/shopglass/wholesale-gate/backend"
	"github.com/shopglass/wholesale-gate/wholesale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validApplication() WholesaleApplication {
	return WholesaleApplication{
		Name:        "Ada Lovelace",
		CompanyName: "Analytical Engines Oy",
		CountryCode: "FI",
		PostalCode:  "00100",
		Phone:       "+358 40 1234567",
		TaxID:       "FI12345678",
		CustomerID:  "cust-123",
	}
}

func postRegisterRequest(t *testing.T, app WholesaleApplication) *http.Request {
	t.Helper()

	body, err := json.Marshal(app)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer session-token")
	req.Header.Set("Cf-Turnstile-Response", "captcha-token")

	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) Error {
	t.Helper()

	var e Error
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&e))
	return e
}

func TestPostRegister(t *testing.T) {
	t.Run("accepted submission still pending approval", func(t *testing.T) {
		var recorded *wholesale.SubmissionRecord
		mockStore := &mockDB{
			CreateSubmissionFunc: func(ctx context.Context, record wholesale.SubmissionRecord) error {
				recorded = &record
				return nil
			},
		}
		sender := &mockEmailSender{}
		api := NewAPI(mockStore, &mockBackend{}, &mockCustomerSource{}, noopLogger, LOCAL, &mockAuthValidator{}, &mockCaptchaValidator{}, sender, testSettings)

		rec := httptest.NewRecorder()
		api.postRegister(rec, postRegisterRequest(t, validApplication()))

		require.Equal(t, http.StatusOK, rec.Code)

		var resp RegisterResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, string(wholesale.OUTCOME_PENDING_APPROVAL), resp.Outcome)
		assert.True(t, resp.AwaitingApproval)
		assert.Equal(t, int64(42), resp.CustomerID)

		require.NotNil(t, recorded)
		assert.Equal(t, "cust-123", recorded.CustomerID)
		assert.Equal(t, "test-key", recorded.IdempotencyKey)
		assert.Equal(t, "buyer@example.com", recorded.Email)

		require.Len(t, sender.sent, 1)
		assert.Equal(t, []string{"buyer@example.com"}, sender.sent[0].ToAddresses)
	})

	t.Run("approved right away skips the awaiting-approval email", func(t *testing.T) {
		mockB := &mockBackend{
			ApprovalStatusFunc: func(ctx context.Context, customerID string) (bool, error) {
				return true, nil
			},
		}
		sender := &mockEmailSender{}
		api := NewAPI(&mockDB{}, mockB, &mockCustomerSource{}, noopLogger, LOCAL, &mockAuthValidator{}, &mockCaptchaValidator{}, sender, testSettings)

		rec := httptest.NewRecorder()
		api.postRegister(rec, postRegisterRequest(t, validApplication()))

		require.Equal(t, http.StatusOK, rec.Code)

		var resp RegisterResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, string(wholesale.OUTCOME_APPROVED), resp.Outcome)
		assert.False(t, resp.AwaitingApproval)
		assert.Empty(t, sender.sent)
	})

	t.Run("no session token", func(t *testing.T) {
		mockB := &mockBackend{}
		api := NewAPI(&mockDB{}, mockB, &mockCustomerSource{}, noopLogger, LOCAL, &mockAuthValidator{}, &mockCaptchaValidator{}, &mockEmailSender{}, testSettings)

		req := postRegisterRequest(t, validApplication())
		req.Header.Del("Authorization")

		rec := httptest.NewRecorder()
		api.postRegister(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, AuthError, decodeError(t, rec).Code)
		assert.Equal(t, 0, mockB.registerCalls)
	})

	t.Run("captcha failure", func(t *testing.T) {
		mockB := &mockBackend{}
		mockCaptcha := &mockCaptchaValidator{
			ValidateFunc: func(ctx context.Context, token string, remoteIP string) (captcha.ValidatedData, error) {
				return nil, fmt.Errorf("captcha rejected")
			},
		}
		api := NewAPI(&mockDB{}, mockB, &mockCustomerSource{}, noopLogger, LOCAL, &mockAuthValidator{}, mockCaptcha, &mockEmailSender{}, testSettings)

		rec := httptest.NewRecorder()
		api.postRegister(rec, postRegisterRequest(t, validApplication()))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, CaptchaInvalid, decodeError(t, rec).Code)
		assert.Equal(t, 0, mockB.registerCalls)
	})

	t.Run("empty body", func(t *testing.T) {
		api := NewAPI(&mockDB{}, &mockBackend{}, &mockCustomerSource{}, noopLogger, LOCAL, &mockAuthValidator{}, &mockCaptchaValidator{}, &mockEmailSender{}, testSettings)

		req := httptest.NewRequest(http.MethodPost, "/register", nil)
		req.Header.Set("Authorization", "Bearer session-token")

		rec := httptest.NewRecorder()
		api.postRegister(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, EmptyBody, decodeError(t, rec).Code)
	})

	t.Run("validation failure never reaches the backend", func(t *testing.T) {
		mockB := &mockBackend{}
		api := NewAPI(&mockDB{}, mockB, &mockCustomerSource{}, noopLogger, LOCAL, &mockAuthValidator{}, &mockCaptchaValidator{}, &mockEmailSender{}, testSettings)

		app := validApplication()
		app.CountryCode = "XX"
		app.CompanyName = ""

		rec := httptest.NewRecorder()
		api.postRegister(rec, postRegisterRequest(t, app))

		require.Equal(t, http.StatusBadRequest, rec.Code)

		e := decodeError(t, rec)
		assert.Equal(t, ValidationFailed, e.Code)
		assert.Contains(t, e.FieldErrors, wholesale.FIELD_COUNTRY_CODE)
		assert.Contains(t, e.FieldErrors, wholesale.FIELD_COMPANY_NAME)
		assert.Equal(t, 0, mockB.registerCalls)
	})

	t.Run("missing customer identity", func(t *testing.T) {
		mockB := &mockBackend{}
		api := NewAPI(&mockDB{}, mockB, &mockCustomerSource{}, noopLogger, LOCAL, &mockAuthValidator{}, &mockCaptchaValidator{}, &mockEmailSender{}, testSettings)

		app := validApplication()
		app.CustomerID = ""

		rec := httptest.NewRecorder()
		api.postRegister(rec, postRegisterRequest(t, app))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, MissingCustomer, decodeError(t, rec).Code)
		assert.Equal(t, 0, mockB.registerCalls)
	})

	t.Run("backend rejection surfaces the backend's message", func(t *testing.T) {
		mockB := &mockBackend{
			RegisterFunc: func(ctx context.Context, values wholesale.RegistrationValues) (wholesale.SubmissionResult, error) {
				return wholesale.SubmissionResult{}, backend.NewRejectedByServerError(http.StatusBadRequest, "Tax ID already in use")
			},
		}
		api := NewAPI(&mockDB{}, mockB, &mockCustomerSource{}, noopLogger, LOCAL, &mockAuthValidator{}, &mockCaptchaValidator{}, &mockEmailSender{}, testSettings)

		rec := httptest.NewRecorder()
		api.postRegister(rec, postRegisterRequest(t, validApplication()))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		e := decodeError(t, rec)
		assert.Equal(t, BackendError, e.Code)
		assert.Equal(t, "Tax ID already in use", e.Message)
	})

	t.Run("backend still pending after all retries", func(t *testing.T) {
		mockB := &mockBackend{
			RegisterFunc: func(ctx context.Context, values wholesale.RegistrationValues) (wholesale.SubmissionResult, error) {
				return wholesale.SubmissionResult{}, backend.NewRetriesExhaustedError(10)
			},
		}
		api := NewAPI(&mockDB{}, mockB, &mockCustomerSource{}, noopLogger, LOCAL, &mockAuthValidator{}, &mockCaptchaValidator{}, &mockEmailSender{}, testSettings)

		rec := httptest.NewRecorder()
		api.postRegister(rec, postRegisterRequest(t, validApplication()))

		assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
		assert.Equal(t, BackendError, decodeError(t, rec).Code)
	})

	t.Run("record write failure does not fail the registration", func(t *testing.T) {
		mockStore := &mockDB{
			CreateSubmissionFunc: func(ctx context.Context, record wholesale.SubmissionRecord) error {
				return wholesale.NewFailedToWriteError("Failed PutItem call", fmt.Errorf("dynamo down"))
			},
		}
		api := NewAPI(mockStore, &mockBackend{}, &mockCustomerSource{}, noopLogger, LOCAL, &mockAuthValidator{}, &mockCaptchaValidator{}, &mockEmailSender{}, testSettings)

		rec := httptest.NewRecorder()
		api.postRegister(rec, postRegisterRequest(t, validApplication()))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
