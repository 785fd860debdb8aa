package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopglass/wholesale-gate/wholesale"
)

// TokenProvider hands out the bearer credential for the registration
// backend. It is a collaborator of the whole submit operation: if it cannot
// produce a token, the submission fails before anything is sent.
type TokenProvider interface {
	GetToken(ctx context.Context) (string, error)
}

// StaticTokenProvider hands out the same token on every call, for tools and
// local development.
type StaticTokenProvider string

func (s StaticTokenProvider) GetToken(ctx context.Context) (string, error) {
	return string(s), nil
}

type RetryConfig struct {
	// MaxAttempts bounds the accepted-retry-later loop. The hosted script
	// this replaces would resubmit forever; a misbehaving backend now
	// yields a terminal error instead.
	MaxAttempts int
	// DefaultWait applies when a 202 carries no Retry-After header.
	DefaultWait time.Duration
	// MaxWait caps whatever Retry-After the server asks for.
	MaxWait time.Duration
}

// Client submits wholesale applications to the external registration
// backend. One Register call is one logical submission: the idempotency key
// is generated once and reused verbatim across every retry-later round.
type Client struct {
	baseURL    string
	storeID    string
	lang       string
	httpClient *http.Client
	tokens     TokenProvider
	retry      RetryConfig

	// test seams
	sleep  func(ctx context.Context, d time.Duration) error
	newKey func() string
}

var _ wholesale.Submitter = &Client{}
var _ wholesale.ApprovalChecker = &Client{}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithRetry(cfg RetryConfig) Option {
	return func(c *Client) { c.retry = cfg }
}

func WithLanguage(lang string) Option {
	return func(c *Client) { c.lang = lang }
}

func NewClient(baseURL string, storeID string, tokens TokenProvider, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		storeID:    storeID,
		lang:       "en",
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     tokens,
		retry:      RetryConfig{MaxAttempts: 10, DefaultWait: 2 * time.Second, MaxWait: 30 * time.Second},
		sleep:      sleepContext,
		newKey:     uuid.NewString,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.retry.MaxAttempts < 1 {
		c.retry.MaxAttempts = 1
	}
	if c.retry.DefaultWait <= 0 {
		c.retry.DefaultWait = 2 * time.Second
	}
	if c.retry.MaxWait <= 0 {
		c.retry.MaxWait = 30 * time.Second
	}

	return c
}

type registerRequest struct {
	StoreID string         `json:"storeId"`
	Lang    string         `json:"lang"`
	Values  registerValues `json:"values"`
}

type registerValues struct {
	Name            string `json:"name"`
	CompanyName     string `json:"companyName"`
	PostalCode      string `json:"postalCode"`
	CountryCode     string `json:"countryCode"`
	Phone           string `json:"phone"`
	CellPhone       string `json:"cellPhone,omitempty"`
	TaxID           string `json:"taxId,omitempty"`
	Hear            string `json:"hear,omitempty"`
	AcceptMarketing bool   `json:"acceptMarketing"`
}

type registerResponse struct {
	Status     string `json:"status"`
	CustomerID int64  `json:"customerId"`
	GroupID    *int64 `json:"groupId"`
}

type errorResponse struct {
	ErrorMessage string `json:"errorMessage"`
}

// Register sends one application. A 202 means "accepted, retry later": the
// client waits the server-directed duration and resubmits the same payload
// under the same idempotency key, strictly sequentially, until a terminal
// response arrives or the attempt budget runs out. Any other non-2xx status
// is terminal and never retried.
func (c *Client) Register(ctx context.Context, values wholesale.RegistrationValues) (wholesale.SubmissionResult, error) {
	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return wholesale.SubmissionResult{}, NewTokenUnavailableError("Could not obtain a session token for the registration backend", err)
	}

	key := c.newKey()

	body, err := json.Marshal(registerRequest{
		StoreID: c.storeID,
		Lang:    c.lang,
		Values: registerValues{
			Name:            values.Name,
			CompanyName:     values.CompanyName,
			PostalCode:      values.PostalCode,
			CountryCode:     values.CountryCode,
			Phone:           values.Phone,
			CellPhone:       values.CellPhone,
			TaxID:           values.TaxID,
			Hear:            values.HearAbout,
			AcceptMarketing: values.AcceptMarketing,
		},
	})
	if err != nil {
		return wholesale.SubmissionResult{}, NewInvalidResponseError("Failed to encode registration payload", err)
	}

	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/register", bytes.NewReader(body))
		if err != nil {
			return wholesale.SubmissionResult{}, NewRequestFailedError("Failed to build registration request", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Idempotency-Key", key)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return wholesale.SubmissionResult{}, NewRequestFailedError("Registration request did not complete", err)
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return wholesale.SubmissionResult{}, NewRequestFailedError("Failed to read registration response", err)
		}

		switch {
		case resp.StatusCode == http.StatusAccepted:
			wait := c.retryWait(resp.Header.Get("Retry-After"))
			if err := c.sleep(ctx, wait); err != nil {
				return wholesale.SubmissionResult{}, NewCanceledError("Submission cancelled while waiting to resubmit", err)
			}

		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			var decoded registerResponse
			if err := json.Unmarshal(respBody, &decoded); err != nil {
				return wholesale.SubmissionResult{}, NewInvalidResponseError("Registration backend returned a malformed body", err)
			}
			return wholesale.SubmissionResult{
				Status:         decoded.Status,
				CustomerID:     decoded.CustomerID,
				GroupID:        decoded.GroupID,
				IdempotencyKey: key,
			}, nil

		default:
			return wholesale.SubmissionResult{}, NewRejectedByServerError(resp.StatusCode, serverErrorMessage(resp.StatusCode, respBody))
		}
	}

	return wholesale.SubmissionResult{}, NewRetriesExhaustedError(c.retry.MaxAttempts)
}

// ApprovalStatus asks the backend whether the customer's application has
// been approved. Callers treat any error as "not approved".
func (c *Client) ApprovalStatus(ctx context.Context, customerID string) (bool, error) {
	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return false, NewTokenUnavailableError("Could not obtain a session token for the registration backend", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/approval/"+url.PathEscape(customerID), nil)
	if err != nil {
		return false, NewRequestFailedError("Failed to build approval status request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, NewRequestFailedError("Approval status request did not complete", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, NewRequestFailedError("Failed to read approval status response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return false, NewRejectedByServerError(resp.StatusCode, serverErrorMessage(resp.StatusCode, respBody))
	}

	var decoded struct {
		IsApproved bool `json:"isApproved"`
	}
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return false, NewInvalidResponseError("Approval status response is malformed", err)
	}

	return decoded.IsApproved, nil
}

func (c *Client) retryWait(retryAfter string) time.Duration {
	wait := c.retry.DefaultWait

	if s := strings.TrimSpace(retryAfter); s != "" {
		if secs, err := strconv.Atoi(s); err == nil && secs >= 0 {
			wait = time.Duration(secs) * time.Second
		}
	}

	if wait > c.retry.MaxWait {
		wait = c.retry.MaxWait
	}

	return wait
}

func serverErrorMessage(statusCode int, body []byte) string {
	var decoded errorResponse
	if err := json.Unmarshal(body, &decoded); err == nil && decoded.ErrorMessage != "" {
		return decoded.ErrorMessage
	}

	return fmt.Sprintf("HTTP %d", statusCode)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
