package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/International-Combat-Archery-Alliance/auth"
)

// SessionValidator checks a visitor's storefront session token against the
// platform and exposes it through the shared auth interfaces.
type SessionValidator struct {
	baseURL    string
	httpClient *http.Client
}

var _ auth.Validator = &SessionValidator{}

func NewSessionValidator(baseURL string) *SessionValidator {
	return &SessionValidator{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type sessionResponse struct {
	CustomerID string    `json:"customerId"`
	Email      string    `json:"email"`
	Admin      bool      `json:"admin"`
	ProfilePic string    `json:"profilePicUrl"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

type sessionToken struct {
	session sessionResponse
}

func (t *sessionToken) ExpiresAt() time.Time  { return t.session.ExpiresAt }
func (t *sessionToken) ProfilePicURL() string { return t.session.ProfilePic }
func (t *sessionToken) IsAdmin() bool         { return t.session.Admin }
func (t *sessionToken) UserEmail() string     { return t.session.Email }

// Roles satisfies auth.AuthToken; storefront sessions don't carry roles.
func (t *sessionToken) Roles() []auth.Role { return nil }

// CustomerID is the platform customer behind the session. Not part of the
// auth.AuthToken interface; callers type-assert when they need it.
func (t *sessionToken) CustomerID() string { return t.session.CustomerID }

func (v *SessionValidator) Validate(ctx context.Context, token string, clientID string) (auth.AuthToken, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/api/v1/session?storeId="+clientID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("session validation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read session validation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("session token rejected by platform: HTTP %d", resp.StatusCode)
	}

	var session sessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("malformed session validation response: %w", err)
	}

	if !session.ExpiresAt.IsZero() && session.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("session token is expired")
	}

	return &sessionToken{session: session}, nil
}
