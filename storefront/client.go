package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopglass/wholesale-gate/customer"
)

// Client talks to the hosted storefront platform's REST API with a service
// credential. It is the platform-side collaborator of the access evaluator
// (customer lookups) and of the submission protocol (session tokens).
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ customer.Source = &Client{}

func NewClient(baseURL string, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type customerResponse struct {
	ID                  string `json:"id"`
	Email               string `json:"email"`
	MembershipGroupName string `json:"membershipGroupName"`
}

func (c *Client) GetCustomer(ctx context.Context, id string) (*customer.Customer, error) {
	var decoded customerResponse
	err := c.getJSON(ctx, "/api/v1/customers/"+url.PathEscape(id), &decoded)
	if err != nil {
		var statusErr *platformStatusError
		if errors.As(err, &statusErr) && statusErr.statusCode == http.StatusNotFound {
			return nil, customer.NewCustomerDoesNotExistError(fmt.Sprintf("No customer with ID %q", id), err)
		}
		return nil, customer.NewFailedToFetchError(fmt.Sprintf("Failed to fetch customer %q", id), err)
	}

	return &customer.Customer{
		ID:              decoded.ID,
		Email:           decoded.Email,
		MembershipGroup: decoded.MembershipGroupName,
	}, nil
}

// GetToken exchanges the service credential for a short-lived session token
// the registration backend accepts as a bearer credential.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	var decoded struct {
		Token string `json:"token"`
	}
	err := c.getJSON(ctx, "/api/v1/session/token", &decoded)
	if err != nil {
		return "", err
	}
	if decoded.Token == "" {
		return "", fmt.Errorf("platform returned an empty session token")
	}

	return decoded.Token, nil
}

type platformStatusError struct {
	statusCode int
}

func (e *platformStatusError) Error() string {
	return fmt.Sprintf("storefront platform returned HTTP %d", e.statusCode)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return &platformStatusError{statusCode: resp.StatusCode}
	}

	return json.Unmarshal(body, out)
}
