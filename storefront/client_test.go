package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopglass/wholesale-gate/customer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCustomer(t *testing.T) {
	t.Run("maps the platform record", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/customers/c-42", r.URL.Path)
			assert.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]string{
				"id":                  "c-42",
				"email":               "a@b.com",
				"membershipGroupName": "Wholesaler",
			})
		}))
		defer server.Close()

		client := NewClient(server.URL, "key-1")

		cust, err := client.GetCustomer(context.Background(), "c-42")
		require.NoError(t, err)
		assert.Equal(t, &customer.Customer{ID: "c-42", Email: "a@b.com", MembershipGroup: "Wholesaler"}, cust)
	})

	t.Run("404 becomes a does-not-exist error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := NewClient(server.URL, "key-1")

		_, err := client.GetCustomer(context.Background(), "c-42")

		var custErr *customer.Error
		require.True(t, errors.As(err, &custErr))
		assert.Equal(t, customer.REASON_CUSTOMER_DOES_NOT_EXIST, custErr.Reason)
	})

	t.Run("5xx becomes a failed-to-fetch error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(server.URL, "key-1")

		_, err := client.GetCustomer(context.Background(), "c-42")

		var custErr *customer.Error
		require.True(t, errors.As(err, &custErr))
		assert.Equal(t, customer.REASON_FAILED_TO_FETCH, custErr.Reason)
	})
}

func TestGetToken(t *testing.T) {
	t.Run("returns the session token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/session/token", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-9"})
		}))
		defer server.Close()

		client := NewClient(server.URL, "key-1")

		token, err := client.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "tok-9", token)
	})

	t.Run("empty token is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{})
		}))
		defer server.Close()

		client := NewClient(server.URL, "key-1")

		_, err := client.GetToken(context.Background())
		assert.Error(t, err)
	})
}

func TestSessionValidator(t *testing.T) {
	t.Run("valid session produces a token with the customer behind it", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer visitor-tok", r.Header.Get("Authorization"))
			assert.Equal(t, "store-1", r.URL.Query().Get("storeId"))
			json.NewEncoder(w).Encode(map[string]any{
				"customerId": "c-42",
				"email":      "a@b.com",
			})
		}))
		defer server.Close()

		validator := NewSessionValidator(server.URL)

		token, err := validator.Validate(context.Background(), "visitor-tok", "store-1")
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", token.UserEmail())

		withCustomer, ok := token.(interface{ CustomerID() string })
		require.True(t, ok)
		assert.Equal(t, "c-42", withCustomer.CustomerID())
	})

	t.Run("rejected session is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		validator := NewSessionValidator(server.URL)

		_, err := validator.Validate(context.Background(), "bad-tok", "store-1")
		assert.Error(t, err)
	})
}

func TestTurnstileValidator(t *testing.T) {
	t.Run("successful verification returns the challenge data", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "secret-1", r.PostForm.Get("secret"))
			assert.Equal(t, "cf-token", r.PostForm.Get("response"))
			json.NewEncoder(w).Encode(map[string]any{
				"success":  true,
				"hostname": "shop.example.com",
			})
		}))
		defer server.Close()

		validator := NewTurnstileValidator("secret-1")
		validator.verifyURL = server.URL

		data, err := validator.Validate(context.Background(), "cf-token", "198.51.100.7")
		require.NoError(t, err)
		assert.Equal(t, "shop.example.com", data.Hostname())
	})

	t.Run("failed verification is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"success":     false,
				"error-codes": []string{"invalid-input-response"},
			})
		}))
		defer server.Close()

		validator := NewTurnstileValidator("secret-1")
		validator.verifyURL = server.URL

		_, err := validator.Validate(context.Background(), "bad", "")
		assert.ErrorContains(t, err, "invalid-input-response")
	})
}
