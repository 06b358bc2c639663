package fmp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/profile", r.URL.Path)
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		assert.Equal(t, "testkey", r.URL.Query().Get("apikey"))

		fmt.Fprint(w, `[{
			"symbol": "AAPL",
			"companyName": "Apple Inc.",
			"exchange": "NASDAQ",
			"sector": "Technology",
			"industry": "Consumer Electronics",
			"marketCap": 3400000000000,
			"price": 228.5,
			"beta": 1.24,
			"website": "https://www.apple.com"
		}]`)
	}))
	defer srv.Close()

	client := NewClient("testkey", WithBaseURL(srv.URL))

	profile, err := client.GetProfile(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Equal(t, "AAPL", profile.Symbol)
	assert.Equal(t, "Apple Inc.", profile.CompanyName)
	assert.Equal(t, "Technology", profile.Sector)
	assert.InDelta(t, 228.5, profile.Price, 0.001)
}

func TestGetProfileNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	client := NewClient("testkey", WithBaseURL(srv.URL))

	_, err := client.GetProfile(context.Background(), "NOPE")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no profile found")
}

func TestGetProfileAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient("badkey", WithBaseURL(srv.URL))

	_, err := client.GetProfile(context.Background(), "AAPL")

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}
