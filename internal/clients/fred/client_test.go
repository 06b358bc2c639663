package fred

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesForTerm(t *testing.T) {
	tests := []struct {
		term     string
		expected string
	}{
		{"10-Year", "DGS10"},
		{"2-Year", "DGS2"},
		{"30-Year", "DGS30"},
		{"9-Year 10-Month", "DGS10"},
		{"29-Year 10-Month", "DGS10"},
		{"13-Week", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.expected, seriesForTerm(tt.term))
		})
	}
}

func TestFetchCMTYieldUnconfigured(t *testing.T) {
	client := NewClient("")

	assert.False(t, client.Configured())

	yield, err := client.FetchCMTYield(context.Background(), "10-Year", "2026-08-12")
	require.NoError(t, err)
	assert.Nil(t, yield)
}

func TestFetchCMTYieldUnmappedTerm(t *testing.T) {
	client := NewClient("testkey")

	yield, err := client.FetchCMTYield(context.Background(), "13-Week", "2026-08-12")
	require.NoError(t, err)
	assert.Nil(t, yield)
}

func TestFetchCMTYieldBadDate(t *testing.T) {
	client := NewClient("testkey")

	yield, err := client.FetchCMTYield(context.Background(), "10-Year", "not-a-date")
	require.NoError(t, err)
	assert.Nil(t, yield)
}

func TestFetchCMTYield(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DGS10", r.URL.Query().Get("series_id"))
		assert.Equal(t, "2026-08-12", r.URL.Query().Get("observation_end"))
		assert.Equal(t, "2026-08-05", r.URL.Query().Get("observation_start"))
		assert.Equal(t, "desc", r.URL.Query().Get("sort_order"))

		// Newest observation missing; the next one should be used.
		fmt.Fprint(w, `{"observations":[
			{"date":"2026-08-12","value":"."},
			{"date":"2026-08-11","value":"4.30"},
			{"date":"2026-08-10","value":"4.28"}
		]}`)
	}))
	defer srv.Close()

	client := NewClient("testkey", WithBaseURL(srv.URL))

	yield, err := client.FetchCMTYield(context.Background(), "10-Year", "2026-08-12")

	require.NoError(t, err)
	require.NotNil(t, yield)
	assert.InDelta(t, 4.30, *yield, 0.001)
}

func TestFetchCMTYieldAllMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"observations":[{"date":"2026-08-12","value":"."}]}`)
	}))
	defer srv.Close()

	client := NewClient("testkey", WithBaseURL(srv.URL))

	yield, err := client.FetchCMTYield(context.Background(), "10-Year", "2026-08-12")

	require.NoError(t, err)
	assert.Nil(t, yield)
}

func TestFetchCMTYieldServerErrorDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient("badkey", WithBaseURL(srv.URL))

	yield, err := client.FetchCMTYield(context.Background(), "10-Year", "2026-08-12")

	require.NoError(t, err)
	assert.Nil(t, yield)
}

func TestFetchCMTYieldCaches(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		fmt.Fprint(w, `{"observations":[{"date":"2026-08-12","value":"4.30"}]}`)
	}))
	defer srv.Close()

	client := NewClient("testkey", WithBaseURL(srv.URL))

	_, err := client.FetchCMTYield(context.Background(), "10-Year", "2026-08-12")
	require.NoError(t, err)
	yield, err := client.FetchCMTYield(context.Background(), "10-Year", "2026-08-12")
	require.NoError(t, err)

	require.NotNil(t, yield)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}
