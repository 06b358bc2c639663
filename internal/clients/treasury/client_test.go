package treasury

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/tenor/internal/interfaces"
)

func auctionRow(cusip string) string {
	return fmt.Sprintf(`{
		"cusip": %q,
		"security_type": "Note",
		"security_term": "10-Year",
		"auction_date": "2026-08-12",
		"high_yield": "4.320",
		"bid_to_cover_ratio": "2.58"
	}`, cusip)
}

func pagedBody(rows []string, totalPages int) string {
	return fmt.Sprintf(`{"data":[%s],"meta":{"total-count":%d,"total-pages":%d}}`,
		strings.Join(rows, ","), len(rows), totalPages)
}

func TestFetchAuctions(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)

		assert.Contains(t, r.URL.Path, "auctions_query")
		filter := r.URL.Query().Get("filter")
		assert.Contains(t, filter, "auction_date:gte:")
		assert.Contains(t, filter, "security_type:eq:Note")
		assert.Equal(t, "-auction_date", r.URL.Query().Get("sort"))

		fmt.Fprint(w, pagedBody([]string{auctionRow("91282CJK8"), auctionRow("91282CJL6")}, 1))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	records, err := client.FetchAuctions(context.Background(), interfaces.AuctionQuery{
		DaysBack:     30,
		SecurityType: "Note",
	})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "91282CJK8", records[0].CUSIP)
	assert.Equal(t, "4.320", records[0].HighYield)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestFetchAuctionsPaginationCap(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&requests, 1)
		// Upstream always claims more pages exist.
		fmt.Fprint(w, pagedBody([]string{auctionRow(fmt.Sprintf("CUSIP%04d", n))}, 9999))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	records, err := client.FetchAuctions(context.Background(), interfaces.AuctionQuery{DaysBack: 30})

	require.NoError(t, err)
	assert.Len(t, records, maxAuctionPages)
	assert.Equal(t, int32(maxAuctionPages), atomic.LoadInt32(&requests))
}

func TestFetchAuctionsCachesResponses(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		fmt.Fprint(w, pagedBody([]string{auctionRow("91282CJK8")}, 1))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	query := interfaces.AuctionQuery{DaysBack: 30}

	_, err := client.FetchAuctions(context.Background(), query)
	require.NoError(t, err)
	_, err = client.FetchAuctions(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestFetchAuctionsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad filter", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	_, err := client.FetchAuctions(context.Background(), interfaces.AuctionQuery{DaysBack: 30})

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestFetchAvgInterestRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "avg_interest_rates")
		assert.Equal(t, "security_type_desc:eq:Marketable", r.URL.Query().Get("filter"))

		fmt.Fprint(w, `{"data":[
			{"record_date":"2026-07-31","security_desc":"Treasury Notes","avg_interest_rate_amt":"2.961"},
			{"record_date":"2026-07-31","security_desc":"Treasury Bonds","avg_interest_rate_amt":"3.215"},
			{"record_date":"2026-07-31","security_desc":"Broken","avg_interest_rate_amt":"null"}
		],"meta":{"total-count":3,"total-pages":1}}`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	rates, err := client.FetchAvgInterestRates(context.Background(), 20)

	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, "Treasury Notes", rates[0].SecurityDesc)
	assert.InDelta(t, 2.961, rates[0].AvgRatePct, 0.001)
}

func TestCacheKeyDeterministic(t *testing.T) {
	a := cacheKey("/path", map[string]string{"b": "2", "a": "1"})
	b := cacheKey("/path", map[string]string{"a": "1", "b": "2"})
	assert.Equal(t, a, b)
	assert.Equal(t, "/path?a=1&b=2", a)
}

func TestTTLCacheExpiry(t *testing.T) {
	cache := newTTLCache()

	cache.set("k", []byte("v"), 0)
	_, ok := cache.get("k")
	assert.False(t, ok, "non-positive ttl disables caching")

	cache.set("k", []byte("v"), -1)
	_, ok = cache.get("k")
	assert.False(t, ok)
}
