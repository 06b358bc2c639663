// Package treasury provides a client for the US Treasury Fiscal Data API.
// The API is free and requires no credential; every numeric field in its
// responses is delivered as a string.
package treasury

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/bobmcallan/tenor/internal/common"
	"github.com/bobmcallan/tenor/internal/interfaces"
	"github.com/bobmcallan/tenor/internal/models"
)

const (
	DefaultBaseURL   = "https://api.fiscaldata.treasury.gov"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second

	auctionsPath = "/services/api/fiscal_service/v1/accounting/od/auctions_query"
	avgRatesPath = "/services/api/fiscal_service/v2/accounting/od/avg_interest_rates"

	defaultPageSize = 100

	// maxAuctionPages bounds pagination regardless of what the upstream
	// total-pages metadata claims.
	maxAuctionPages = 10
)

// auctionFields is the field projection requested from the auctions dataset.
var auctionFields = strings.Join([]string{
	"cusip", "security_type", "security_term",
	"auction_date", "issue_date",
	"high_yield", "high_discnt_rate", "high_investment_rate",
	"avg_med_yield", "bid_to_cover_ratio",
	"offering_amt", "total_tendered", "total_accepted",
	"direct_bidder_accepted", "indirect_bidder_accepted",
	"primary_dealer_accepted", "comp_accepted", "noncomp_accepted",
	"soma_accepted",
	"cash_management_bill_cmb",
}, ",")

// Client implements the TreasuryClient interface.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
	cache      *ttlCache
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Fiscal Data API client.
func NewClient(opts ...ClientOption) *Client {
	retry := retryablehttp.NewClient()
	retry.RetryMax = 2
	retry.Logger = nil

	httpClient := retry.StandardClient()
	httpClient.Timeout = DefaultTimeout

	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:     common.NewSilentLogger(),
		cache:      newTTLCache(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a Fiscal Data API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Fiscal Data API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited, cached GET request and decodes into result.
func (c *Client) get(ctx context.Context, path string, params map[string]string, ttl time.Duration, result interface{}) error {
	key := cacheKey(path, params)

	if body, ok := c.cache.get(key); ok {
		return json.Unmarshal(body, result)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Fiscal Data API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	c.cache.set(key, body, ttl)

	return nil
}

// pagedResponse is the Fiscal Data envelope shared by all datasets.
type pagedResponse struct {
	Data []json.RawMessage `json:"data"`
	Meta struct {
		TotalCount int `json:"total-count"`
		TotalPages int `json:"total-pages"`
	} `json:"meta"`
}

// FetchAuctions retrieves auction results for the lookback window, newest
// first. Pagination stops at maxAuctionPages even when upstream metadata
// claims more pages exist.
func (c *Client) FetchAuctions(ctx context.Context, query interfaces.AuctionQuery) ([]models.RawAuctionRecord, error) {
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	since := time.Now().AddDate(0, 0, -query.DaysBack).Format("2006-01-02")

	filters := []string{"auction_date:gte:" + since}
	if query.SecurityType != "" {
		filters = append(filters, "security_type:eq:"+query.SecurityType)
	}
	if query.SecurityTerm != "" {
		filters = append(filters, "security_term:eq:"+query.SecurityTerm)
	}

	var all []models.RawAuctionRecord

	for page := 1; page <= maxAuctionPages; page++ {
		params := map[string]string{
			"fields":       auctionFields,
			"filter":       strings.Join(filters, ","),
			"sort":         "-auction_date",
			"page[size]":   strconv.Itoa(pageSize),
			"page[number]": strconv.Itoa(page),
			"format":       "json",
		}

		var resp pagedResponse
		if err := c.get(ctx, auctionsPath, params, common.TTLHourly, &resp); err != nil {
			return nil, err
		}

		for _, raw := range resp.Data {
			var rec models.RawAuctionRecord
			if err := json.Unmarshal(raw, &rec); err != nil {
				continue
			}
			all = append(all, rec)
		}

		if page >= resp.Meta.TotalPages {
			break
		}
	}

	c.logger.Debug().Int("records", len(all)).Int("days_back", query.DaysBack).Msg("Fetched auctions")

	return all, nil
}

// avgRateRecord is one row of the avg_interest_rates dataset.
type avgRateRecord struct {
	RecordDate   string `json:"record_date"`
	SecurityDesc string `json:"security_desc"`
	AvgRate      string `json:"avg_interest_rate_amt"`
}

// FetchAvgInterestRates retrieves the latest average interest rates on
// marketable Treasury securities, newest first.
func (c *Client) FetchAvgInterestRates(ctx context.Context, limit int) ([]models.TreasuryRate, error) {
	if limit <= 0 || limit > defaultPageSize {
		limit = 20
	}

	params := map[string]string{
		"fields":       "record_date,security_desc,avg_interest_rate_amt",
		"filter":       "security_type_desc:eq:Marketable",
		"sort":         "-record_date",
		"page[size]":   strconv.Itoa(limit),
		"page[number]": "1",
		"format":       "json",
	}

	var resp pagedResponse
	if err := c.get(ctx, avgRatesPath, params, common.TTLDaily, &resp); err != nil {
		return nil, err
	}

	rates := make([]models.TreasuryRate, 0, len(resp.Data))
	for _, raw := range resp.Data {
		var rec avgRateRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		pct, err := strconv.ParseFloat(strings.TrimSpace(rec.AvgRate), 64)
		if err != nil {
			continue
		}
		rates = append(rates, models.TreasuryRate{
			RecordDate:   rec.RecordDate,
			SecurityDesc: rec.SecurityDesc,
			AvgRatePct:   pct,
		})
	}

	return rates, nil
}

// Ensure Client implements TreasuryClient
var _ interfaces.TreasuryClient = (*Client)(nil)
