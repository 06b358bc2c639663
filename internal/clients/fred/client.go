// Package fred provides a client for the FRED series observations API,
// used to fetch constant-maturity Treasury (CMT) yields as the when-issued
// proxy for auction tails. The client is optional: without an API key every
// fetch returns nil and callers fall back to the auction's own median yield.
package fred

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/bobmcallan/tenor/internal/common"
	"github.com/bobmcallan/tenor/internal/interfaces"
)

const (
	DefaultBaseURL = "https://api.stlouisfed.org"
	DefaultTimeout = 15 * time.Second

	observationsPath = "/fred/series/observations"

	// lookbackDays is how far back from the auction date to search for the
	// most recent CMT observation (weekends and holidays have no prints).
	lookbackDays = 7
)

// cmtSeries maps a security_term keyword to its FRED CMT series ID.
// Matching is by containment so terms like "9-Year 10-Month" resolve.
var cmtSeries = map[string]string{
	"2-Year":  "DGS2",
	"3-Year":  "DGS3",
	"5-Year":  "DGS5",
	"7-Year":  "DGS7",
	"10-Year": "DGS10",
	"20-Year": "DGS20",
	"30-Year": "DGS30",
}

// Client implements the YieldProxyClient interface.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger

	mu    sync.Mutex
	cache map[string]cachedYield
}

type cachedYield struct {
	storedAt time.Time
	value    float64
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

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new FRED client. An empty apiKey yields an
// unconfigured client whose fetches return nil immediately.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	retry := retryablehttp.NewClient()
	retry.RetryMax = 2
	retry.Logger = nil

	httpClient := retry.StandardClient()
	httpClient.Timeout = DefaultTimeout

	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     common.NewSilentLogger(),
		cache:      make(map[string]cachedYield),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Configured reports whether a FRED API key is available.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// seriesForTerm maps a security_term to a FRED CMT series ID, or "".
func seriesForTerm(securityTerm string) string {
	for keyword, series := range cmtSeries {
		if strings.Contains(securityTerm, keyword) {
			return series
		}
	}
	return ""
}

type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// FetchCMTYield returns the most recent CMT yield for the maturity term at
// or up to seven days before the auction date. Any failure degrades to a nil
// yield rather than an error; tails then fall back to the median yield.
func (c *Client) FetchCMTYield(ctx context.Context, securityTerm, auctionDate string) (*float64, error) {
	if c.apiKey == "" {
		return nil, nil
	}

	seriesID := seriesForTerm(securityTerm)
	if seriesID == "" {
		return nil, nil
	}

	key := seriesID + ":" + auctionDate
	c.mu.Lock()
	if cached, ok := c.cache[key]; ok && time.Since(cached.storedAt) < common.TTLDaily {
		c.mu.Unlock()
		v := cached.value
		return &v, nil
	}
	c.mu.Unlock()

	obsDate, err := time.Parse("2006-01-02", auctionDate)
	if err != nil {
		return nil, nil
	}
	start := obsDate.AddDate(0, 0, -lookbackDays).Format("2006-01-02")

	params := url.Values{}
	params.Set("series_id", seriesID)
	params.Set("api_key", c.apiKey)
	params.Set("file_type", "json")
	params.Set("observation_start", start)
	params.Set("observation_end", auctionDate)
	params.Set("sort_order", "desc")
	params.Set("limit", "5")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, observationsPath, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, nil
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("series", seriesID).Msg("FRED request failed")
		return nil, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		c.logger.Debug().Int("status", resp.StatusCode).Str("series", seriesID).Msg("FRED response unusable")
		return nil, nil
	}

	var obs observationsResponse
	if err := json.Unmarshal(body, &obs); err != nil {
		return nil, nil
	}

	// FRED reports missing observations as ".".
	for _, o := range obs.Observations {
		val := strings.TrimSpace(o.Value)
		if val == "" || val == "." {
			continue
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			continue
		}
		c.mu.Lock()
		c.cache[key] = cachedYield{storedAt: time.Now(), value: f}
		c.mu.Unlock()
		return &f, nil
	}

	return nil, nil
}

// Ensure Client implements YieldProxyClient
var _ interfaces.YieldProxyClient = (*Client)(nil)
