// Package interfaces defines service contracts for Tenor
package interfaces

import (
	"context"

	"github.com/bobmcallan/tenor/internal/models"
)

// AuctionQuery holds the upstream filter parameters for an auction fetch.
type AuctionQuery struct {
	DaysBack     int
	SecurityType string
	SecurityTerm string
	PageSize     int
}

// TreasuryClient provides access to the US Treasury Fiscal Data API.
type TreasuryClient interface {
	// FetchAuctions retrieves auction results for the lookback window,
	// optionally filtered by security type and term. Records are returned
	// in upstream order (auction date descending) with all numeric fields
	// still string-typed.
	FetchAuctions(ctx context.Context, query AuctionQuery) ([]models.RawAuctionRecord, error)

	// FetchAvgInterestRates retrieves the latest average interest rates on
	// marketable Treasury securities.
	FetchAvgInterestRates(ctx context.Context, limit int) ([]models.TreasuryRate, error)
}

// YieldProxyClient supplies official constant-maturity yield observations
// used as the when-issued proxy for auction tails.
type YieldProxyClient interface {
	// FetchCMTYield returns the most recent constant-maturity yield for the
	// maturity term at or shortly before the auction date. It returns
	// (nil, nil) when no credential is configured, the term has no mapped
	// series, or no observation exists in the lookback window.
	FetchCMTYield(ctx context.Context, securityTerm, auctionDate string) (*float64, error)

	// Configured reports whether a credential is available. When false,
	// FetchCMTYield returns nil without a network call.
	Configured() bool
}

// FMPClient provides access to the Financial Modeling Prep API.
type FMPClient interface {
	// GetProfile retrieves a company profile snapshot for a ticker.
	GetProfile(ctx context.Context, symbol string) (*models.CompanyProfile, error)
}

// InternalStore persists system-level key-value settings (API keys, defaults).
type InternalStore interface {
	GetSystemKV(ctx context.Context, key string) (string, error)
	SetSystemKV(ctx context.Context, key, value string) error
	Close() error
}
