package interfaces

import (
	"context"

	"github.com/bobmcallan/tenor/internal/models"
)

// ListOptions are the parameters of the treasury_auctions operation.
// DaysBack is clamped to [1,365] (default 30) and Limit to [1,100]
// (default 20) by the service.
type ListOptions struct {
	SecurityType string
	SecurityTerm string
	DaysBack     int
	Limit        int
}

// AnalysisOptions are the parameters of the auction_analysis operation.
// DaysBack is clamped to [1,365] (default 90) by the service.
type AnalysisOptions struct {
	SecurityTerm string
	DaysBack     int
}

// AuctionService composes fetching, grading, and trend analysis of Treasury
// auctions. Both operations degrade to empty-but-valid results with warnings
// rather than returning upstream errors.
type AuctionService interface {
	// ListAuctions returns recent settled auctions with demand metrics and,
	// for notes/bonds, grades.
	ListAuctions(ctx context.Context, opts ListOptions) (*models.AuctionList, error)

	// AnalyzeDemand grades the auction history and classifies per-maturity
	// and overall demand trends.
	AnalyzeDemand(ctx context.Context, opts AnalysisOptions) (*models.DemandAnalysis, error)
}
