package models

import "time"

// Trend direction labels.
const (
	TrendImproving        = "improving"
	TrendDeteriorating    = "deteriorating"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient_data"
)

// Demand signal labels derived from the cross-sectional average GPA.
const (
	SignalStrong  = "strong"
	SignalHealthy = "healthy"
	SignalSoft    = "soft"
	SignalWeak    = "weak"
	SignalNeutral = "neutral"
)

// TrendSet holds per-metric trend directions plus the majority-vote overall
// label for one maturity term.
type TrendSet struct {
	TailBps     string `json:"tail_bps,omitempty"`
	BidToCover  string `json:"bid_to_cover,omitempty"`
	DealerPct   string `json:"dealer_pct,omitempty"`
	IndirectPct string `json:"indirect_pct,omitempty"`
	Overall     string `json:"overall"`
}

// GradedSummary summarizes the graded (note/bond) slice of a result set.
type GradedSummary struct {
	Count             int             `json:"count"`
	AvgGPA            float64         `json:"avg_gpa,omitempty"`
	GradeDistribution map[string]int  `json:"grade_distribution"`
	ByMaturity        []MaturityTrend `json:"by_maturity,omitempty"`
}

// MaturityTrend is the per-term breakdown inside an analysis result.
type MaturityTrend struct {
	Term         string   `json:"term"`
	AuctionCount int      `json:"auction_count"`
	AvgGPA       float64  `json:"avg_gpa"`
	LatestGrade  string   `json:"latest_grade"`
	LatestDate   string   `json:"latest_date"`
	Trends       TrendSet `json:"trends"`
}

// BillSummary summarizes the bill slice of an analysis result.
type BillSummary struct {
	Count         int      `json:"count"`
	AvgBidToCover *float64 `json:"avg_bid_to_cover"`
	CMBCount      int      `json:"cmb_count"`
}

// AuctionList is the result of the treasury_auctions operation.
type AuctionList struct {
	Count         int            `json:"count"`
	Period        string         `json:"period"`
	Auctions      []Auction      `json:"auctions"`
	GradedSummary *GradedSummary `json:"graded_summary,omitempty"`
	BillCount     int            `json:"bill_count,omitempty"`
	WISource      string         `json:"wi_source,omitempty"`
	Warnings      []string       `json:"_warnings,omitempty"`
}

// DemandAnalysis is the result of the auction_analysis operation.
type DemandAnalysis struct {
	Period        string           `json:"period"`
	TotalAuctions int              `json:"total_auctions"`
	DemandSignal  string           `json:"demand_signal"`
	NotesBonds    *GradedSummary   `json:"notes_bonds,omitempty"`
	Bills         *BillSummary     `json:"bills,omitempty"`
	RecentGraded  []*GradedAuction `json:"recent_graded,omitempty"`
	Warnings      []string         `json:"_warnings,omitempty"`
}

// TreasuryRate is one average-interest-rate observation from the Fiscal Data
// avg_interest_rates dataset.
type TreasuryRate struct {
	RecordDate   string  `json:"record_date"`
	SecurityDesc string  `json:"security_desc"`
	AvgRatePct   float64 `json:"avg_interest_rate_pct"`
}

// CompanyProfile is a thin company snapshot from FMP (profile + quote).
type CompanyProfile struct {
	Symbol      string  `json:"symbol"`
	CompanyName string  `json:"company_name"`
	Exchange    string  `json:"exchange"`
	Sector      string  `json:"sector"`
	Industry    string  `json:"industry"`
	MarketCap   float64 `json:"market_cap"`
	Price       float64 `json:"price"`
	Beta        float64 `json:"beta"`
	Description string  `json:"description"`
	Website     string  `json:"website"`
}

// SystemKeyValue is one system-level setting stored in the internal DB.
type SystemKeyValue struct {
	Key      string
	Value    string
	Version  int
	DateTime time.Time
}
