// Package models defines the data types exchanged between Tenor's clients,
// services, and tool handlers.
package models

// Security types the Fiscal Data auctions dataset reports.
const (
	SecurityTypeNote = "Note"
	SecurityTypeBond = "Bond"
	SecurityTypeBill = "Bill"
	SecurityTypeTIPS = "TIPS"
	SecurityTypeFRN  = "FRN"
)

// GradeableType reports whether auctions of the given security type receive
// a demand grade. Bills are never graded; they clear on discount rate.
func GradeableType(securityType string) bool {
	switch securityType {
	case SecurityTypeNote, SecurityTypeBond, SecurityTypeTIPS, SecurityTypeFRN:
		return true
	}
	return false
}

// RawAuctionRecord is one auction row exactly as the Fiscal Data API delivers
// it. Every numeric field arrives as a string and may be empty, "null", or
// absent. Nothing outside the auction service's normalization boundary should
// do arithmetic on these fields.
type RawAuctionRecord struct {
	CUSIP                  string `json:"cusip"`
	SecurityType           string `json:"security_type"`
	SecurityTerm           string `json:"security_term"`
	AuctionDate            string `json:"auction_date"`
	IssueDate              string `json:"issue_date"`
	HighYield              string `json:"high_yield"`
	AvgMedYield            string `json:"avg_med_yield"`
	HighDiscountRate       string `json:"high_discnt_rate"`
	HighInvestmentRate     string `json:"high_investment_rate"`
	BidToCoverRatio        string `json:"bid_to_cover_ratio"`
	OfferingAmt            string `json:"offering_amt"`
	TotalTendered          string `json:"total_tendered"`
	TotalAccepted          string `json:"total_accepted"`
	CompAccepted           string `json:"comp_accepted"`
	NoncompAccepted        string `json:"noncomp_accepted"`
	DirectBidderAccepted   string `json:"direct_bidder_accepted"`
	IndirectBidderAccepted string `json:"indirect_bidder_accepted"`
	PrimaryDealerAccepted  string `json:"primary_dealer_accepted"`
	SomaAccepted           string `json:"soma_accepted"`
	CashManagementBill     string `json:"cash_management_bill_cmb"`
}

// WI proxy source labels.
const (
	WISourceFREDCMT     = "fred_cmt"
	WISourceAvgMedYield = "avg_med_yield"
)

// DemandMetrics holds derived demand measures for one auction. Fields are nil
// when the inputs needed to compute them were missing; WISource is non-empty
// exactly when TailBps is non-nil.
type DemandMetrics struct {
	TailBps     *float64
	WISource    string
	BidToCover  *float64
	DealerPct   *float64
	IndirectPct *float64
	DirectPct   *float64
}

// Grade is the weighted demand grade for a note/bond/TIPS/FRN auction.
// MetricGrades values are letter grades or "N/A" when a metric was missing;
// only non-"N/A" metrics contribute to the GPA.
type Grade struct {
	CompositeGrade string            `json:"composite_grade"`
	GPA            float64           `json:"gpa"`
	MetricGrades   map[string]string `json:"metric_grades"`
}

// AuctionCore carries the identity and demand fields common to every
// formatted auction, regardless of security type.
type AuctionCore struct {
	CUSIP        string `json:"cusip"`
	SecurityType string `json:"security_type"`
	SecurityTerm string `json:"security_term"`
	AuctionDate  string `json:"auction_date"`
	IssueDate    string `json:"issue_date"`

	OfferingAmt *float64 `json:"offering_amt"`
	BidToCover  *float64 `json:"bid_to_cover"`
	DealerPct   *float64 `json:"dealer_pct"`
	IndirectPct *float64 `json:"indirect_pct"`
	DirectPct   *float64 `json:"direct_pct"`

	SomaAccepted *float64 `json:"soma_accepted,omitempty"`
	SomaPct      *float64 `json:"soma_pct,omitempty"`
}

// Auction is a formatted auction result. Exactly two variants exist:
// GradedAuction (Note/Bond/TIPS/FRN) and BillAuction. Whether a result
// carries a grade is a property of its type, not a runtime key check.
type Auction interface {
	Core() *AuctionCore
}

// GradedAuction is a formatted Note, Bond, TIPS, or FRN auction.
type GradedAuction struct {
	AuctionCore

	HighYield   *float64 `json:"high_yield"`
	AvgMedYield *float64 `json:"avg_med_yield"`
	TailBps     *float64 `json:"tail_bps"`
	WISource    string   `json:"wi_source,omitempty"`
	Grade       Grade    `json:"grade"`
}

// Core returns the shared auction fields.
func (a *GradedAuction) Core() *AuctionCore { return &a.AuctionCore }

// BillAuction is a formatted Bill auction. Bills clear on discount rate and
// are never graded.
type BillAuction struct {
	AuctionCore

	HighDiscountRate   *float64 `json:"high_discnt_rate"`
	HighInvestmentRate *float64 `json:"high_investment_rate"`
	IsCMB              bool     `json:"is_cmb,omitempty"`
}

// Core returns the shared auction fields.
func (a *BillAuction) Core() *AuctionCore { return &a.AuctionCore }
