package auction

import (
	"strings"

	"github.com/bobmcallan/tenor/internal/models"
)

// IsSettled reports whether a raw record has auction results yet. Upcoming
// auctions appear in the dataset with their result fields still null; at
// least one of bid-to-cover, high yield, or high discount rate must parse
// for the record to be formatted.
func IsSettled(record models.RawAuctionRecord) bool {
	return ParseFloat(record.BidToCoverRatio) != nil ||
		ParseFloat(record.HighYield) != nil ||
		ParseFloat(record.HighDiscountRate) != nil
}

// FormatAuction turns a raw record plus an optional WI proxy yield into the
// public auction result. Notes, bonds, TIPS, and FRNs come back as
// *models.GradedAuction; bills as *models.BillAuction.
func FormatAuction(record models.RawAuctionRecord, wiYield *float64) models.Auction {
	metrics := ComputeMetrics(record, wiYield)

	core := models.AuctionCore{
		CUSIP:        record.CUSIP,
		SecurityType: record.SecurityType,
		SecurityTerm: record.SecurityTerm,
		AuctionDate:  record.AuctionDate,
		IssueDate:    record.IssueDate,
		OfferingAmt:  ParseFloat(record.OfferingAmt),
		BidToCover:   metrics.BidToCover,
		DealerPct:    metrics.DealerPct,
		IndirectPct:  metrics.IndirectPct,
		DirectPct:    metrics.DirectPct,
	}

	// SOMA (Fed reinvestment) participation, absolute and vs offering
	if soma := ParseFloat(record.SomaAccepted); soma != nil {
		core.SomaAccepted = soma
		if core.OfferingAmt != nil && *core.OfferingAmt > 0 {
			core.SomaPct = ptr(round1(*soma / *core.OfferingAmt * 100))
		}
	}

	if models.GradeableType(record.SecurityType) {
		return &models.GradedAuction{
			AuctionCore: core,
			HighYield:   ParseFloat(record.HighYield),
			AvgMedYield: ParseFloat(record.AvgMedYield),
			TailBps:     metrics.TailBps,
			WISource:    metrics.WISource,
			Grade:       GradeAuction(metrics),
		}
	}

	bill := &models.BillAuction{
		AuctionCore:        core,
		HighDiscountRate:   ParseFloat(record.HighDiscountRate),
		HighInvestmentRate: ParseFloat(record.HighInvestmentRate),
	}
	if record.SecurityType == models.SecurityTypeBill {
		bill.IsCMB = strings.EqualFold(strings.TrimSpace(record.CashManagementBill), "yes")
	}
	return bill
}
