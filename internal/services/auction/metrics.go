package auction

import (
	"math"

	"github.com/bobmcallan/tenor/internal/models"
)

// wiDivergenceLimit is the guard against mismatched yield units: when the
// official CMT proxy (nominal) sits more than 1.5 percentage points from the
// auction's stop-out yield (real, for TIPS), the proxy is discarded and the
// tail falls back to the within-auction median yield.
const wiDivergenceLimit = 1.5

// ComputeMetrics derives demand metrics from a raw auction record plus an
// optional when-issued proxy yield. Every output field independently
// degrades to nil when its inputs are missing; no input combination is an
// error.
func ComputeMetrics(record models.RawAuctionRecord, wiYield *float64) models.DemandMetrics {
	highYield := ParseFloat(record.HighYield)
	avgMed := ParseFloat(record.AvgMedYield)
	btc := ParseFloat(record.BidToCoverRatio)
	compAccepted := ParseFloat(record.CompAccepted)
	primaryDealer := ParseFloat(record.PrimaryDealerAccepted)
	indirect := ParseFloat(record.IndirectBidderAccepted)
	direct := ParseFloat(record.DirectBidderAccepted)

	// WI proxy priority: FRED CMT yield, then avg_med_yield fallback.
	proxy := wiYield
	wiSource := models.WISourceFREDCMT

	if proxy != nil && highYield != nil && math.Abs(*highYield-*proxy) > wiDivergenceLimit {
		proxy = nil
	}

	if proxy == nil {
		proxy = avgMed
		wiSource = models.WISourceAvgMedYield
	}

	// Tail (bps) = (high_yield - WI proxy) * 100
	var tailBps *float64
	if highYield != nil && proxy != nil && *proxy > 0 {
		tailBps = ptr(round1((*highYield - *proxy) * 100))
	}
	if tailBps == nil {
		wiSource = ""
	}

	// Bidder percentages relative to competitive accepted
	var dealerPct, indirectPct, directPct *float64
	if compAccepted != nil && *compAccepted > 0 {
		if primaryDealer != nil {
			dealerPct = ptr(round1(*primaryDealer / *compAccepted * 100))
		}
		if indirect != nil {
			indirectPct = ptr(round1(*indirect / *compAccepted * 100))
		}
		if direct != nil {
			directPct = ptr(round1(*direct / *compAccepted * 100))
		}
	}

	return models.DemandMetrics{
		TailBps:     tailBps,
		WISource:    wiSource,
		BidToCover:  btc,
		DealerPct:   dealerPct,
		IndirectPct: indirectPct,
		DirectPct:   directPct,
	}
}
