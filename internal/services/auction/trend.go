package auction

import (
	"math"

	"github.com/bobmcallan/tenor/internal/models"
)

// defaultRecentN is the size of the recent window compared against the
// remaining history when classifying a trend.
const defaultRecentN = 3

// TrendDirection compares the recent and prior averages of one metric and
// classifies the move. The stability band is 5% of the prior mean's
// magnitude, or an absolute 0.1 when the prior mean is zero.
func TrendDirection(recent, prior []float64, lowerIsBetter bool) string {
	if len(recent) == 0 || len(prior) == 0 {
		return models.TrendInsufficientData
	}

	rAvg := mean(recent)
	pAvg := mean(prior)

	threshold := 0.1
	if pAvg != 0 {
		threshold = 0.05 * math.Abs(pAvg)
	}

	diff := rAvg - pAvg
	if math.Abs(diff) < threshold {
		return models.TrendStable
	}
	if lowerIsBetter == (diff < 0) {
		return models.TrendImproving
	}
	return models.TrendDeteriorating
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// ComputeTrends classifies per-metric trends for a date-descending list of
// graded auctions by comparing the most recent recentN against the rest,
// then majority-votes the overall label. Ties and all-stable splits land on
// stable; fewer than recentN+1 auctions is insufficient data.
func ComputeTrends(graded []*models.GradedAuction, recentN int) models.TrendSet {
	if recentN <= 0 {
		recentN = defaultRecentN
	}
	if len(graded) < recentN+1 {
		return models.TrendSet{Overall: models.TrendInsufficientData}
	}

	recent := graded[:recentN]
	prior := graded[recentN:]

	trends := models.TrendSet{
		TailBps:     TrendDirection(tailValues(recent), tailValues(prior), true),
		BidToCover:  TrendDirection(btcValues(recent), btcValues(prior), false),
		DealerPct:   TrendDirection(dealerValues(recent), dealerValues(prior), true),
		IndirectPct: TrendDirection(indirectValues(recent), indirectValues(prior), false),
	}

	improving := 0
	deteriorating := 0
	for _, label := range []string{trends.TailBps, trends.BidToCover, trends.DealerPct, trends.IndirectPct} {
		switch label {
		case models.TrendImproving:
			improving++
		case models.TrendDeteriorating:
			deteriorating++
		}
	}

	switch {
	case improving > deteriorating:
		trends.Overall = models.TrendImproving
	case deteriorating > improving:
		trends.Overall = models.TrendDeteriorating
	default:
		trends.Overall = models.TrendStable
	}

	return trends
}

func tailValues(auctions []*models.GradedAuction) []float64 {
	vals := make([]float64, 0, len(auctions))
	for _, a := range auctions {
		if a.TailBps != nil {
			vals = append(vals, *a.TailBps)
		}
	}
	return vals
}

func btcValues(auctions []*models.GradedAuction) []float64 {
	vals := make([]float64, 0, len(auctions))
	for _, a := range auctions {
		if a.BidToCover != nil {
			vals = append(vals, *a.BidToCover)
		}
	}
	return vals
}

func dealerValues(auctions []*models.GradedAuction) []float64 {
	vals := make([]float64, 0, len(auctions))
	for _, a := range auctions {
		if a.DealerPct != nil {
			vals = append(vals, *a.DealerPct)
		}
	}
	return vals
}

func indirectValues(auctions []*models.GradedAuction) []float64 {
	vals := make([]float64, 0, len(auctions))
	for _, a := range auctions {
		if a.IndirectPct != nil {
			vals = append(vals, *a.IndirectPct)
		}
	}
	return vals
}
