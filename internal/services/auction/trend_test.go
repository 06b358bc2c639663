package auction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bobmcallan/tenor/internal/models"
)

func TestTrendDirection(t *testing.T) {
	tests := []struct {
		name          string
		recent        []float64
		prior         []float64
		lowerIsBetter bool
		expected      string
	}{
		{
			name:          "falling tail is improving",
			recent:        []float64{1.0, 1.5},
			prior:         []float64{3.0, 3.5},
			lowerIsBetter: true,
			expected:      models.TrendImproving,
		},
		{
			name:          "rising tail is deteriorating",
			recent:        []float64{3.0, 3.5},
			prior:         []float64{1.0, 1.5},
			lowerIsBetter: true,
			expected:      models.TrendDeteriorating,
		},
		{
			name:          "rising bid to cover is improving",
			recent:        []float64{2.8, 2.9},
			prior:         []float64{2.3, 2.4},
			lowerIsBetter: false,
			expected:      models.TrendImproving,
		},
		{
			name:          "within relative band is stable",
			recent:        []float64{2.51},
			prior:         []float64{2.50},
			lowerIsBetter: false,
			expected:      models.TrendStable,
		},
		{
			name:          "zero prior mean uses absolute band",
			recent:        []float64{0.05},
			prior:         []float64{0.0},
			lowerIsBetter: true,
			expected:      models.TrendStable,
		},
		{
			name:          "empty recent is insufficient",
			recent:        nil,
			prior:         []float64{1.0},
			lowerIsBetter: true,
			expected:      models.TrendInsufficientData,
		},
		{
			name:          "empty prior is insufficient",
			recent:        []float64{1.0},
			prior:         nil,
			lowerIsBetter: true,
			expected:      models.TrendInsufficientData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TrendDirection(tt.recent, tt.prior, tt.lowerIsBetter))
		})
	}
}

// gradedWith builds a minimal graded auction carrying demand metric values.
func gradedWith(tail, btc, dealer, indirect float64) *models.GradedAuction {
	a := &models.GradedAuction{}
	a.TailBps = ptr(tail)
	a.BidToCover = ptr(btc)
	a.DealerPct = ptr(dealer)
	a.IndirectPct = ptr(indirect)
	return a
}

func TestComputeTrendsInsufficientData(t *testing.T) {
	graded := []*models.GradedAuction{
		gradedWith(1.0, 2.5, 12, 68),
		gradedWith(1.2, 2.4, 13, 67),
		gradedWith(0.8, 2.6, 11, 69),
	}

	trends := ComputeTrends(graded, 3)

	assert.Equal(t, models.TrendInsufficientData, trends.Overall)
	assert.Empty(t, trends.TailBps)
}

func TestComputeTrendsMajorityImproving(t *testing.T) {
	// Date-descending: first three are the recent window.
	graded := []*models.GradedAuction{
		gradedWith(0.5, 2.9, 9, 74),
		gradedWith(0.4, 2.8, 10, 73),
		gradedWith(0.6, 2.9, 9, 75),
		gradedWith(2.5, 2.3, 18, 62),
		gradedWith(2.8, 2.2, 19, 61),
	}

	trends := ComputeTrends(graded, 3)

	assert.Equal(t, models.TrendImproving, trends.TailBps)
	assert.Equal(t, models.TrendImproving, trends.BidToCover)
	assert.Equal(t, models.TrendImproving, trends.DealerPct)
	assert.Equal(t, models.TrendImproving, trends.IndirectPct)
	assert.Equal(t, models.TrendImproving, trends.Overall)
}

func TestComputeTrendsTieIsStable(t *testing.T) {
	// Tail and dealer worsen, btc and indirect improve: 2-2 tie.
	graded := []*models.GradedAuction{
		gradedWith(3.0, 2.9, 25, 74),
		gradedWith(3.1, 2.8, 26, 73),
		gradedWith(2.9, 2.9, 24, 75),
		gradedWith(0.5, 2.2, 10, 60),
		gradedWith(0.6, 2.3, 11, 61),
	}

	trends := ComputeTrends(graded, 3)

	assert.Equal(t, models.TrendDeteriorating, trends.TailBps)
	assert.Equal(t, models.TrendImproving, trends.BidToCover)
	assert.Equal(t, models.TrendDeteriorating, trends.DealerPct)
	assert.Equal(t, models.TrendImproving, trends.IndirectPct)
	assert.Equal(t, models.TrendStable, trends.Overall)
}
