package auction

import (
	"github.com/bobmcallan/tenor/internal/models"
)

// GradeNA marks a metric that could not be graded because its input was
// missing. N/A metrics carry no weight in the GPA.
const GradeNA = "N/A"

// thresholds holds the four letter-grade bounds for one metric.
type thresholds struct {
	A, B, C, D float64
}

// Grading thresholds for notes and bonds. Tail and dealer takedown grade
// lower-is-better with exclusive upper bounds; bid-to-cover and indirect
// share grade higher-is-better with inclusive lower bounds.
var (
	tailThresholds     = thresholds{A: -1.0, B: 0.5, C: 2.0, D: 4.0}
	btcThresholds      = thresholds{A: 2.8, B: 2.5, C: 2.2, D: 2.0}
	dealerThresholds   = thresholds{A: 8.0, B: 13.0, C: 20.0, D: 30.0}
	indirectThresholds = thresholds{A: 75.0, B: 68.0, C: 60.0, D: 55.0}
)

// Composite grade weights. Dealer takedown carries the most weight: dealers
// are the backstop, not real demand.
var metricWeights = map[string]float64{
	"tail":         0.25,
	"bid_to_cover": 0.25,
	"dealer_pct":   0.30,
	"indirect_pct": 0.20,
}

var gradePoints = map[string]float64{
	"A": 4, "B": 3, "C": 2, "D": 1, "F": 0,
}

// GradeLowerIsBetter grades a metric where lower values are better.
// Bounds are exclusive: value < A-bound earns an A.
func GradeLowerIsBetter(value *float64, t thresholds) string {
	if value == nil {
		return GradeNA
	}
	switch v := *value; {
	case v < t.A:
		return "A"
	case v < t.B:
		return "B"
	case v < t.C:
		return "C"
	case v < t.D:
		return "D"
	default:
		return "F"
	}
}

// GradeHigherIsBetter grades a metric where higher values are better.
// Bounds are inclusive: value >= A-bound earns an A.
func GradeHigherIsBetter(value *float64, t thresholds) string {
	if value == nil {
		return GradeNA
	}
	switch v := *value; {
	case v >= t.A:
		return "A"
	case v >= t.B:
		return "B"
	case v >= t.C:
		return "C"
	case v >= t.D:
		return "D"
	default:
		return "F"
	}
}

// GradeAuction grades an auction from its demand metrics: per-metric letter
// grades, a weighted GPA over the gradeable metrics, and a composite letter.
// The composite reflects overall weighted quality and may disagree with any
// single metric's grade.
func GradeAuction(metrics models.DemandMetrics) models.Grade {
	grades := map[string]string{
		"tail":         GradeLowerIsBetter(metrics.TailBps, tailThresholds),
		"bid_to_cover": GradeHigherIsBetter(metrics.BidToCover, btcThresholds),
		"dealer_pct":   GradeLowerIsBetter(metrics.DealerPct, dealerThresholds),
		"indirect_pct": GradeHigherIsBetter(metrics.IndirectPct, indirectThresholds),
	}

	// Weighted GPA over contributing metrics only. Weights are renormalized
	// by dividing by the contributing weight sum, never zero-filled.
	weightedSum := 0.0
	totalWeight := 0.0
	for metric, grade := range grades {
		points, gradeable := gradePoints[grade]
		if !gradeable {
			continue
		}
		w := metricWeights[metric]
		weightedSum += points * w
		totalWeight += w
	}

	gpa := 0.0
	if totalWeight > 0 {
		gpa = weightedSum / totalWeight
	}

	var composite string
	switch {
	case gpa >= 3.5:
		composite = "A"
	case gpa >= 2.5:
		composite = "B"
	case gpa >= 1.5:
		composite = "C"
	case gpa >= 0.5:
		composite = "D"
	default:
		composite = "F"
	}

	return models.Grade{
		CompositeGrade: composite,
		GPA:            round2(gpa),
		MetricGrades:   grades,
	}
}
