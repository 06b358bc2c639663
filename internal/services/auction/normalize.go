// Package auction implements Tenor's auction grading and trend-analysis
// engine: normalization of the string-typed Fiscal Data records, derived
// demand metrics with a when-issued yield proxy, weighted letter grading,
// and multi-period trend classification.
package auction

import (
	"math"
	"strconv"
	"strings"
)

// ParseFloat converts a raw upstream field to a typed float. The Fiscal Data
// API delivers every numeric as a string that may be empty, the literal
// "null", or garbage; all of those normalize to nil rather than an error.
// This is the only place raw auction strings become numbers.
func ParseFloat(value string) *float64 {
	s := strings.TrimSpace(value)
	if s == "" || strings.EqualFold(s, "null") {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func ptr(v float64) *float64 { return &v }
