// Package algo has the bus-factor aggregation engine: risk classification,
// path grouping, ownership-concentration metrics and trend windowing.
package algo

import (
	"math"

	"github.com/estersassis/busfactor/schema"
)

// MediumFloor returns the lower edge of the Medium band for a threshold, rounded to 4 decimals.
func MediumFloor(threshold float64) float64 {
	return math.Round(threshold*schema.MediumFloorFactor*10000) / 10000
}

// Classify maps an author count and concentration share to a risk class.
// A single author is always Critical, whatever the share or threshold.
func Classify(nAuthors int, share, threshold float64) schema.RiskClass {
	if nAuthors == 1 {
		return schema.Critical
	}
	switch {
	case share >= threshold:
		return schema.High
	case share >= MediumFloor(threshold):
		return schema.Medium
	default:
		return schema.Low
	}
}
