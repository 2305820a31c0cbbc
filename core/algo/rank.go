package algo

import (
	"sort"

	"github.com/estersassis/busfactor/schema"
)

// RankRisky keeps the Critical, High and Medium entities, sorts them by
// concentration share then total churn, both descending, and returns the top
// 'limit' rows. A non-positive limit returns every risky row. The input is not modified.
func RankRisky(results []schema.EntityMetrics, limit int) []schema.EntityMetrics {
	risky := make([]schema.EntityMetrics, 0, len(results))
	for _, r := range results {
		if r.RiskClass.IsRisky() {
			risky = append(risky, r)
		}
	}
	SortByConcentration(risky)
	if limit > 0 && len(risky) > limit {
		return risky[:limit]
	}
	return risky
}

// SortByConcentration orders rows by concentration share then total churn, both descending.
// Equal rows keep their relative order.
func SortByConcentration(results []schema.EntityMetrics) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].ConcentrationShare != results[j].ConcentrationShare {
			return results[i].ConcentrationShare > results[j].ConcentrationShare
		}
		return results[i].ChurnOrZero() > results[j].ChurnOrZero()
	})
}

// CountByClass tallies results per risk class.
func CountByClass(results []schema.EntityMetrics) map[schema.RiskClass]int {
	counts := make(map[schema.RiskClass]int, 4)
	for _, r := range results {
		counts[r.RiskClass]++
	}
	return counts
}
