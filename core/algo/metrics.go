package algo

import (
	"math"

	"github.com/estersassis/busfactor/schema"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// metricFunc fills the metric-specific fields of a row. Group, author count
// and risk class are filled by the aggregator.
type metricFunc func(g *groupStat) schema.EntityMetrics

var metricStrategies = map[schema.Metric]metricFunc{
	schema.ChurnMetric:        churnMetric,
	schema.EntropyMetric:      entropyMetric,
	schema.HHIMetric:          hhiMetric,
	schema.OwnershipMetric:    commitMetric,
	schema.CommitNumberMetric: commitMetric,
}

// dominant returns the index of the author with the largest value.
// Ties keep the first-seen author.
func dominant(g *groupStat, value func(authorStat) int) (int, int) {
	best, total := 0, 0
	for i, s := range g.authors {
		v := value(s)
		total += v
		if v > value(g.authors[best]) {
			best = i
		}
	}
	return best, total
}

func byChurn(s authorStat) int   { return s.churn }
func byCommits(s authorStat) int { return s.commits }

func churnMetric(g *groupStat) schema.EntityMetrics {
	best, total := dominant(g, byChurn)
	author, domChurn := g.authors[best].author, g.authors[best].churn
	contribution := float64(domChurn)
	var share float64
	if total > 0 {
		share = float64(domChurn) / float64(total)
	}
	return schema.EntityMetrics{
		TotalChurn:                 &total,
		DominantAuthor:             &author,
		DominantAuthorContribution: &contribution,
		ConcentrationShare:         share,
	}
}

func commitMetric(g *groupStat) schema.EntityMetrics {
	best, total := dominant(g, byCommits)
	author, domCommits := g.authors[best].author, g.authors[best].commits
	contribution := float64(domCommits)
	var share float64
	if total > 0 {
		share = float64(domCommits) / float64(total)
	}
	return schema.EntityMetrics{
		DominantAuthor:             &author,
		DominantAuthorContribution: &contribution,
		ConcentrationShare:         share,
	}
}

// churnShares returns each author's share of the group churn and the total.
func churnShares(g *groupStat) ([]float64, int) {
	total := 0
	for _, s := range g.authors {
		total += s.churn
	}
	if total == 0 {
		return nil, 0
	}
	p := make([]float64, len(g.authors))
	for i, s := range g.authors {
		p[i] = float64(s.churn) / float64(total)
	}
	return p, total
}

// entropyMetric reports 1 - H/log2(n): 0 for an even split, 1 for a single owner.
func entropyMetric(g *groupStat) schema.EntityMetrics {
	p, total := churnShares(g)
	n := len(g.authors)
	risk := 1.0
	if n > 1 {
		if total == 0 {
			risk = 0
		} else {
			h := stat.Entropy(p) / math.Ln2
			risk = clamp01(1 - h/math.Log2(float64(n)))
		}
	}
	return schema.EntityMetrics{
		TotalChurn:         &total,
		ConcentrationShare: risk,
	}
}

// hhiMetric reports the Herfindahl-Hirschman index of churn shares, in [1/n, 1].
func hhiMetric(g *groupStat) schema.EntityMetrics {
	p, total := churnShares(g)
	n := len(g.authors)
	var hhi float64
	switch {
	case n == 1:
		hhi = 1
	case total > 0:
		// Rounding can leave the sum an ulp below 1/n.
		hhi = math.Max(1/float64(n), math.Min(1, floats.Dot(p, p)))
	}
	return schema.EntityMetrics{
		TotalChurn:         &total,
		ConcentrationShare: hhi,
	}
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
