// Package schema has the records, results and enums shared by all parts of busfactor.
package schema

import "time"

// CommitRecord is one (commit, modified file) pair mined from history.
// A zero Date means the date is absent; snapshot analysis tolerates that, trend analysis does not.
type CommitRecord struct {
	File         string    `json:"file"`
	Author       string    `json:"author"`
	LinesAdded   int       `json:"lines_added"`
	LinesDeleted int       `json:"lines_deleted"`
	CommitHash   string    `json:"commit_hash"`
	Date         time.Time `json:"date,omitzero"`
}

// Churn returns lines added plus lines deleted.
func (r CommitRecord) Churn() int {
	return r.LinesAdded + r.LinesDeleted
}

// EntityMetrics is the per-group result row of an aggregation.
// Optional fields are nil when the metric does not define them.
type EntityMetrics struct {
	Group                      string    `json:"group"`
	NAuthors                   int       `json:"n_authors"`
	TotalChurn                 *int      `json:"total_churn"`
	DominantAuthor             *string   `json:"dominant_author"`
	DominantAuthorContribution *float64  `json:"dominant_author_contribution"`
	ConcentrationShare         float64   `json:"concentration_share"`
	RiskClass                  RiskClass `json:"risk_class"`
}

// ChurnOrZero returns TotalChurn, treating nil as zero.
func (e EntityMetrics) ChurnOrZero() int {
	if e.TotalChurn == nil {
		return 0
	}
	return *e.TotalChurn
}

// TrendPoint summarizes one trend window ending at Date.
type TrendPoint struct {
	Date             time.Time `json:"date"`
	TotalEntities    int       `json:"total_entities"`
	CriticalEntities int       `json:"critical_entities"`
	RiskyPercentage  float64   `json:"risky_percentage"`
}

// TrendResult wraps a trend series with the parameters that produced it.
type TrendResult struct {
	Metric     Metric       `json:"metric"`
	Threshold  float64      `json:"threshold"`
	GroupBy    GroupBy      `json:"group_by"`
	WindowDays int          `json:"window_days"`
	StepDays   int          `json:"step_days"`
	Start      time.Time    `json:"start"`
	End        time.Time    `json:"end"`
	Points     []TrendPoint `json:"points"`
}

// EngineOptions are the aggregation parameters shared by snapshot and trend analysis.
type EngineOptions struct {
	Metric    Metric
	Threshold float64
	GroupBy   GroupBy
	Depth     int
}

// DefaultEngineOptions returns churn metric, 0.8 threshold and file grouping.
func DefaultEngineOptions() EngineOptions {
	return EngineOptions{
		Metric:    ChurnMetric,
		Threshold: DefaultThreshold,
		GroupBy:   GroupByFile,
		Depth:     1,
	}
}
