package schema

import "time"

// CacheStatus represents the status of the cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// AnalysisStatus represents the status of the analysis store.
type AnalysisStatus struct {
	Backend               string           `json:"backend"`
	Connected             bool             `json:"connected"`
	SchemaVersion         int              `json:"schema_version"`
	TotalRuns             int              `json:"total_runs"`
	LastRunID             int64            `json:"last_run_id"`
	LastRunTime           time.Time        `json:"last_run_time"`
	OldestRunTime         time.Time        `json:"oldest_run_time"`
	TotalEntitiesAnalyzed int              `json:"total_entities_analyzed"`
	TableSizes            map[string]int64 `json:"table_sizes"`
}

// AnalysisRunRecord represents a row from the busfactor_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID            int64
	RunUUID               string
	StartTime             time.Time
	EndTime               *time.Time
	RunDurationMs         *int32
	TotalEntitiesAnalyzed *int32
	ConfigParams          *string
}

// EntityMetricsRecord represents a row from the busfactor_entity_metrics table.
type EntityMetricsRecord struct {
	AnalysisID                 int64
	GroupKey                   string
	AnalysisTime               time.Time
	Metric                     string
	NAuthors                   int32
	TotalChurn                 *int64
	DominantAuthor             *string
	DominantAuthorContribution *float64
	ConcentrationShare         float64
	RiskClass                  string
}
