// Package parquet provides row types and writers for exporting bus-factor
// results and tracked analysis data using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/estersassis/busfactor/schema"
	"github.com/parquet-go/parquet-go"
)

// AnalysisRun maps to the busfactor_analysis_runs table.
type AnalysisRun struct {
	AnalysisID int64  `parquet:"analysis_id,snappy"`
	RunUUID    string `parquet:"run_uuid,snappy"`

	// StartTime is when the analysis began (TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime stays null for runs that never finished
	EndTime       *time.Time `parquet:"end_time,optional,snappy"`
	RunDurationMs *int32     `parquet:"run_duration_ms,optional,snappy"`

	TotalEntitiesAnalyzed *int32 `parquet:"total_entities_analyzed,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// EntityMetrics maps to the busfactor_entity_metrics table.
type EntityMetrics struct {
	AnalysisID   int64     `parquet:"analysis_id,snappy"`
	GroupKey     string    `parquet:"group_key,snappy"`
	AnalysisTime time.Time `parquet:"analysis_time,snappy"`
	Metric       string    `parquet:"metric,snappy"`
	NAuthors     int32     `parquet:"n_authors,snappy"`

	// Null for metrics that do not measure churn or name a dominant author
	TotalChurn                 *int64   `parquet:"total_churn,optional,snappy"`
	DominantAuthor             *string  `parquet:"dominant_author,optional,snappy"`
	DominantAuthorContribution *float64 `parquet:"dominant_author_contribution,optional,snappy"`

	ConcentrationShare float64 `parquet:"concentration_share,snappy"`
	RiskClass          string  `parquet:"risk_class,snappy"`
}

// EntityResult is one row of a live `--format parquet` report.
type EntityResult struct {
	Group                      string   `parquet:"group,snappy"`
	NAuthors                   int32    `parquet:"n_authors,snappy"`
	TotalChurn                 *int64   `parquet:"total_churn,optional,snappy"`
	DominantAuthor             *string  `parquet:"dominant_author,optional,snappy"`
	DominantAuthorContribution *float64 `parquet:"dominant_author_contribution,optional,snappy"`
	ConcentrationShare         float64  `parquet:"concentration_share,snappy"`
	RiskClass                  string   `parquet:"risk_class,snappy"`
	Metric                     string   `parquet:"metric,snappy"`
	Threshold                  float64  `parquet:"threshold,snappy"`
}

// TrendPoint is one window of a trend report.
type TrendPoint struct {
	Date             time.Time `parquet:"date,snappy"`
	TotalEntities    int32     `parquet:"total_entities,snappy"`
	CriticalEntities int32     `parquet:"critical_entities,snappy"`
	RiskyPercentage  float64   `parquet:"risky_percentage,snappy"`
}

// Write encodes rows to w using the schema inferred from T's struct tags.
func Write[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteFile creates outputPath and writes rows to it.
func WriteFile[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Write(file, rows); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// ConvertAnalysisRunRecords converts stored runs for Parquet export.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, record := range records {
		result[i] = AnalysisRun{
			AnalysisID:            record.AnalysisID,
			RunUUID:               record.RunUUID,
			StartTime:             record.StartTime,
			EndTime:               record.EndTime,
			RunDurationMs:         record.RunDurationMs,
			TotalEntitiesAnalyzed: record.TotalEntitiesAnalyzed,
			ConfigParams:          record.ConfigParams,
		}
	}
	return result
}

// ConvertEntityMetricsRecords converts stored entity rows for Parquet export.
func ConvertEntityMetricsRecords(records []schema.EntityMetricsRecord) []EntityMetrics {
	result := make([]EntityMetrics, len(records))
	for i, record := range records {
		result[i] = EntityMetrics{
			AnalysisID:                 record.AnalysisID,
			GroupKey:                   record.GroupKey,
			AnalysisTime:               record.AnalysisTime,
			Metric:                     record.Metric,
			NAuthors:                   record.NAuthors,
			TotalChurn:                 record.TotalChurn,
			DominantAuthor:             record.DominantAuthor,
			DominantAuthorContribution: record.DominantAuthorContribution,
			ConcentrationShare:         record.ConcentrationShare,
			RiskClass:                  record.RiskClass,
		}
	}
	return result
}

// ConvertEntityResults converts engine output into report rows.
func ConvertEntityResults(results []schema.EntityMetrics, opts schema.EngineOptions) []EntityResult {
	rows := make([]EntityResult, len(results))
	for i, r := range results {
		var churn *int64
		if r.TotalChurn != nil {
			v := int64(*r.TotalChurn)
			churn = &v
		}
		rows[i] = EntityResult{
			Group:                      r.Group,
			NAuthors:                   int32(r.NAuthors),
			TotalChurn:                 churn,
			DominantAuthor:             r.DominantAuthor,
			DominantAuthorContribution: r.DominantAuthorContribution,
			ConcentrationShare:         r.ConcentrationShare,
			RiskClass:                  string(r.RiskClass),
			Metric:                     string(opts.Metric),
			Threshold:                  opts.Threshold,
		}
	}
	return rows
}

// ConvertTrendPoints converts trend points into report rows.
func ConvertTrendPoints(points []schema.TrendPoint) []TrendPoint {
	rows := make([]TrendPoint, len(points))
	for i, p := range points {
		rows[i] = TrendPoint{
			Date:             p.Date,
			TotalEntities:    int32(p.TotalEntities),
			CriticalEntities: int32(p.CriticalEntities),
			RiskyPercentage:  p.RiskyPercentage,
		}
	}
	return rows
}
