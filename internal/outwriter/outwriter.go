// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/estersassis/busfactor/internal/contract"
	"github.com/estersassis/busfactor/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteEntities prints snapshot results using the configured output format.
func (ow *OutWriter) WriteEntities(results []schema.EntityMetrics, cfg *contract.Config, duration time.Duration) error {
	return WriteEntityResults(results, cfg, duration)
}

// WriteTrend prints trend results using the configured output format.
func (ow *OutWriter) WriteTrend(result schema.TrendResult, cfg *contract.Config, duration time.Duration) error {
	return WriteTrendResults(result, cfg, duration)
}

// reportPath resolves where an export goes. The summary table defaults to stdout,
// other formats to reports/busfactor_report.<ext>.
func reportPath(cfg *contract.Config) string {
	if cfg.OutputFile != "" || cfg.Output == schema.SummaryOut {
		return cfg.OutputFile
	}
	return contract.DefaultReportPath(cfg.Output)
}
