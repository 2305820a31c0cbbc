package iocache

import (
	"errors"
	"fmt"

	"github.com/estersassis/busfactor/internal/parquet"
)

// ExecuteAnalysisExport writes every tracked run and result row to two Parquet files
// named after outputFile.
func ExecuteAnalysisExport(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetAnalysisStore()
	if store == nil {
		return errors.New("analysis tracking is not configured")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total analysis runs: %d\n", status.TotalRuns)
	fmt.Printf("Total entity records: %d\n", status.TableSizes[entityMetricsTable])

	runs, err := store.GetAllAnalysisRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}
	entities, err := store.GetAllEntityMetrics()
	if err != nil {
		return fmt.Errorf("failed to retrieve entity metrics: %w", err)
	}

	runRows := parquet.ConvertAnalysisRunRecords(runs)
	runsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteFile(runRows, runsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	fmt.Printf("Exported %d analysis runs to: %s\n", len(runRows), runsFile)

	entityRows := parquet.ConvertEntityMetricsRecords(entities)
	entitiesFile := outputFile + ".entity_metrics.parquet"
	if err := parquet.WriteFile(entityRows, entitiesFile); err != nil {
		return fmt.Errorf("failed to write entity metrics: %w", err)
	}
	fmt.Printf("Exported %d entity records to: %s\n", len(entityRows), entitiesFile)

	return nil
}
