package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/estersassis/busfactor/internal/contract"
	"github.com/estersassis/busfactor/schema"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Table names for analysis tracking.
const (
	analysisRunsTable   = "busfactor_analysis_runs"
	entityMetricsTable  = "busfactor_entity_metrics"
	entityMetricsColumn = "analysis_id, group_key, analysis_time, metric, n_authors, total_churn, " +
		"dominant_author, dominant_author_contribution, concentration_share, risk_class"
)

// analysisTables lists every table owned by the analysis store, children first.
var analysisTables = []string{entityMetricsTable, analysisRunsTable, migrationsTable}

// AnalysisStoreImpl implements the AnalysisStore interface.
type AnalysisStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.AnalysisStore = &AnalysisStoreImpl{} // Compile-time check

// NewAnalysisStore opens the backend and brings its schema to the latest migration.
func NewAnalysisStore(backend schema.DatabaseBackend, connStr string) (contract.AnalysisStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &AnalysisStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, contract.GetAnalysisDBFilePath())
	if err != nil {
		return nil, err
	}

	msg, err := migrateDB(db, backend, -1)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate analysis tables: %w", err)
	}
	contract.Logger.WithField("backend", backend).Debug(msg)

	return &AnalysisStoreImpl{db: db, backend: backend}, nil
}

func (as *AnalysisStoreImpl) disabled() bool {
	return as.backend == schema.NoneBackend || as.db == nil
}

func (as *AnalysisStoreImpl) table(name string) string {
	return quoteTableName(name, as.backend)
}

// BeginAnalysis creates a new analysis run with a fresh UUID and returns its ID.
func (as *AnalysisStoreImpl) BeginAnalysis(startTime time.Time, configParams map[string]any) (int64, error) {
	if as.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}
	runUUID := uuid.NewString()

	var analysisID int64
	if as.backend == schema.PostgreSQLBackend {
		query := fmt.Sprintf(`INSERT INTO %s (run_uuid, start_time, config_params) VALUES ($1, $2, $3) RETURNING analysis_id`, as.table(analysisRunsTable))
		err = as.db.QueryRow(query, runUUID, startTime, string(configJSON)).Scan(&analysisID)
	} else {
		query := fmt.Sprintf(`INSERT INTO %s (run_uuid, start_time, config_params) VALUES (?, ?, ?)`, as.table(analysisRunsTable))
		var result sql.Result
		result, err = as.db.Exec(query, runUUID, formatTime(startTime, as.backend), string(configJSON))
		if err == nil {
			analysisID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis run: %w", err)
	}

	contract.Logger.WithFields(logrus.Fields{"analysis_id": analysisID, "run_uuid": runUUID}).Debug("analysis run started")
	return analysisID, nil
}

// EndAnalysis records the end time, duration and entity count of a run.
func (as *AnalysisStoreImpl) EndAnalysis(analysisID int64, endTime time.Time, totalEntities int) error {
	if as.disabled() {
		return nil
	}

	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE analysis_id = %s`, as.table(analysisRunsTable), placeholder(as.backend, 1))
	start := timeScanner{backend: as.backend}
	if err := as.db.QueryRow(query, analysisID).Scan(start.dest()); err != nil {
		return fmt.Errorf("failed to get start_time for analysis %d: %w", analysisID, err)
	}
	startTime, err := start.value()
	if err != nil || startTime == nil {
		return fmt.Errorf("failed to read start_time for analysis %d: %w", analysisID, err)
	}
	durationMs := endTime.Sub(*startTime).Milliseconds()

	update := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_entities_analyzed = %s WHERE analysis_id = %s`,
		as.table(analysisRunsTable),
		placeholder(as.backend, 1), placeholder(as.backend, 2), placeholder(as.backend, 3), placeholder(as.backend, 4))
	if _, err := as.db.Exec(update, formatTime(endTime, as.backend), durationMs, totalEntities, analysisID); err != nil {
		return fmt.Errorf("failed to update analysis run: %w", err)
	}
	return nil
}

// RecordEntityMetrics stores one result row of an analysis run.
func (as *AnalysisStoreImpl) RecordEntityMetrics(analysisID int64, analysisTime time.Time, metric schema.Metric, row schema.EntityMetrics) error {
	if as.disabled() {
		return nil
	}

	var churn *int64
	if row.TotalChurn != nil {
		v := int64(*row.TotalChurn)
		churn = &v
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`, as.table(entityMetricsTable), entityMetricsColumn, placeholders(as.backend, 10))
	_, err := as.db.Exec(query,
		analysisID, row.Group, formatTime(analysisTime, as.backend), string(metric), row.NAuthors,
		churn, row.DominantAuthor, row.DominantAuthorContribution, row.ConcentrationShare, string(row.RiskClass),
	)
	if err != nil {
		return fmt.Errorf("failed to insert entity metrics for %s: %w", row.Group, err)
	}
	return nil
}

// Close closes the underlying connection.
func (as *AnalysisStoreImpl) Close() error {
	if as.db != nil {
		return as.db.Close()
	}
	return nil
}

// GetStatus returns status information about the analysis store.
func (as *AnalysisStoreImpl) GetStatus() (schema.AnalysisStatus, error) {
	status := schema.AnalysisStatus{
		Backend:    string(as.backend),
		Connected:  as.db != nil,
		TableSizes: make(map[string]int64),
	}
	if as.disabled() {
		return status, nil
	}
	status.SchemaVersion = schemaVersion(as.db)

	runs := as.table(analysisRunsTable)
	if err := as.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runs)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		last := timeScanner{backend: as.backend}
		row := as.db.QueryRow(fmt.Sprintf("SELECT analysis_id, start_time FROM %s ORDER BY analysis_id DESC LIMIT 1", runs))
		if err := row.Scan(&status.LastRunID, last.dest()); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		if t, err := last.value(); err != nil {
			return status, err
		} else if t != nil {
			status.LastRunTime = *t
		}

		oldest := timeScanner{backend: as.backend}
		row = as.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY analysis_id ASC LIMIT 1", runs))
		if err := row.Scan(oldest.dest()); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		if t, err := oldest.value(); err != nil {
			return status, err
		} else if t != nil {
			status.OldestRunTime = *t
		}

		row = as.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(total_entities_analyzed), 0) FROM %s", runs))
		if err := row.Scan(&status.TotalEntitiesAnalyzed); err != nil {
			return status, fmt.Errorf("failed to get total entities analyzed: %w", err)
		}
	}

	for _, table := range []string{analysisRunsTable, entityMetricsTable} {
		var count int64
		if err := as.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", as.table(table))).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	return status, nil
}

// GetAllAnalysisRuns retrieves all analysis runs ordered by ID.
func (as *AnalysisStoreImpl) GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error) {
	if as.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, run_uuid, start_time, end_time, run_duration_ms, total_entities_analyzed, config_params
		FROM %s ORDER BY analysis_id`, as.table(analysisRunsTable))
	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AnalysisRunRecord
	for rows.Next() {
		var record schema.AnalysisRunRecord
		var runUUID sql.NullString
		start := timeScanner{backend: as.backend}
		end := timeScanner{backend: as.backend}
		if err := rows.Scan(&record.AnalysisID, &runUUID, start.dest(), end.dest(),
			&record.RunDurationMs, &record.TotalEntitiesAnalyzed, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		record.RunUUID = runUUID.String

		startTime, err := start.value()
		if err != nil {
			return nil, err
		}
		if startTime != nil {
			record.StartTime = *startTime
		}
		if record.EndTime, err = end.value(); err != nil {
			return nil, err
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis runs: %w", err)
	}
	return results, nil
}

// GetAllEntityMetrics retrieves every stored result row ordered by run and group.
func (as *AnalysisStoreImpl) GetAllEntityMetrics() ([]schema.EntityMetricsRecord, error) {
	if as.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY analysis_id, group_key`, entityMetricsColumn, as.table(entityMetricsTable))
	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query entity metrics: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.EntityMetricsRecord
	for rows.Next() {
		var record schema.EntityMetricsRecord
		analysisTime := timeScanner{backend: as.backend}
		if err := rows.Scan(&record.AnalysisID, &record.GroupKey, analysisTime.dest(), &record.Metric, &record.NAuthors,
			&record.TotalChurn, &record.DominantAuthor, &record.DominantAuthorContribution,
			&record.ConcentrationShare, &record.RiskClass); err != nil {
			return nil, fmt.Errorf("failed to scan entity metrics: %w", err)
		}
		t, err := analysisTime.value()
		if err != nil {
			return nil, err
		}
		if t != nil {
			record.AnalysisTime = *t
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entity metrics: %w", err)
	}
	return results, nil
}
