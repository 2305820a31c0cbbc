package core

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/estersassis/busfactor/core/agg"
	"github.com/estersassis/busfactor/core/algo"
	"github.com/estersassis/busfactor/internal/contract"
	"github.com/estersassis/busfactor/schema"
	"github.com/sirupsen/logrus"
)

// ErrNoCommitData is returned when mining yields no records for the requested range and scope.
var ErrNoCommitData = errors.New("no relevant commit data found")

// runSnapshotCore performs the Mining, Aggregation and Tracking steps of a snapshot analysis.
func runSnapshotCore(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) ([]schema.EntityMetrics, error) {
	if !shouldSuppressHeader(ctx) {
		logAnalysisHeader(os.Stderr, cfg)
	}

	// Options are checked before any git work so bad input fails fast
	aggregator, err := algo.NewAggregator(cfg.EngineOptions())
	if err != nil {
		return nil, err
	}

	// --- 0. Begin Analysis Tracking (if configured) ---
	analysisStore := analysisStoreOf(mgr)
	ctx = beginTracking(ctx, cfg, analysisStore)

	// --- 1. Mining Phase (with caching) ---
	records, err := agg.MineCommitRecords(ctx, cfg, client, mgr)
	if err != nil {
		return nil, err
	}

	// --- 2. Aggregation ---
	var results []schema.EntityMetrics
	if len(records) > 0 {
		results = aggregator.Calculate(records)
	}

	// --- 3. End Analysis Tracking ---
	endTracking(ctx, cfg.Metric, analysisStore, results)

	if len(results) == 0 {
		return nil, ErrNoCommitData
	}
	return results, nil
}

// runTrendCore mines once and re-aggregates the records over sliding windows.
// The series spans the requested range, or the dates of the mined records when a side is open.
func runTrendCore(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) (schema.TrendResult, error) {
	if !shouldSuppressHeader(ctx) {
		logAnalysisHeader(os.Stderr, cfg)
	}

	result := schema.TrendResult{
		Metric:     cfg.Metric,
		Threshold:  cfg.Threshold,
		GroupBy:    cfg.GroupBy,
		WindowDays: cfg.WindowDays,
		StepDays:   cfg.StepDays,
		Points:     []schema.TrendPoint{},
	}
	if err := cfg.EngineOptions().Validate(); err != nil {
		return result, err
	}
	if err := schema.ValidateTrendWindow(cfg.WindowDays, cfg.StepDays); err != nil {
		return result, err
	}

	records, err := agg.MineCommitRecords(ctx, cfg, client, mgr)
	if err != nil {
		return result, err
	}

	windower, err := algo.NewTrendWindower(records, cfg.EngineOptions(), cfg.Workers)
	if err != nil {
		return result, err
	}

	earliest, latest, ok := algo.DateBounds(records)
	if !ok {
		return result, nil
	}
	result.Start, result.End = earliest, latest
	if !cfg.StartTime.IsZero() {
		result.Start = cfg.StartTime
	}
	if !cfg.EndTime.IsZero() {
		result.End = cfg.EndTime
	}

	points, err := windower.Analyze(ctx, result.Start, result.End, cfg.WindowDays, cfg.StepDays)
	if err != nil {
		return result, err
	}
	result.Points = points

	contract.Logger.WithFields(logrus.Fields{
		"records": len(records),
		"points":  len(points),
		"workers": cfg.Workers,
	}).Debug("computed trend series")
	return result, nil
}

// analysisStoreOf returns the analysis store of mgr, or nil when tracking is off.
func analysisStoreOf(mgr contract.CacheManager) contract.AnalysisStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetAnalysisStore()
}

// beginTracking opens a tracked run and stores its ID in the returned context.
// Tracking failures never abort the analysis.
func beginTracking(ctx context.Context, cfg *contract.Config, store contract.AnalysisStore) context.Context {
	if store == nil {
		return ctx
	}
	configParams := map[string]any{
		"repo_path":    cfg.RepoPath,
		"repo_source":  cfg.RepoSource,
		"metric":       string(cfg.Metric),
		"threshold":    cfg.Threshold,
		"group_by":     string(cfg.GroupBy),
		"depth":        cfg.Depth,
		"scope":        cfg.Scope,
		"result_limit": cfg.ResultLimit,
	}
	if !cfg.StartTime.IsZero() {
		configParams["since"] = cfg.StartTime.Format(contract.DateTimeFormat)
	}
	if !cfg.EndTime.IsZero() {
		configParams["until"] = cfg.EndTime.Format(contract.DateTimeFormat)
	}

	analysisID, err := store.BeginAnalysis(time.Now(), configParams)
	if err != nil {
		contract.LogWarn("Analysis tracking initialization failed", err)
		return ctx
	}
	return withAnalysisID(ctx, analysisID)
}

// endTracking records every result row and closes the tracked run.
func endTracking(ctx context.Context, metric schema.Metric, store contract.AnalysisStore, results []schema.EntityMetrics) {
	analysisID, ok := getAnalysisID(ctx)
	if store == nil || !ok {
		return
	}
	analysisTime := time.Now()
	for _, row := range results {
		if err := store.RecordEntityMetrics(analysisID, analysisTime, metric, row); err != nil {
			contract.LogWarn("Failed to record entity metrics", err)
			break
		}
	}
	if err := store.EndAnalysis(analysisID, time.Now(), len(results)); err != nil {
		contract.LogWarn("Failed to finalize analysis tracking", err)
	}
}
