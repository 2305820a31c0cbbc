// Package core has the orchestration logic for bus-factor analyses: mining, aggregation,
// run tracking and reporting.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/estersassis/busfactor/internal/contract"
	"github.com/estersassis/busfactor/internal/outwriter"
	"github.com/estersassis/busfactor/schema"
)

// noDataMessage is printed when a snapshot finds nothing to aggregate.
const noDataMessage = "No relevant commit data found. Analysis aborted."

// ExecuteAnalyze runs the snapshot analysis and prints results.
// With cfg.Trend set it runs the trend analysis instead.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	if cfg.Trend {
		return ExecuteTrend(ctx, cfg, mgr)
	}
	return executeSnapshot(ctx, cfg, contract.NewLocalGitClient(), mgr, outwriter.NewOutWriter())
}

// ExecuteTrend runs the sliding-window trend analysis and prints the series.
func ExecuteTrend(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	return executeTrend(ctx, cfg, contract.NewLocalGitClient(), mgr, outwriter.NewOutWriter())
}

// GetEntityResults runs a snapshot analysis and returns every entity row unranked.
func GetEntityResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.EntityMetrics, time.Duration, error) {
	start := time.Now()
	results, err := runSnapshotCore(ctx, cfg, contract.NewLocalGitClient(), mgr)
	return results, time.Since(start), err
}

// GetTrendResults runs a trend analysis and returns the series.
func GetTrendResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.TrendResult, time.Duration, error) {
	start := time.Now()
	result, err := runTrendCore(ctx, cfg, contract.NewLocalGitClient(), mgr)
	return result, time.Since(start), err
}

// resultWriter is the part of OutWriter used by the executors.
type resultWriter interface {
	WriteEntities(results []schema.EntityMetrics, cfg *contract.Config, duration time.Duration) error
	WriteTrend(result schema.TrendResult, cfg *contract.Config, duration time.Duration) error
}

func executeSnapshot(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager, w resultWriter) error {
	start := time.Now()
	results, err := runSnapshotCore(ctx, cfg, client, mgr)
	if errors.Is(err, ErrNoCommitData) {
		fmt.Println(noDataMessage)
		return nil
	}
	if err != nil {
		return err
	}
	return w.WriteEntities(results, cfg, time.Since(start))
}

func executeTrend(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager, w resultWriter) error {
	start := time.Now()
	result, err := runTrendCore(ctx, cfg, client, mgr)
	if err != nil {
		return err
	}
	return w.WriteTrend(result, cfg, time.Since(start))
}
