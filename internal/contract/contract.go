// Package contract provides interfaces and shared utilities for the busfactor internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/estersassis/busfactor/schema"
)

// GitClient defines the Git operations needed to mine authorship history.
// This allows the core analysis logic to be tested without needing a real git executable.
type GitClient interface {
	// Run executes a git command and returns its output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetRepoHash returns the current HEAD commit hash of the repository.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// GetActivityLog returns the raw numstat log of every commit between startTime and endTime.
	// Zero times leave that side of the range open.
	GetActivityLog(ctx context.Context, repoPath string, startTime, endTime time.Time) ([]byte, error)

	// CloneRepository clones a remote repository into a fresh temporary directory.
	// The returned cleanup function removes the directory.
	CloneRepository(ctx context.Context, url string) (string, func(), error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetActivityStore() CacheStore
	GetAnalysisStore() AnalysisStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// AnalysisStore defines the interface for tracking analysis runs and their entity results.
type AnalysisStore interface {
	// BeginAnalysis creates a new analysis run and returns its unique ID
	BeginAnalysis(startTime time.Time, configParams map[string]any) (int64, error)

	// EndAnalysis updates the analysis run with completion data
	EndAnalysis(analysisID int64, endTime time.Time, totalEntities int) error

	// RecordEntityMetrics stores one result row of the analysis run
	RecordEntityMetrics(analysisID int64, analysisTime time.Time, metric schema.Metric, row schema.EntityMetrics) error

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	// GetAllAnalysisRuns returns every tracked run ordered by ID
	GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllEntityMetrics returns every stored result row ordered by run and group
	GetAllEntityMetrics() ([]schema.EntityMetricsRecord, error)

	// Close closes the underlying connection
	Close() error
}
