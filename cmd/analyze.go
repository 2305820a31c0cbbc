package cmd

import (
	"fmt"
	"os"

	"github.com/estersassis/busfactor/core"
	"github.com/spf13/cobra"
)

// analyzeCmd computes bus-factor risk for every file or directory.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [repo-path|url]",
	Short: "Rank files or directories by bus-factor risk.",
	Long: `Mine Git history and measure how concentrated authorship is per file or directory.

Each entity gets a concentration share under the selected metric and a risk class:
- Critical: a single author
- High: share at or above --threshold
- Medium: share at or above 75% of --threshold
- Low: everything else

Metrics:
- churn: share of lines changed by the dominant author (default)
- entropy: 1 - normalized Shannon entropy of per-author churn
- hhi: Herfindahl-Hirschman index of per-author churn
- ownership, commit-number: share of commits by the dominant author

The repository can be a local path, a sub-directory (which becomes the scope) or a
remote URL, which is cloned to a temporary directory first.

Examples:
  # Riskiest files of the current repository
  busfactor analyze

  # Directory view two levels deep, stricter threshold
  busfactor analyze --group-by directory --depth 2 --threshold 0.7

  # Only the last year, exported to CSV
  busfactor analyze --since "1 year ago" --format csv --output-file risk.csv

  # Trend of critical entities over 90-day windows
  busfactor analyze --trend --window 90 --step 30`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		_, _ = fmt.Fprintf(os.Stderr, "Analysing repository: %s\n", cfg.RepoSource)
		return core.ExecuteAnalyze(rootCtx, cfg, cacheManager)
	},
}

// trendCmd is a shortcut for analyze --trend.
var trendCmd = &cobra.Command{
	Use:   "trend [repo-path|url]",
	Short: "Show how the share of critical entities evolves over time.",
	Long: `Re-run the bus-factor aggregation over sliding windows of history.

Each point covers the commits in [date - window, date] and reports how many entities
were seen, how many were Critical, and the critical percentage. Windows without
commits are skipped.

Examples:
  # Quarterly windows, monthly steps
  busfactor trend --window 90 --step 30

  # Directory-level trend as JSON
  busfactor trend --group-by directory --format json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		_, _ = fmt.Fprintf(os.Stderr, "Analysing repository: %s\n", cfg.RepoSource)
		cfg.Trend = true
		return core.ExecuteTrend(rootCtx, cfg, cacheManager)
	},
}
