// Package cmd defines the command-line interface for busfactor.
package cmd

import (
	"github.com/estersassis/busfactor/internal/contract"
	"github.com/estersassis/busfactor/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(analysisCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the analysis subcommands to the parent analysis command
	analysisCmd.AddCommand(analysisClearCmd)
	analysisCmd.AddCommand(analysisStatusCmd)
	analysisCmd.AddCommand(analysisExportCmd)
	analysisCmd.AddCommand(analysisMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("metric", "m", string(schema.ChurnMetric), "Metric: churn or entropy or hhi or ownership or commit-number")
	rootCmd.PersistentFlags().Float64("threshold", schema.DefaultThreshold, "Concentration share at or above which an entity is High risk, in (0, 1]")
	rootCmd.PersistentFlags().String("group-by", string(schema.GroupByFile), "Group results by file or directory")
	rootCmd.PersistentFlags().Int("depth", 1, "Directory depth used with --group-by directory")
	rootCmd.PersistentFlags().String("scope", "", "Only analyze files under this path prefix")
	rootCmd.PersistentFlags().String("since", "", "Start date in ISO8601 or time ago")
	rootCmd.PersistentFlags().String("until", "", "End date in ISO8601 or time ago")
	rootCmd.PersistentFlags().Int("window", schema.DefaultWindowDays, "Trend window length in days")
	rootCmd.PersistentFlags().Int("step", schema.DefaultStepDays, "Days between trend windows")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent trend windows")
	rootCmd.PersistentFlags().IntP("top-n", "n", contract.DefaultResultLimit, "Number of risky entities to display")
	rootCmd.PersistentFlags().StringP("format", "f", string(schema.SummaryOut), "Output format: summary or csv or json or parquet")
	rootCmd.PersistentFlags().StringP("output-file", "o", "", "Optional path to write output to ('-' for stdout)")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of path prefixes or patterns to ignore")
	rootCmd.PersistentFlags().String("ignore-file", contract.DefaultIgnoreFile, "Gitignore-style file of paths to skip, relative to the repository root")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("analysis-backend", "", "Analysis tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("analysis-db-connect", "", "Database connection string for analysis tracking (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: panic, fatal, error, warn, info, debug, trace")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of analyzeCmd to Viper
	analyzeCmd.Flags().Bool("trend", false, "Compute the sliding-window trend instead of a snapshot")
	if err := viper.BindPFlags(analyzeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analyze flags", err)
	}

	// Bind all flags of analysisMigrateCmd to Viper
	analysisMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(analysisMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analysis migrate flags", err)
	}
}
