package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/estersassis/busfactor/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = schema.DefaultTopN
	MaxResultLimit     = 1000
	DefaultPrecision   = 2
	MaxPrecision       = 4
)

// DefaultWorkers is the default number of concurrent trend windows.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for the analysis.
// This struct is the "final, validated" config.
type Config struct {
	RepoPath   string // Git root that is analysed
	RepoSource string // Argument as given: a local path or a remote URL
	StartTime  time.Time
	EndTime    time.Time
	Scope      string

	Metric    schema.Metric
	Threshold float64
	GroupBy   schema.GroupBy
	Depth     int

	Trend      bool
	WindowDays int
	StepDays   int
	Workers    int

	ResultLimit int
	Output      schema.OutputMode
	OutputFile  string
	Precision   int
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	Excludes   []string
	IgnoreFile string
	Ignore     *IgnoreMatcher

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext

	LogLevel string
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig enables profiling when a file prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) {
	profilePrefix = strings.TrimSpace(profilePrefix)
	profile.Enabled = profilePrefix != ""
	profile.Prefix = profilePrefix
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	Metric            string  `mapstructure:"metric"`
	Threshold         float64 `mapstructure:"threshold"`
	GroupBy           string  `mapstructure:"group-by"`
	Depth             int     `mapstructure:"depth"`
	Scope             string  `mapstructure:"scope"`
	Since             string  `mapstructure:"since"`
	Until             string  `mapstructure:"until"`
	Trend             bool    `mapstructure:"trend"`
	Window            int     `mapstructure:"window"`
	Step              int     `mapstructure:"step"`
	Workers           int     `mapstructure:"workers"`
	TopN              int     `mapstructure:"top-n"`
	Format            string  `mapstructure:"format"`
	OutputFile        string  `mapstructure:"output-file"`
	Precision         int     `mapstructure:"precision"`
	Width             int     `mapstructure:"width"`
	Color             string  `mapstructure:"color"`
	Exclude           string  `mapstructure:"exclude"`
	IgnoreFile        string  `mapstructure:"ignore-file"`
	CacheBackend      string  `mapstructure:"cache-backend"`
	CacheDBConnect    string  `mapstructure:"cache-db-connect"`
	AnalysisBackend   string  `mapstructure:"analysis-backend"`
	AnalysisDBConnect string  `mapstructure:"analysis-db-connect"`
	LogLevel          string  `mapstructure:"log-level"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Excludes != nil {
		clone.Excludes = make([]string, len(c.Excludes))
		copy(clone.Excludes, c.Excludes)
	}
	return &clone
}

// EngineOptions returns the aggregation parameters of the config.
func (c *Config) EngineOptions() schema.EngineOptions {
	return schema.EngineOptions{
		Metric:    c.Metric,
		Threshold: c.Threshold,
		GroupBy:   c.GroupBy,
		Depth:     c.Depth,
	}
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := SetLogLevel(input.LogLevel); err != nil {
		return err
	}
	cfg.LogLevel = input.LogLevel

	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateEngineInputs(cfg, input); err != nil {
		return err
	}
	if err := validateTrendInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input, time.Now()); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := resolveGitPathAndScope(ctx, cfg, client, input); err != nil {
		return err
	}
	return loadIgnoreRules(cfg)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the output and filtering fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = strings.TrimSpace(input.OutputFile)
	cfg.Width = input.Width
	cfg.IgnoreFile = input.IgnoreFile

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.TopN <= 0 || input.TopN > MaxResultLimit {
		return fmt.Errorf("top-n must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.TopN)
	}
	cfg.ResultLimit = input.TopN

	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Format))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid format '%s'. must be summary, csv, json, parquet", input.Format)
	}

	cfg.Excludes = nil
	for p := range strings.SplitSeq(input.Exclude, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			cfg.Excludes = append(cfg.Excludes, trimmed)
		}
	}
	return nil
}

// validateEngineInputs checks metric, threshold and grouping before any mining happens.
func validateEngineInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Metric = schema.Metric(strings.ToLower(strings.TrimSpace(input.Metric)))
	cfg.Threshold = input.Threshold
	cfg.GroupBy = schema.GroupBy(strings.ToLower(strings.TrimSpace(input.GroupBy)))
	cfg.Depth = input.Depth
	return cfg.EngineOptions().Validate()
}

// validateTrendInputs checks the window parameters used by trend mode.
func validateTrendInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Trend = input.Trend
	cfg.WindowDays = input.Window
	cfg.StepDays = input.Step
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers
	return schema.ValidateTrendWindow(cfg.WindowDays, cfg.StepDays)
}

// processTimeRange parses --since and --until. Unset bounds stay zero, meaning full history.
func processTimeRange(cfg *Config, input *ConfigRawInput, now time.Time) error {
	cfg.StartTime, cfg.EndTime = time.Time{}, time.Time{}

	if input.Since != "" {
		t, err := ParseTimeInput(input.Since, now)
		if err != nil {
			return fmt.Errorf("invalid --since: %w", err)
		}
		cfg.StartTime = t
	}
	if input.Until != "" {
		t, err := ParseTimeInput(input.Until, now)
		if err != nil {
			return fmt.Errorf("invalid --until: %w", err)
		}
		cfg.EndTime = t
	}

	if !cfg.StartTime.IsZero() && !cfg.EndTime.IsZero() && cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("start time (%s) cannot be after end time (%s)", cfg.StartTime.Format(DateTimeFormat), cfg.EndTime.Format(DateTimeFormat))
	}
	return nil
}

// validateBackendConfigs validates cache and analysis backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.AnalysisBackend]; !ok {
		return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
	}
	cfg.AnalysisDBConnect = input.AnalysisDBConnect
	if err := ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
		return err
	}

	if cfg.CacheBackend == schema.SQLiteBackend && cfg.AnalysisBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		analysisDBPath := cfg.AnalysisDBConnect
		if analysisDBPath == "" {
			analysisDBPath = GetAnalysisDBFilePath()
		}
		if cacheDBPath == analysisDBPath {
			return fmt.Errorf("cache and analysis storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}
	if cfg.CacheBackend == cfg.AnalysisBackend && cfg.CacheBackend != schema.SQLiteBackend &&
		cfg.CacheBackend != schema.NoneBackend && cfg.CacheDBConnect == cfg.AnalysisDBConnect {
		return fmt.Errorf("cache and analysis storage must use different %s databases", cfg.CacheBackend)
	}
	return nil
}

// resolveGitPathAndScope resolves the Git root and turns a sub-directory argument into the scope.
// An explicit --scope takes precedence.
func resolveGitPathAndScope(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if cfg.RepoSource == "" {
		cfg.RepoSource = input.RepoPathStr
	}
	cfg.Scope = NormalizeScope(input.Scope)

	absSearchPath, err := filepath.Abs(input.RepoPathStr)
	if err != nil {
		return err
	}
	absSearchPath = filepath.Clean(absSearchPath)

	info, statErr := os.Stat(absSearchPath)
	if statErr != nil {
		return fmt.Errorf("repository path %q does not exist: %w", input.RepoPathStr, statErr)
	}
	gitContextPath := absSearchPath
	if !info.IsDir() {
		gitContextPath = filepath.Dir(absSearchPath)
	}

	gitRoot, err := client.GetRepoRoot(ctx, gitContextPath)
	if err != nil {
		return err
	}
	cfg.RepoPath = gitRoot

	if cfg.Scope != "" || absSearchPath == gitRoot {
		return nil
	}
	relativePath, err := filepath.Rel(gitRoot, absSearchPath)
	if err != nil {
		return err
	}
	cfg.Scope = NormalizeScope(filepath.ToSlash(relativePath))
	return nil
}

// loadIgnoreRules reads the ignore file, resolving a relative path against the repository root.
func loadIgnoreRules(cfg *Config) error {
	if cfg.IgnoreFile == "" {
		cfg.Ignore = &IgnoreMatcher{}
		return nil
	}
	path := cfg.IgnoreFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.RepoPath, path)
	}
	matcher, err := LoadIgnoreFile(path)
	if err != nil {
		return err
	}
	cfg.Ignore = matcher
	return nil
}
