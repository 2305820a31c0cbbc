package schema

// Custom string types for type safety.
type (
	// RiskClass is the bus-factor risk category of an entity.
	RiskClass string

	// Metric selects the ownership-concentration measure.
	Metric string

	// GroupBy selects how file paths are keyed before aggregation.
	GroupBy string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string
)

// All risk classes, most severe first.
const (
	Critical RiskClass = "Critical"
	High     RiskClass = "High"
	Medium   RiskClass = "Medium"
	Low      RiskClass = "Low"
)

// All metrics supported.
const (
	ChurnMetric        Metric = "churn" // default
	EntropyMetric      Metric = "entropy"
	HHIMetric          Metric = "hhi"
	OwnershipMetric    Metric = "ownership"
	CommitNumberMetric Metric = "commit-number"
)

// All grouping modes supported.
const (
	GroupByFile      GroupBy = "file" // default
	GroupByDirectory GroupBy = "directory"
)

// All output modes supported.
const (
	SummaryOut OutputMode = "summary" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Engine defaults.
const (
	DefaultThreshold  = 0.8
	DefaultWindowDays = 90
	DefaultStepDays   = 30
	DefaultTopN       = 10

	// MediumFloorFactor scales the threshold down to the lower edge of the Medium band.
	MediumFloorFactor = 0.75
)

// AllMetrics lists metrics in the order they are presented to users.
var AllMetrics = []Metric{ChurnMetric, EntropyMetric, HHIMetric, OwnershipMetric, CommitNumberMetric}

// RiskyClasses are the classes surfaced by the risky-entity views.
var RiskyClasses = map[RiskClass]struct{}{
	Critical: {},
	High:     {},
	Medium:   {},
}

// ValidMetrics lists all valid metrics.
var ValidMetrics = map[Metric]struct{}{
	ChurnMetric:        {},
	EntropyMetric:      {},
	HHIMetric:          {},
	OwnershipMetric:    {},
	CommitNumberMetric: {},
}

// ValidGroupBy lists all valid grouping modes.
var ValidGroupBy = map[GroupBy]struct{}{
	GroupByFile:      {},
	GroupByDirectory: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	SummaryOut: {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// IsRisky reports whether the class belongs to the risky-entity view.
func (r RiskClass) IsRisky() bool {
	_, ok := RiskyClasses[r]
	return ok
}

// UsesChurn reports whether the metric is computed from line churn rather than commit counts.
func (m Metric) UsesChurn() bool {
	switch m {
	case ChurnMetric, EntropyMetric, HHIMetric:
		return true
	default:
		return false
	}
}

// HasDominantAuthor reports whether the metric attributes the share to a single author.
func (m Metric) HasDominantAuthor() bool {
	switch m {
	case ChurnMetric, OwnershipMetric, CommitNumberMetric:
		return true
	default:
		return false
	}
}
