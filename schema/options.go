package schema

import (
	"fmt"
	"strings"
)

// Validate checks the options against the supported metrics, threshold range and grouping modes.
// Every failure wraps ErrInvalidConfiguration.
func (o EngineOptions) Validate() error {
	if _, ok := ValidMetrics[o.Metric]; !ok {
		return fmt.Errorf("%w: invalid metric '%s'. must be %s", ErrInvalidConfiguration, o.Metric, metricList())
	}
	if !(o.Threshold > 0 && o.Threshold <= 1) {
		return fmt.Errorf("%w: invalid threshold %v. must be in (0, 1]", ErrInvalidConfiguration, o.Threshold)
	}
	if _, ok := ValidGroupBy[o.GroupBy]; !ok {
		return fmt.Errorf("%w: invalid group-by '%s'. must be file or directory", ErrInvalidConfiguration, o.GroupBy)
	}
	if o.GroupBy == GroupByDirectory && o.Depth < 1 {
		return fmt.Errorf("%w: invalid depth %d. must be >= 1 when grouping by directory", ErrInvalidConfiguration, o.Depth)
	}
	return nil
}

// ValidateTrendWindow checks the window and step lengths used by trend analysis.
func ValidateTrendWindow(windowDays, stepDays int) error {
	if windowDays < 0 {
		return fmt.Errorf("%w: invalid window %d. must be >= 0 days", ErrInvalidConfiguration, windowDays)
	}
	if stepDays < 1 {
		return fmt.Errorf("%w: invalid step %d. must be >= 1 day", ErrInvalidConfiguration, stepDays)
	}
	return nil
}

func metricList() string {
	names := make([]string, len(AllMetrics))
	for i, m := range AllMetrics {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
