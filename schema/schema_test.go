package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    EngineOptions
		wantErr string
	}{
		{"defaults", DefaultEngineOptions(), ""},
		{"threshold one", EngineOptions{Metric: HHIMetric, Threshold: 1, GroupBy: GroupByFile}, ""},
		{"directory depth two", EngineOptions{Metric: EntropyMetric, Threshold: 0.5, GroupBy: GroupByDirectory, Depth: 2}, ""},
		{"file mode ignores depth", EngineOptions{Metric: ChurnMetric, Threshold: 0.5, GroupBy: GroupByFile, Depth: 0}, ""},
		{"unknown metric", EngineOptions{Metric: "gini", Threshold: 0.8, GroupBy: GroupByFile}, "invalid metric 'gini'. must be churn, entropy, hhi, ownership, commit-number"},
		{"zero threshold", EngineOptions{Metric: ChurnMetric, Threshold: 0, GroupBy: GroupByFile}, "invalid threshold"},
		{"threshold above one", EngineOptions{Metric: ChurnMetric, Threshold: 1.01, GroupBy: GroupByFile}, "invalid threshold"},
		{"unknown group", EngineOptions{Metric: ChurnMetric, Threshold: 0.8, GroupBy: "module"}, "invalid group-by 'module'"},
		{"directory depth zero", EngineOptions{Metric: ChurnMetric, Threshold: 0.8, GroupBy: GroupByDirectory, Depth: 0}, "invalid depth 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfiguration))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateTrendWindow(t *testing.T) {
	assert.NoError(t, ValidateTrendWindow(0, 1))
	assert.NoError(t, ValidateTrendWindow(90, 30))
	assert.ErrorIs(t, ValidateTrendWindow(-1, 30), ErrInvalidConfiguration)
	assert.ErrorIs(t, ValidateTrendWindow(90, 0), ErrInvalidConfiguration)
}

func TestRiskClassIsRisky(t *testing.T) {
	assert.True(t, Critical.IsRisky())
	assert.True(t, High.IsRisky())
	assert.True(t, Medium.IsRisky())
	assert.False(t, Low.IsRisky())
}

func TestMetricTraits(t *testing.T) {
	assert.True(t, ChurnMetric.UsesChurn())
	assert.True(t, HHIMetric.UsesChurn())
	assert.False(t, OwnershipMetric.UsesChurn())
	assert.True(t, CommitNumberMetric.HasDominantAuthor())
	assert.False(t, EntropyMetric.HasDominantAuthor())
}

func TestEntityMetricsChurnOrZero(t *testing.T) {
	churn := 42
	assert.Equal(t, 42, EntityMetrics{TotalChurn: &churn}.ChurnOrZero())
	assert.Equal(t, 0, EntityMetrics{}.ChurnOrZero())
	assert.Equal(t, 7, CommitRecord{LinesAdded: 5, LinesDeleted: 2}.Churn())
}
