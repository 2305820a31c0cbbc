package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.November, 3, 10, 0, 0, 0, time.UTC)

// TestParseRelativeTimeUnit covers various valid and invalid cases.
func TestParseRelativeTimeUnit(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{"valid plural months (mixed case)", "3 MoNtHs AgO", fixedNow.AddDate(0, -3, 0), false},
		{"valid singular week", "1 Week Ago", fixedNow.AddDate(0, 0, -7), false},
		{"valid 10 days", "10 DAYS AGO", fixedNow.AddDate(0, 0, -10), false},
		{"valid hours", "5 hours ago", fixedNow.Add(-5 * time.Hour), false},
		{"valid minutes", "1 minute ago", fixedNow.Add(-time.Minute), false},
		{"valid year", "2 years ago", fixedNow.AddDate(-2, 0, 0), false},
		{"invalid missing ago", "2 years", time.Time{}, true},
		{"invalid bad unit (decades)", "4 decades ago", time.Time{}, true},
		{"invalid non-numeric value", "one year ago", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tResult, err := ParseRelativeTime(tt.input, fixedNow)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tResult)
		})
	}
}

func TestParseTimeInput(t *testing.T) {
	got, err := ParseTimeInput("2024-03-05T10:11:12+02:00", fixedNow)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 5, 8, 11, 12, 0, time.UTC)))

	got, err = ParseTimeInput(" 2024-03-05 ", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseTimeInput("6 months ago", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.AddDate(0, -6, 0), got)

	_, err = ParseTimeInput("03/05/2024", fixedNow)
	assert.ErrorContains(t, err, "expected RFC3339, YYYY-MM-DD")
}
