package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/estersassis/busfactor/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrend() schema.TrendResult {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }
	return schema.TrendResult{
		Metric:     schema.ChurnMetric,
		Threshold:  0.8,
		GroupBy:    schema.GroupByFile,
		WindowDays: 30,
		StepDays:   7,
		Start:      day(1),
		End:        day(15),
		Points: []schema.TrendPoint{
			{Date: day(1), TotalEntities: 4, CriticalEntities: 1, RiskyPercentage: 25},
			{Date: day(8), TotalEntities: 2, CriticalEntities: 2, RiskyPercentage: 100},
			{Date: day(15), TotalEntities: 0, CriticalEntities: 0, RiskyPercentage: 0},
		},
	}
}

func TestTrendBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("░", trendBarWidth), trendBar(0))
	assert.Equal(t, strings.Repeat("█", trendBarWidth), trendBar(100))
	assert.Equal(t, strings.Repeat("█", 5)+strings.Repeat("░", 15), trendBar(25))
	assert.Equal(t, strings.Repeat("█", trendBarWidth), trendBar(150))
}

func TestWriteTrendTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := entityConfig(schema.SummaryOut, "")
	cfg.Workers = 4
	fmtFloat, _ := createFormatters(1)

	require.NoError(t, writeTrendTable(&buf, sampleTrend(), cfg, fmtFloat, time.Second))
	out := buf.String()
	assert.Contains(t, out, "2025-01-08")
	assert.Contains(t, out, "100.0")
	assert.Contains(t, out, "Trend of 3 windows (30-day window, 7-day step, metric: churn)")
	assert.Contains(t, out, "with 4 workers")
}

func TestWriteTrendTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, _ := createFormatters(1)
	require.NoError(t, writeTrendTable(&buf, schema.TrendResult{}, entityConfig(schema.SummaryOut, ""), fmtFloat, 0))
	assert.Equal(t, noTrendMessage+"\n", buf.String())
}

func TestWriteCSVResultsForTrend(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, _ := createFormatters(2)
	require.NoError(t, writeCSVResultsForTrend(&buf, sampleTrend(), fmtFloat))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "date,total_entities,critical_entities,risky_percentage", lines[0])
	assert.Equal(t, "2025-01-01T00:00:00Z,4,1,25.00", lines[1])
}

func TestWriteTrendResults_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trend.json")
	require.NoError(t, WriteTrendResults(sampleTrend(), entityConfig(schema.JSONOut, path), time.Second))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded schema.TrendResult
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, 30, decoded.WindowDays)
	require.Len(t, decoded.Points, 3)
	assert.Equal(t, 2, decoded.Points[1].CriticalEntities)
}

func TestWriteTrendResults_Parquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trend.parquet")
	require.NoError(t, WriteTrendResults(sampleTrend(), entityConfig(schema.ParquetOut, path), time.Second))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
