package outwriter

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/estersassis/busfactor/internal/contract"
	"github.com/estersassis/busfactor/internal/parquet"
	"github.com/estersassis/busfactor/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

const (
	trendDateFormat = "2006-01-02"
	trendBarWidth   = 20

	noTrendMessage = "Insufficient data to plot trend."
)

// WriteTrendResults outputs trend results, dispatching based on the output format configured.
func WriteTrendResults(result schema.TrendResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	outputFile := reportPath(cfg)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(outputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON trend results"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(outputFile, func(w io.Writer) error {
			return writeCSVResultsForTrend(w, result, fmtFloat)
		}, "Wrote CSV trend results"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeWithFile(outputFile, func(w io.Writer) error {
			return parquet.Write(w, parquet.ConvertTrendPoints(result.Points))
		}, "Wrote Parquet trend results"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := writeWithFile(outputFile, func(w io.Writer) error {
			return writeTrendTable(w, result, cfg, fmtFloat, duration)
		}, "Wrote trend table"); err != nil {
			return fmt.Errorf("error writing trend table output: %w", err)
		}
	}
	return nil
}

// writeTrendTable prints one row per window with a bar proportional to the risky percentage.
func writeTrendTable(w io.Writer, result schema.TrendResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if len(result.Points) == 0 {
		_, err := fmt.Fprintln(w, noTrendMessage)
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Date", "Entities", "Critical", "Risky %", "Trend"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range result.Points {
		data = append(data, []string{
			p.Date.Format(trendDateFormat),
			strconv.Itoa(p.TotalEntities),
			strconv.Itoa(p.CriticalEntities),
			fmtFloat(p.RiskyPercentage),
			trendBar(p.RiskyPercentage),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Trend of %d windows (%d-day window, %d-day step, metric: %s) completed in %v with %d workers. Cache backend: %s\n",
		len(result.Points), result.WindowDays, result.StepDays, result.Metric, duration, cfg.Workers, cfg.CacheBackend)
	return err
}

// trendBar draws a fixed-width bar for a percentage in [0, 100].
func trendBar(pct float64) string {
	filled := int(math.Round(pct / 100 * trendBarWidth))
	filled = max(0, min(trendBarWidth, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", trendBarWidth-filled)
}
