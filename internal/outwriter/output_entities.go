package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/estersassis/busfactor/core/algo"
	"github.com/estersassis/busfactor/internal/contract"
	"github.com/estersassis/busfactor/internal/parquet"
	"github.com/estersassis/busfactor/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// noRiskyMessage is printed by the summary when every entity is Low.
const noRiskyMessage = "No high-risk or critical entities found."

// WriteEntityResults outputs snapshot results, dispatching based on the output format configured.
// The summary shows the top-n risky entities; the other formats export the full table.
func WriteEntityResults(results []schema.EntityMetrics, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtPercent := createFormatters(cfg.Precision)
	outputFile := reportPath(cfg)

	sorted := make([]schema.EntityMetrics, len(results))
	copy(sorted, results)
	algo.SortByConcentration(sorted)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(outputFile, func(w io.Writer) error {
			return writeJSONResultsForEntities(w, sorted, cfg)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(outputFile, func(w io.Writer) error {
			return writeCSVResultsForEntities(w, sorted, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeWithFile(outputFile, func(w io.Writer) error {
			return parquet.Write(w, parquet.ConvertEntityResults(sorted, cfg.EngineOptions()))
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(outputFile, func(w io.Writer) error {
			return writeEntityTable(w, results, cfg, fmtPercent, duration)
		}, "Wrote table")
	}
	return nil
}

// writeEntityTable renders the top-n risky entities followed by a totals footer.
func writeEntityTable(w io.Writer, results []schema.EntityMetrics, cfg *contract.Config, fmtPercent func(float64) string, duration time.Duration) error {
	risky := algo.RankRisky(results, cfg.ResultLimit)
	counts := algo.CountByClass(results)

	if len(risky) == 0 {
		if _, err := fmt.Fprintln(w, noRiskyMessage); err != nil {
			return err
		}
	} else {
		table := tablewriter.NewWriter(w)
		showAuthor := cfg.Metric.HasDominantAuthor()

		headers := []string{"Rank", "Entity", "Risk", "Authors", "Share", "Concentration"}
		if showAuthor {
			headers = append(headers, "Dominant Author")
		}
		if cfg.Metric.UsesChurn() {
			headers = append(headers, "Churn")
		}
		table.Header(headers)
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})

		pathWidth := GetMaxTablePathWidth(cfg)
		var data [][]string
		for i, e := range risky {
			row := []string{
				strconv.Itoa(i + 1),
				contract.TruncatePath(e.Group, pathWidth),
				contract.GetColorLabel(e.RiskClass),
				strconv.Itoa(e.NAuthors),
				fmtPercent(e.ConcentrationShare),
				trendBar(100 * e.ConcentrationShare),
			}
			if showAuthor {
				row = append(row, optionalString(e.DominantAuthor, "-", func(s string) string { return s }))
			}
			if cfg.Metric.UsesChurn() {
				row = append(row, optionalString(e.TotalChurn, "-", strconv.Itoa))
			}
			data = append(data, row)
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	riskyTotal := counts[schema.Critical] + counts[schema.High] + counts[schema.Medium]
	if _, err := fmt.Fprintf(w, "Showing %d of %d risky entities out of %d (Critical: %d, High: %d, Medium: %d, Low: %d)\n",
		len(risky), riskyTotal, len(results),
		counts[schema.Critical], counts[schema.High], counts[schema.Medium], counts[schema.Low]); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Metric: %s, threshold: %v, grouped by %s. Analysis completed in %v. Cache backend: %s\n",
		cfg.Metric, cfg.Threshold, cfg.GroupBy, duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}
