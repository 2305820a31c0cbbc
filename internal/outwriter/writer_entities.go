package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/estersassis/busfactor/internal/contract"
	"github.com/estersassis/busfactor/schema"
)

// entityCSVHeader lists the exported columns in order.
var entityCSVHeader = []string{
	"rank",
	"group",
	"risk_class",
	"n_authors",
	"concentration_share",
	"dominant_author",
	"dominant_author_contribution",
	"total_churn",
}

// writeCSVResultsForEntities writes the full, ranked entity table.
func writeCSVResultsForEntities(w io.Writer, results []schema.EntityMetrics, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, entityCSVHeader, func(cw *csv.Writer) error {
		for i, e := range results {
			rec := []string{
				strconv.Itoa(i + 1),
				e.Group,
				string(e.RiskClass),
				strconv.Itoa(e.NAuthors),
				fmtFloat(e.ConcentrationShare),
				optionalString(e.DominantAuthor, "", func(s string) string { return s }),
				optionalString(e.DominantAuthorContribution, "", fmtFloat),
				optionalString(e.TotalChurn, "", strconv.Itoa),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// jsonEntityReport is the JSON document written for snapshot runs.
type jsonEntityReport struct {
	Metric    schema.Metric       `json:"metric"`
	Threshold float64             `json:"threshold"`
	GroupBy   schema.GroupBy      `json:"group_by"`
	Depth     int                 `json:"depth,omitempty"`
	Scope     string              `json:"scope,omitempty"`
	Entities  []jsonEntityMetrics `json:"entities"`
}

type jsonEntityMetrics struct {
	Rank int `json:"rank"`
	schema.EntityMetrics
}

// writeJSONResultsForEntities writes the ranked entity table with the parameters that produced it.
func writeJSONResultsForEntities(w io.Writer, results []schema.EntityMetrics, cfg *contract.Config) error {
	report := jsonEntityReport{
		Metric:    cfg.Metric,
		Threshold: cfg.Threshold,
		GroupBy:   cfg.GroupBy,
		Scope:     cfg.Scope,
		Entities:  make([]jsonEntityMetrics, len(results)),
	}
	if cfg.GroupBy == schema.GroupByDirectory {
		report.Depth = cfg.Depth
	}
	for i, e := range results {
		report.Entities[i] = jsonEntityMetrics{Rank: i + 1, EntityMetrics: e}
	}
	return writeJSON(w, report)
}
