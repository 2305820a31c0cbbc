package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/estersassis/busfactor/internal/contract"
	"github.com/estersassis/busfactor/schema"
)

// writeCSVResultsForTrend writes one row per trend window.
func writeCSVResultsForTrend(w io.Writer, result schema.TrendResult, fmtFloat func(float64) string) error {
	header := []string{"date", "total_entities", "critical_entities", "risky_percentage"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, p := range result.Points {
			row := []string{
				p.Date.Format(contract.DateTimeFormat),
				strconv.Itoa(p.TotalEntities),
				strconv.Itoa(p.CriticalEntities),
				fmtFloat(p.RiskyPercentage),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
