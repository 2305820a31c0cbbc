package outwriter

import (
	"os"

	"github.com/estersassis/busfactor/internal/contract"
	"golang.org/x/term"
)

// GetMaxTablePathWidth calculates the maximum width for entity paths in table output
// based on terminal width and table configuration.
func GetMaxTablePathWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Risk + Authors + Share + Churn with borders/padding
	baseWidth := 50

	// Concentration bar column
	baseWidth += trendBarWidth + 3

	// Dominant author column
	if cfg.Metric.HasDominantAuthor() {
		baseWidth += 25
	}

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
