package core

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/estersassis/busfactor/internal/contract"
	"github.com/estersassis/busfactor/schema"
)

// logAnalysisHeader prints a concise, 2-line header for each analysis to w.
func logAnalysisHeader(w io.Writer, cfg *contract.Config) {
	repoName := filepath.Base(cfg.RepoPath)
	if repoName == "" || repoName == "." {
		repoName = "current"
	}

	// Line 1: The analysis summary (Repo, metric and grouping)
	if cfg.GroupBy == schema.GroupByDirectory {
		_, _ = fmt.Fprintf(w, "Repo: %s (Metric: %s, Group: directory@%d)\n", repoName, cfg.Metric, cfg.Depth)
	} else {
		_, _ = fmt.Fprintf(w, "Repo: %s (Metric: %s)\n", repoName, cfg.Metric)
	}

	// Line 2: The requested date range, open ends shown as such
	_, _ = fmt.Fprintf(w, "Range: %s -> %s\n", rangeBound(cfg.StartTime, "beginning"), rangeBound(cfg.EndTime, "now"))
}

func rangeBound(t time.Time, open string) string {
	if t.IsZero() {
		return open
	}
	return t.Format(contract.DateTimeFormat)
}
