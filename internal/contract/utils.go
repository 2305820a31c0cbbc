package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/estersassis/busfactor/schema"
	"github.com/fatih/color"
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // criticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // highColor represents strong, distinct warning.
	MediumColor   = color.New(color.FgYellow)              // mediumColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // lowColor represents informational / low-priority signal.
)

// StdoutPath is the --output-file value that forces writing to stdout.
const StdoutPath = "-"

// GetColorLabel returns a colored risk label for console output (table).
func GetColorLabel(class schema.RiskClass) string {
	text := string(class)
	switch class {
	case schema.Critical:
		return CriticalColor.Sprint(text)
	case schema.High:
		return HighColor.Sprint(text)
	case schema.Medium:
		return MediumColor.Sprint(text)
	default:
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the file handle for output. An empty path or "-" means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" || filePath == StdoutPath {
		return os.Stdout, nil
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	return os.Create(filePath)
}

// DefaultReportPath returns where exported reports go when no --output-file is given.
func DefaultReportPath(output schema.OutputMode) string {
	return filepath.Join("reports", "busfactor_report."+string(output))
}

// ShouldIgnore returns true if the given path matches any of the exclude patterns.
// It supports simple glob patterns (using filepath.Match) when the pattern
// contains wildcard characters (*, ?, [ ]). Patterns ending with '/' are treated
// as prefixes. Patterns starting with '.' are treated as suffix (extension) matches.
// Anything else matches as a substring.
func ShouldIgnore(path string, excludes []string) bool {
	for _, ex := range excludes {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}

		if strings.ContainsAny(ex, "*?[") {
			pat := strings.ReplaceAll(ex, "**", "*")
			if ok, err := filepath.Match(pat, path); err == nil && ok {
				return true
			}
			if ok, err := filepath.Match(pat, filepath.Base(path)); err == nil && ok {
				return true
			}
			continue
		}

		switch {
		case strings.HasSuffix(ex, "/"):
			if strings.HasPrefix(path, ex) || strings.Contains(path, "/"+ex) {
				return true
			}
		case strings.HasPrefix(ex, "."):
			if strings.HasSuffix(path, ex) {
				return true
			}
		case strings.Contains(path, ex):
			return true
		}
	}
	return false
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".busfactor_cache.db"
	}
	return filepath.Join(homeDir, ".busfactor_cache.db")
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for analysis storage.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".busfactor_analysis.db"
	}
	return filepath.Join(homeDir, ".busfactor_analysis.db")
}

// NormalizeScope turns a user scope into a slash-separated, repo-relative prefix.
// "./src\\core/" becomes "src/core". The repository root yields "".
func NormalizeScope(scope string) string {
	s := strings.ReplaceAll(strings.TrimSpace(scope), `\`, "/")
	s = strings.TrimPrefix(s, "./")
	s = strings.Trim(s, "/")
	if s == "." {
		return ""
	}
	return s
}

// InScope reports whether a repo-relative file path lies under scope.
// An empty scope contains everything.
func InScope(path, scope string) bool {
	if scope == "" {
		return true
	}
	path = strings.TrimPrefix(strings.ReplaceAll(path, `\`, "/"), "/")
	return path == scope || strings.HasPrefix(path, scope+"/")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 so the "..." prefix leaves room for at least one character.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
