package contract

import (
	"strings"
	"testing"
)

// FuzzShouldIgnore fuzzes the ShouldIgnore function with random paths and exclude patterns.
func FuzzShouldIgnore(f *testing.F) {
	seeds := []struct {
		path     string
		excludes string // comma-separated
	}{
		{"main.go", "*.log"},
		{"vendor/package/file.go", "vendor/"},
		{"test_file.min.js", "*.min.js"},
		{"config.json", ".json"},
		{"", ""},
		{"very/long/path/to/file.txt", "**/temp/**"},
	}
	for _, seed := range seeds {
		f.Add(seed.path, seed.excludes)
	}

	f.Fuzz(func(_ *testing.T, path string, excludesStr string) {
		var excludes []string
		for ex := range strings.SplitSeq(excludesStr, ",") {
			if trimmed := strings.TrimSpace(ex); trimmed != "" {
				excludes = append(excludes, trimmed)
			}
		}
		_ = ShouldIgnore(path, excludes)
	})
}

// FuzzIgnoreMatcher feeds arbitrary pattern files and paths to the matcher.
func FuzzIgnoreMatcher(f *testing.F) {
	f.Add("vendor/\n!vendor/keep.go\n", "vendor/keep.go")
	f.Add("/build\n*.lock\n", "a/b/go.lock")
	f.Add("[", "x")

	f.Fuzz(func(_ *testing.T, patterns string, path string) {
		m, err := ParseIgnore(strings.NewReader(patterns))
		if err != nil {
			return
		}
		_ = m.Match(path)
	})
}
