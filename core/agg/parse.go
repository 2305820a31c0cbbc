package agg

import (
	"strconv"
	"strings"
	"time"

	"github.com/estersassis/busfactor/schema"
)

// commitHeader is the parsed "--hash|email|name|date" line that opens every commit.
type commitHeader struct {
	hash   string
	author string
	date   time.Time
}

// ParseActivityLog converts `git log --numstat` output into one record per (commit, file).
// File lines seen before any valid header are dropped.
func ParseActivityLog(out []byte) []schema.CommitRecord {
	var (
		records []schema.CommitRecord
		current commitHeader
		valid   bool
	)
	for l := range strings.SplitSeq(string(out), "\n") {
		l = strings.Trim(l, " \t\r\n'")
		if l == "" {
			continue
		}
		if strings.HasPrefix(l, "--") {
			current, valid = parseCommitHeader(l)
			continue
		}
		if !valid {
			continue
		}

		path, add, del, ok := parseFileStatsLine(l)
		if !ok {
			continue
		}
		records = append(records, schema.CommitRecord{
			File:         path,
			Author:       current.author,
			LinesAdded:   add,
			LinesDeleted: del,
			CommitHash:   current.hash,
			Date:         current.date,
		})
	}
	return records
}

// parseCommitHeader extracts hash, author identity and date from a commit header line.
// The email identifies the author; the name is the fallback when the email is empty.
func parseCommitHeader(line string) (commitHeader, bool) {
	if !strings.HasPrefix(line, "--") || len(line) < 5 {
		return commitHeader{}, false
	}
	parts := strings.SplitN(line[2:], "|", 4) // hash|email|name|date
	if len(parts) != 4 {
		return commitHeader{}, false
	}

	author := strings.TrimSpace(parts[1])
	if author == "" {
		author = strings.TrimSpace(parts[2])
	}
	if author == "" {
		return commitHeader{}, false
	}

	h := commitHeader{hash: parts[0], author: author}
	if date, err := time.Parse(time.RFC3339, strings.TrimSpace(parts[3])); err == nil {
		h.date = date
	}
	return h, true
}

// parseFileStatsLine parses "added<TAB>deleted<TAB>path".
func parseFileStatsLine(line string) (string, int, int, bool) {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) < 3 {
		return "", 0, 0, false
	}
	path := unquotePath(parts[2])
	if strings.Contains(path, " => ") {
		path = unquotePath(resolveRenamePath(path))
	}
	if path == "" {
		return "", 0, 0, false
	}
	return path, parseChurnValue(parts[0]), parseChurnValue(parts[1]), true
}

// unquotePath decodes a C-style quoted path as git prints names containing
// quotes, backslashes or control characters. Anything else is returned as is.
func unquotePath(path string) string {
	if len(path) < 2 || path[0] != '"' || path[len(path)-1] != '"' {
		return path
	}
	if unquoted, err := strconv.Unquote(path); err == nil {
		return unquoted
	}
	return path
}

// parseChurnValue converts a churn string to int, handling binary "-" as 0.
func parseChurnValue(s string) int {
	if s == "-" {
		return 0
	}
	if val, err := strconv.Atoi(s); err == nil && val >= 0 {
		return val
	}
	return 0
}

// resolveRenamePath returns the destination of a numstat rename, either
// "old => new" or "prefix{old => new}suffix". Malformed input yields "".
func resolveRenamePath(path string) string {
	braceStart := strings.Index(path, "{")
	if braceStart == -1 {
		parts := strings.SplitN(path, " => ", 2)
		if len(parts) != 2 {
			return ""
		}
		return strings.TrimSpace(parts[1])
	}

	braceEnd := strings.Index(path, "}")
	if braceEnd == -1 || braceStart >= braceEnd {
		return ""
	}
	prefix := path[:braceStart]
	renamePart := path[braceStart+1 : braceEnd]
	suffix := path[braceEnd+1:]

	renameParts := strings.SplitN(renamePart, " => ", 2)
	if len(renameParts) != 2 {
		return ""
	}
	// "dir/{ => sub}/a.go" and "dir/{sub => }/a.go" leave a doubled slash behind.
	return strings.ReplaceAll(prefix+renameParts[1]+suffix, "//", "/")
}
