package contract

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultIgnoreFile is the ignore file looked up at the repository root.
const DefaultIgnoreFile = ".busfactorignore"

type ignoreRule struct {
	pattern string
	negate  bool
	globs   []glob.Glob
}

// IgnoreMatcher matches repo-relative paths against gitignore-style patterns.
// The last rule that matches a path decides; a "!" rule re-includes it.
type IgnoreMatcher struct {
	rules []ignoreRule
}

// LoadIgnoreFile reads patterns from path. A missing file yields an empty matcher.
func LoadIgnoreFile(path string) (*IgnoreMatcher, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &IgnoreMatcher{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open ignore file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return ParseIgnore(f)
}

// ParseIgnore compiles one pattern per line. Blank lines and "#" comments are skipped.
func ParseIgnore(r io.Reader) (*IgnoreMatcher, error) {
	m := &IgnoreMatcher{}
	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rule, err := compileIgnoreRule(line)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern on line %d %q: %w", lineNo, line, err)
		}
		m.rules = append(m.rules, rule)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ignore patterns: %w", err)
	}
	return m, nil
}

// compileIgnoreRule expands one gitignore-style line into globs:
// a leading "/" anchors to the root, a trailing "/" matches everything below a
// directory, and a pattern without "/" matches at any depth.
func compileIgnoreRule(line string) (ignoreRule, error) {
	rule := ignoreRule{pattern: line}
	if strings.HasPrefix(line, "!") {
		rule.negate = true
		line = line[1:]
	}
	if strings.HasPrefix(line, `\`) {
		line = line[1:]
	}

	dirOnly := strings.HasSuffix(line, "/")
	line = strings.TrimSuffix(line, "/")
	anchored := strings.Contains(line, "/")
	line = strings.TrimPrefix(line, "/")
	if line == "" {
		return rule, errors.New("empty pattern")
	}

	var bases []string
	if anchored {
		bases = []string{line}
	} else {
		bases = []string{line, "**/" + line}
	}

	var patterns []string
	for _, b := range bases {
		if !dirOnly {
			patterns = append(patterns, b)
		}
		patterns = append(patterns, b+"/**")
	}

	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return rule, err
		}
		rule.globs = append(rule.globs, g)
	}
	return rule, nil
}

// Empty reports whether the matcher has no rules.
func (m *IgnoreMatcher) Empty() bool {
	return m == nil || len(m.rules) == 0
}

// Patterns returns the source lines of the rules in order.
func (m *IgnoreMatcher) Patterns() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.rules))
	for i, r := range m.rules {
		out[i] = r.pattern
	}
	return out
}

// Match reports whether path is ignored.
func (m *IgnoreMatcher) Match(path string) bool {
	if m.Empty() {
		return false
	}
	path = strings.TrimPrefix(strings.ReplaceAll(path, `\`, "/"), "/")
	ignored := false
	for _, r := range m.rules {
		for _, g := range r.globs {
			if g.Match(path) {
				ignored = !r.negate
				break
			}
		}
	}
	return ignored
}
