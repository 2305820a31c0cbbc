package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIgnoreMatcher(t *testing.T) {
	patterns := `
# generated code
*.pb.go
vendor/
/build
docs/*.md
!docs/keep.md
\#notes
`
	m, err := ParseIgnore(strings.NewReader(patterns))
	require.NoError(t, err)
	assert.False(t, m.Empty())
	assert.Equal(t, []string{"*.pb.go", "vendor/", "/build", "docs/*.md", "!docs/keep.md", `\#notes`}, m.Patterns())

	tests := []struct {
		path    string
		ignored bool
	}{
		{"api/v1/types.pb.go", true},
		{"types.pb.go", true},
		{"vendor/github.com/x/y.go", true},
		{"third_party/vendor/z.go", true},
		{"vendor", false}, // directory-only rule needs something below it
		{"build/out.bin", true},
		{"build", true},
		{"tools/build/main.go", false}, // anchored to the root
		{"docs/intro.md", true},
		{"docs/keep.md", false},
		{"docs/deep/intro.md", false},
		{"#notes", true},
		{"src/main.go", false},
		{`vendor\win\path.go`, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.ignored, m.Match(tt.path))
		})
	}
}

func TestIgnoreMatcherEmpty(t *testing.T) {
	var m *IgnoreMatcher
	assert.True(t, m.Empty())
	assert.False(t, m.Match("a.go"))
	assert.Nil(t, m.Patterns())

	m, err := ParseIgnore(strings.NewReader("\n# only comments\n\n"))
	require.NoError(t, err)
	assert.True(t, m.Empty())
}

func TestParseIgnoreInvalidPattern(t *testing.T) {
	_, err := ParseIgnore(strings.NewReader("ok.go\n[unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = ParseIgnore(strings.NewReader("!/\n"))
	assert.Error(t, err)
}

func TestLoadIgnoreFile(t *testing.T) {
	dir := t.TempDir()

	m, err := LoadIgnoreFile(filepath.Join(dir, DefaultIgnoreFile))
	require.NoError(t, err, "a missing file is not an error")
	assert.True(t, m.Empty())

	path := filepath.Join(dir, DefaultIgnoreFile)
	require.NoError(t, os.WriteFile(path, []byte("*.lock\n"), 0o644))
	m, err = LoadIgnoreFile(path)
	require.NoError(t, err)
	assert.True(t, m.Match("go.lock"))
}
