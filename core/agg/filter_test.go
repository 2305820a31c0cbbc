package agg

import (
	"strings"
	"testing"

	"github.com/estersassis/busfactor/internal/contract"
	"github.com/estersassis/busfactor/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordsFor(files ...string) []schema.CommitRecord {
	out := make([]schema.CommitRecord, len(files))
	for i, f := range files {
		out[i] = schema.CommitRecord{File: f, Author: "a@x.io", LinesAdded: 1}
	}
	return out
}

func filesOf(records []schema.CommitRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.File
	}
	return out
}

func TestFilterRecords(t *testing.T) {
	records := recordsFor(
		"src/core/a.go",
		"src/core/a_test.go",
		"src/vendor/lib.go",
		"srcx/b.go",
		"docs/guide.md",
		"src/gen/api.pb.go",
	)
	ignore, err := contract.ParseIgnore(strings.NewReader("*.pb.go\n"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		scope    string
		excludes []string
		ignore   *contract.IgnoreMatcher
		want     []string
	}{
		{
			name: "no filters keep everything",
			want: filesOf(records),
		},
		{
			name:  "scope is a path prefix, not a string prefix",
			scope: "src",
			want:  []string{"src/core/a.go", "src/core/a_test.go", "src/vendor/lib.go", "src/gen/api.pb.go"},
		},
		{
			name:     "excludes",
			excludes: []string{"vendor/", "*_test.go"},
			want:     []string{"src/core/a.go", "srcx/b.go", "docs/guide.md", "src/gen/api.pb.go"},
		},
		{
			name:     "all three combined",
			scope:    "src",
			excludes: []string{"vendor/"},
			ignore:   ignore,
			want:     []string{"src/core/a.go", "src/core/a_test.go"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRecords(records, tt.scope, tt.excludes, tt.ignore)
			assert.Equal(t, tt.want, filesOf(got))
		})
	}
}

func TestFilterRecordsEmpty(t *testing.T) {
	got := FilterRecords(nil, "src", nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
