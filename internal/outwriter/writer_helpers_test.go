package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		name        string
		precision   int
		value       float64
		wantFloat   string
		wantPercent string
	}{
		{"precision 2", 2, 0.81234, "0.81", "81.23%"},
		{"precision 1", 1, 0.5, "0.5", "50.0%"},
		{"precision 4", 4, 1, "1.0000", "100.0000%"},
		{"zero", 2, 0, "0.00", "0.00%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fmtFloat, fmtPercent := createFormatters(tt.precision)
			assert.Equal(t, tt.wantFloat, fmtFloat(tt.value))
			assert.Equal(t, tt.wantPercent, fmtPercent(tt.value))
		})
	}
}

func TestOptionalString(t *testing.T) {
	n := 42
	assert.Equal(t, "42", optionalString(&n, "-", func(v int) string { return "42" }))
	assert.Equal(t, "-", optionalString[int](nil, "-", func(v int) string { return "x" }))
}

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		expected string
	}{
		{
			name:     "simple object",
			data:     map[string]any{"name": "test", "value": 42},
			expected: "{\n  \"name\": \"test\",\n  \"value\": 42\n}\n",
		},
		{
			name:     "array",
			data:     []string{"a", "b"},
			expected: "[\n  \"a\",\n  \"b\"\n]\n",
		},
		{
			name:     "string",
			data:     "hello",
			expected: `"hello"` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeJSON(&buf, tt.data))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriteJSONError(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSON(&buf, make(chan int))
	assert.ErrorContains(t, err, "failed to encode JSON")
}

func TestWriteCSVWithHeader(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		rows     [][]string
		expected string
	}{
		{
			name:     "simple csv",
			header:   []string{"group", "risk_class"},
			rows:     [][]string{{"a.go", "Critical"}, {"b.go", "Low"}},
			expected: "group,risk_class\na.go,Critical\nb.go,Low\n",
		},
		{
			name:     "empty rows",
			header:   []string{"col1", "col2"},
			expected: "col1,col2\n",
		},
		{
			name:     "values with commas",
			header:   []string{"group", "author"},
			rows:     [][]string{{"a.go", "Doe, Jane"}},
			expected: "group,author\na.go,\"Doe, Jane\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := writeCSVWithHeader(&buf, tt.header, func(w *csv.Writer) error {
				for _, row := range tt.rows {
					if err := w.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriteCSVWithHeaderError(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"col"}, func(w *csv.Writer) error {
		return assert.AnError
	})
	assert.Equal(t, assert.AnError, err)
}

func TestWriteWithFile(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		called := false
		err := writeWithFile("-", func(w io.Writer) error {
			called = true
			assert.Equal(t, os.Stdout, w)
			return nil
		}, "Test message")
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reports", "out.txt")
		err := writeWithFile(path, func(w io.Writer) error {
			_, err := io.WriteString(w, "content")
			return err
		}, "Test message")
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "content", string(content))
	})

	t.Run("writer error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")
		err := writeWithFile(path, func(w io.Writer) error { return assert.AnError }, "Test message")
		assert.Equal(t, assert.AnError, err)
	})

	t.Run("parent is a file", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, nil, 0o600))
		err := writeWithFile(filepath.Join(blocker, "out.txt"), func(w io.Writer) error { return nil }, "Test message")
		assert.Error(t, err)
	})
}

func TestWriteJSONIntegration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")
	err := writeWithFile(path, func(w io.Writer) error {
		return writeJSON(w, map[string]any{"metric": "churn", "count": 3})
	}, "Wrote JSON")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	var result map[string]any
	require.NoError(t, json.Unmarshal(content, &result))
	assert.Equal(t, "churn", result["metric"])
	assert.Equal(t, float64(3), result["count"])
	assert.True(t, strings.HasSuffix(string(content), "\n"))
}
