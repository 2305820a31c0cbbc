package algo

import (
	"testing"

	"github.com/estersassis/busfactor/schema"
	"github.com/stretchr/testify/assert"
)

func TestMediumFloor(t *testing.T) {
	assert.Equal(t, 0.6, MediumFloor(0.8))
	assert.Equal(t, 0.45, MediumFloor(0.6))
	assert.Equal(t, 0.525, MediumFloor(0.7))
	assert.Equal(t, 0.75, MediumFloor(1))
	assert.Equal(t, 0.25, MediumFloor(0.33333))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		nAuthors  int
		share     float64
		threshold float64
		expected  schema.RiskClass
	}{
		{"single author low share", 1, 0.1, 0.8, schema.Critical},
		{"single author zero share", 1, 0, 1, schema.Critical},
		{"at threshold", 2, 0.8, 0.8, schema.High},
		{"just below threshold", 2, 0.799, 0.8, schema.Medium},
		{"at medium floor", 2, 0.6, 0.8, schema.Medium},
		{"just below medium floor", 2, 0.599, 0.8, schema.Low},
		{"two thirds default threshold", 2, 0.66, 0.8, schema.Medium},
		{"two thirds strict threshold", 2, 0.66, 0.6, schema.High},
		{"even split", 2, 0.5, 0.8, schema.Low},
		{"many authors full share", 5, 1, 0.8, schema.High},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.nAuthors, tt.share, tt.threshold))
		})
	}
}
