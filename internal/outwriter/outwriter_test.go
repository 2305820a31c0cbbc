package outwriter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/estersassis/busfactor/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutWriterDelegates(t *testing.T) {
	ow := NewOutWriter()
	dir := t.TempDir()

	entitiesPath := filepath.Join(dir, "entities.csv")
	require.NoError(t, ow.WriteEntities(sampleEntities(), entityConfig(schema.CSVOut, entitiesPath), time.Second))
	_, err := os.Stat(entitiesPath)
	assert.NoError(t, err)

	trendPath := filepath.Join(dir, "trend.csv")
	require.NoError(t, ow.WriteTrend(sampleTrend(), entityConfig(schema.CSVOut, trendPath), time.Second))
	_, err = os.Stat(trendPath)
	assert.NoError(t, err)
}
