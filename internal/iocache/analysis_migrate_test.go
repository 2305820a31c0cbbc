package iocache

import (
	"path/filepath"
	"testing"

	"github.com/estersassis/busfactor/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func columnNames(t *testing.T, dbPath, table string) []string {
	t.Helper()
	db, err := openDB(schema.SQLiteBackend, dbPath, "")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rows, err := db.Query("SELECT name FROM pragma_table_info(?)", table)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	return names
}

func TestMigrateAnalysis_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	t.Run("up to latest", func(t *testing.T) {
		require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, -1))
		assert.Contains(t, columnNames(t, dbPath, analysisRunsTable), "run_uuid")
		assert.NotEmpty(t, columnNames(t, dbPath, entityMetricsTable))
	})

	t.Run("latest again is a no-op", func(t *testing.T) {
		assert.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, -1))
	})

	t.Run("down to version two drops run_uuid", func(t *testing.T) {
		require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, 2))
		cols := columnNames(t, dbPath, analysisRunsTable)
		assert.NotContains(t, cols, "run_uuid")
		assert.Contains(t, cols, "start_time")
	})

	t.Run("down to zero drops everything", func(t *testing.T) {
		require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, 0))
		assert.Empty(t, columnNames(t, dbPath, analysisRunsTable))
		assert.Empty(t, columnNames(t, dbPath, entityMetricsTable))
	})

	t.Run("store reopens and migrates back up", func(t *testing.T) {
		store, err := NewAnalysisStore(schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		defer func() { _ = store.Close() }()
		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, 3, status.SchemaVersion)
	})
}

func TestMigrateAnalysis_Errors(t *testing.T) {
	assert.ErrorContains(t, MigrateAnalysis(schema.NoneBackend, "", -1), "NoneBackend")
	assert.ErrorContains(t, MigrateAnalysis("oracle", "", -1), "unsupported backend")

	dbPath := filepath.Join(t.TempDir(), "migrate.db")
	assert.Error(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, 99))
}

func TestEmbeddedMigrationsPerBackend(t *testing.T) {
	for _, backend := range []string{"sqlite", "mysql", "postgresql"} {
		entries, err := migrationsFS.ReadDir("migrations/" + backend)
		require.NoError(t, err, backend)
		assert.Len(t, entries, 6, backend)
	}
}
