//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestBusFactorWithMySQL tests the busfactor CLI with a MySQL backend.
func TestBusFactorWithMySQL(t *testing.T) {
	ctx := context.Background()
	repo := newFixtureRepo(t)

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "busfactor",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/busfactor?parseTime=true", host, port.Port())

	// Set environment variables
	_ = os.Setenv("BUSFACTOR_CACHE_BACKEND", "mysql")
	_ = os.Setenv("BUSFACTOR_CACHE_DB_CONNECT", connStr)
	_ = os.Setenv("BUSFACTOR_ANALYSIS_BACKEND", "mysql")
	_ = os.Setenv("BUSFACTOR_ANALYSIS_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("BUSFACTOR_CACHE_BACKEND") }()
	defer func() { _ = os.Unsetenv("BUSFACTOR_CACHE_DB_CONNECT") }()
	defer func() { _ = os.Unsetenv("BUSFACTOR_ANALYSIS_BACKEND") }()
	defer func() { _ = os.Unsetenv("BUSFACTOR_ANALYSIS_DB_CONNECT") }()

	// Run busfactor cache clear
	err = runBusFactorCommand(t, repo, "cache", "clear")
	require.NoError(t, err)

	// Run busfactor analysis clear
	err = runBusFactorCommand(t, repo, "analysis", "clear")
	require.NoError(t, err)

	// Run busfactor twice so the second run is served from the cache
	for range 2 {
		err = runBusFactorCommand(t, repo, "analyze", "--top-n", "5")
		require.NoError(t, err)
	}

	// Run busfactor cache status
	err = runBusFactorCommand(t, repo, "cache", "status")
	require.NoError(t, err)

	// Run busfactor analysis status
	err = runBusFactorCommand(t, repo, "analysis", "status")
	require.NoError(t, err)
}

// TestBusFactorWithPostgres tests the busfactor CLI with a PostgreSQL backend.
func TestBusFactorWithPostgres(t *testing.T) {
	ctx := context.Background()
	repo := newFixtureRepo(t)

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	// Set environment variables
	_ = os.Setenv("BUSFACTOR_CACHE_BACKEND", "postgresql")
	_ = os.Setenv("BUSFACTOR_CACHE_DB_CONNECT", connStr)
	_ = os.Setenv("BUSFACTOR_ANALYSIS_BACKEND", "postgresql")
	_ = os.Setenv("BUSFACTOR_ANALYSIS_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("BUSFACTOR_CACHE_BACKEND") }()
	defer func() { _ = os.Unsetenv("BUSFACTOR_CACHE_DB_CONNECT") }()
	defer func() { _ = os.Unsetenv("BUSFACTOR_ANALYSIS_BACKEND") }()
	defer func() { _ = os.Unsetenv("BUSFACTOR_ANALYSIS_DB_CONNECT") }()

	// Run busfactor cache clear
	err = runBusFactorCommand(t, repo, "cache", "clear")
	require.NoError(t, err)

	// Run busfactor analysis clear
	err = runBusFactorCommand(t, repo, "analysis", "clear")
	require.NoError(t, err)

	// Run busfactor twice so the second run is served from the cache
	for range 2 {
		err = runBusFactorCommand(t, repo, "analyze", "--top-n", "5")
		require.NoError(t, err)
	}

	// Run busfactor cache status
	err = runBusFactorCommand(t, repo, "cache", "status")
	require.NoError(t, err)

	// Run busfactor analysis status
	err = runBusFactorCommand(t, repo, "analysis", "status")
	require.NoError(t, err)
}

func runBusFactorCommand(t *testing.T, dir string, args ...string) error {
	_, err := runBusFactor(t, dir, nil, args...)
	return err
}
