//go:build database

package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestPulseWithMySQL tests the pulse CLI with a MySQL snapshot backend.
func TestPulseWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "pulse",
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

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/pulse?parseTime=true", host, port.Port())
	runSnapshotScenario(t, "mysql", connStr)
}

// TestPulseWithPostgres tests the pulse CLI with a PostgreSQL snapshot backend.
func TestPulseWithPostgres(t *testing.T) {
	ctx := context.Background()

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

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	runSnapshotScenario(t, "postgresql", connStr)
}

// runSnapshotScenario drives the CLI against a remote origin so fetched files
// land in the configured snapshot backend.
func runSnapshotScenario(t *testing.T, backend, connStr string) {
	dataDir := writeFixtureData(t)
	origin := httptest.NewServer(http.FileServer(http.Dir(dataDir)))
	defer origin.Close()

	_ = os.Setenv("PULSE_CACHE_BACKEND", backend)
	_ = os.Setenv("PULSE_CACHE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("PULSE_CACHE_BACKEND") }()
	defer func() { _ = os.Unsetenv("PULSE_CACHE_DB_CONNECT") }()

	// Start clean
	err := runPulseCommand(t, "cache", "clear")
	require.NoError(t, err)

	// Fetch through the snapshot store twice; the second run is served from it
	err = runPulseCommand(t, "series", "-m", "github-stars", "--base-url", origin.URL)
	require.NoError(t, err)
	err = runPulseCommand(t, "series", "-m", "github-stars", "--base-url", origin.URL)
	require.NoError(t, err)

	// Inspect the store
	err = runPulseCommand(t, "cache", "status")
	require.NoError(t, err)
}

func runPulseCommand(t *testing.T, args ...string) error {
	pulsePath := getPulseBinary()
	cmd := exec.Command(pulsePath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
