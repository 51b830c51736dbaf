package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/n8n-pulse/pulse/internal/contract"
	"github.com/n8n-pulse/pulse/internal/snapcache"
	"github.com/n8n-pulse/pulse/schema"
)

// cacheSetup loads minimal configuration needed for snapshot store operations.
// This is used by commands that need store access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.CacheBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	if _, ok := schema.ValidCacheBackends[backend]; !ok {
		return fmt.Errorf("invalid cache backend %q: must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := snapcache.Init(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize snapshot store: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on snapshot store management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by data commands. This avoids building a loader
// and complex config processing for simple store operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the data snapshot store",
	Long: `Manage the store of fetched data file snapshots.

When a remote origin is configured (--base-url), pulse stores every fetched
file so repeat runs within the TTL skip the network, and offline runs serve
the last known copy.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None

Subcommands:
  status - Show snapshot counts and connection info
  clear  - Remove all stored snapshots

Examples:
  # Check snapshot store status
  pulse cache status

  # Drop all stored snapshots
  pulse cache clear`,
}

// cacheClearCmd clears the snapshot store.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored data snapshots",
	Long: `Delete every stored snapshot from the configured backend.

Use this when the origin data was rebuilt or the store may be corrupted.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the snapshot table

Examples:
  # Clear SQLite snapshots (default)
  pulse cache clear

  # Clear MySQL snapshots (set connection string via env variable)
  PULSE_CACHE_BACKEND=mysql PULSE_CACHE_DB_CONNECT="..." pulse cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := snapcache.Clear(cfg.CacheBackend, snapcache.DBFilePath(), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear snapshots", err)
		}
		fmt.Println("Snapshots cleared successfully.")
	},
}

// cacheStatusCmd shows snapshot store status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display snapshot store statistics and connection details",
	Long: `Show detailed information about the snapshot store.

Displays:
- Backend type and connection status
- Total number of stored snapshots
- Newest and oldest snapshot timestamps

Examples:
  # Check snapshot store status
  pulse cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := snapcache.Manager.Store().Status()
		if err != nil {
			contract.LogFatal("Failed to get snapshot status", err)
		}
		fmt.Print(snapcache.FormatStatus(status))
	},
}
