package snapcache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/n8n-pulse/pulse/internal/contract"
	"github.com/n8n-pulse/pulse/schema"
)

// StoreManager guards the global snapshot store during initialization.
type StoreManager struct {
	sync.RWMutex
	store contract.SnapshotStore
}

// Store returns the active snapshot store, or nil when caching was never
// initialized.
func (mgr *StoreManager) Store() contract.SnapshotStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.store
}

// Global manager instance for main logic.
var (
	Manager   = &StoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// DBFilePath returns the path to the SQLite DB file for snapshot storage.
func DBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".pulse_snapshots.db"
	}
	return filepath.Join(homeDir, ".pulse_snapshots.db")
}

// Init initializes the global snapshot store. An empty backend disables
// snapshot caching entirely.
func Init(backend schema.CacheBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		if backend == "" {
			return
		}
		store, err := NewSnapshotStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize snapshot caching: %w", err)
			return
		}
		Manager.Lock()
		Manager.store = store
		Manager.Unlock()
	})

	return initErr
}

// Close should be called on application shutdown.
func Close() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.store != nil {
			_ = Manager.store.Close()
		}
	})
}

// Clear clears the snapshot storage for the specified backend.
// For SQLite, it deletes the database file.
// For MySQL/PostgreSQL, it drops the snapshot table.
// For NoneBackend, it does nothing.
func Clear(backend schema.CacheBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return dropTable("mysql", connStr, snapshotTable)

	case schema.PostgreSQLBackend:
		return dropTable("pgx", connStr, snapshotTable)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported cache backend for clearing: %s", backend)
	}
}

// dropTable connects to the SQL database and drops the table if it exists.
func dropTable(driverName, connStr, tableName string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}
	return nil
}
