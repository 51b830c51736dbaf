// Package snapcache persists fetched data snapshots between CLI runs.
package snapcache

import (
	"database/sql"
	"fmt"
	"regexp"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver

	"github.com/n8n-pulse/pulse/internal/contract"
	"github.com/n8n-pulse/pulse/schema"
)

// snapshotTable is the name of the table for snapshot storage.
const snapshotTable = "pulse_snapshots"

var tableNameRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// SnapshotStoreImpl handles durable snapshot storage using various database
// backends.
type SnapshotStoreImpl struct {
	db        *sql.DB
	tableName string
	backend   schema.CacheBackend
	connStr   string
}

var _ contract.SnapshotStore = &SnapshotStoreImpl{} // Compile-time check

// NewSnapshotStore initializes and returns a new SnapshotStore based on the
// backend type. The table schema is applied through embedded migrations.
func NewSnapshotStore(backend schema.CacheBackend, connStr string) (contract.SnapshotStore, error) {
	if !tableNameRe.MatchString(snapshotTable) {
		return nil, fmt.Errorf("invalid table name: %s", snapshotTable)
	}

	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = DBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite snapshot store at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL snapshot store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL snapshot store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// No-op store for disabled caching
		return &SnapshotStoreImpl{backend: backend, tableName: snapshotTable, connStr: connStr}, nil

	default:
		return nil, fmt.Errorf("unsupported cache backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	if err := runMigrations(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate snapshot schema: %w", err)
	}

	return &SnapshotStoreImpl{
		db:        db,
		tableName: snapshotTable,
		backend:   backend,
		connStr:   connStr,
	}, nil
}

// quotedTable returns the properly quoted table name for the backend.
func (ss *SnapshotStoreImpl) quotedTable() string {
	if ss.backend == schema.MySQLBackend {
		return fmt.Sprintf("`%s`", ss.tableName)
	}
	return fmt.Sprintf("%q", ss.tableName)
}

// placeholder returns the parameter placeholder for the backend.
func (ss *SnapshotStoreImpl) placeholder(n int) string {
	if ss.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Get retrieves a snapshot by path from the store.
func (ss *SnapshotStoreImpl) Get(path string) ([]byte, string, int64, error) {
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil, "", 0, sql.ErrNoRows
	}

	var body []byte
	var revision string
	var storedAt int64

	query := fmt.Sprintf(`SELECT body, revision, stored_at FROM %s WHERE path = %s`,
		ss.quotedTable(), ss.placeholder(1))
	row := ss.db.QueryRow(query, path)
	if err := row.Scan(&body, &revision, &storedAt); err != nil {
		return nil, "", 0, err
	}
	return body, revision, storedAt, nil
}

// Set inserts or replaces a snapshot in the store.
func (ss *SnapshotStoreImpl) Set(path string, body []byte, revision string, timestamp int64) error {
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil
	}
	_, err := ss.db.Exec(ss.upsertQuery(), path, body, revision, timestamp)
	return err
}

// upsertQuery returns the UPSERT query for the backend.
func (ss *SnapshotStoreImpl) upsertQuery() string {
	table := ss.quotedTable()
	switch ss.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (path, body, revision, stored_at) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE body = new.body, revision = new.revision, stored_at = new.stored_at`, table)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (path, body, revision, stored_at) VALUES ($1, $2, $3, $4)
			ON CONFLICT (path) DO UPDATE SET body = EXCLUDED.body, revision = EXCLUDED.revision, stored_at = EXCLUDED.stored_at`, table)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (path, body, revision, stored_at) VALUES (?, ?, ?, ?)`, table)
	}
}

// Close closes the underlying DB connection.
func (ss *SnapshotStoreImpl) Close() error {
	if ss.db != nil {
		return ss.db.Close()
	}
	return nil
}

// Status returns status information about the snapshot store.
func (ss *SnapshotStoreImpl) Status() (contract.SnapshotStatus, error) {
	status := contract.SnapshotStatus{
		Backend:   string(ss.backend),
		Connected: ss.db != nil,
	}
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return status, nil
	}

	table := ss.quotedTable()

	row := ss.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table))
	if err := row.Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}
	if status.TotalEntries == 0 {
		return status, nil
	}

	row = ss.db.QueryRow(fmt.Sprintf("SELECT MIN(stored_at), MAX(stored_at) FROM %s", table))
	if err := row.Scan(&status.OldestUnix, &status.NewestUnix); err != nil {
		return status, fmt.Errorf("failed to get entry times: %w", err)
	}
	return status, nil
}

// FormatStatus renders a status for terminal display.
func FormatStatus(status contract.SnapshotStatus) string {
	out := fmt.Sprintf("Snapshot Backend: %s\nConnected: %t\n", status.Backend, status.Connected)
	if !status.Connected {
		return out
	}
	out += fmt.Sprintf("Total Entries: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		out += fmt.Sprintf("Newest Entry: %s\n", time.Unix(status.NewestUnix, 0).Format("2006-01-02 15:04:05"))
		out += fmt.Sprintf("Oldest Entry: %s\n", time.Unix(status.OldestUnix, 0).Format("2006-01-02 15:04:05"))
	}
	return out
}
