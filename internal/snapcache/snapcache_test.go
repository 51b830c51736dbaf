package snapcache

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n8n-pulse/pulse/internal/contract"
	"github.com/n8n-pulse/pulse/schema"
)

func newSQLiteStore(t *testing.T) contract.SnapshotStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "snapshots.db")
	store, err := NewSnapshotStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSnapshotRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)

	rev := uuid.NewString()
	now := time.Now().Unix()
	require.NoError(t, store.Set("data/github-history.json", []byte(`{"monthly":[]}`), rev, now))

	body, gotRev, gotTs, err := store.Get("data/github-history.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"monthly":[]}`), body)
	assert.Equal(t, rev, gotRev)
	assert.Equal(t, now, gotTs)
}

func TestSnapshotMiss(t *testing.T) {
	store := newSQLiteStore(t)

	_, _, _, err := store.Get("data/never-stored.json")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSnapshotUpsert(t *testing.T) {
	store := newSQLiteStore(t)

	require.NoError(t, store.Set("data/forum-history.json", []byte("v1"), "r1", 100))
	require.NoError(t, store.Set("data/forum-history.json", []byte("v2"), "r2", 200))

	body, rev, ts, err := store.Get("data/forum-history.json")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), body)
	assert.Equal(t, "r2", rev)
	assert.Equal(t, int64(200), ts)

	status, err := store.Status()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalEntries)
}

func TestSnapshotStatus(t *testing.T) {
	store := newSQLiteStore(t)

	status, err := store.Status()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalEntries)

	require.NoError(t, store.Set("a.json", []byte("a"), "r1", 50))
	require.NoError(t, store.Set("b.json", []byte("b"), "r2", 90))

	status, err = store.Status()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalEntries)
	assert.Equal(t, int64(50), status.OldestUnix)
	assert.Equal(t, int64(90), status.NewestUnix)
}

func TestNoneBackend(t *testing.T) {
	store, err := NewSnapshotStore(schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Set("x.json", []byte("x"), "r", 1))
	_, _, _, err = store.Get("x.json")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	status, err := store.Status()
	require.NoError(t, err)
	assert.False(t, status.Connected)
}

func TestUnsupportedBackend(t *testing.T) {
	_, err := NewSnapshotStore("redis", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported cache backend")
}

func TestSchemaIsPersistent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "snapshots.db")

	store, err := NewSnapshotStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Set("a.json", []byte("a"), "r1", 10))
	require.NoError(t, store.Close())

	// Reopening runs migrations again; the schema is already current and the
	// data survives.
	store, err = NewSnapshotStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	body, _, _, err := store.Get("a.json")
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), body)
}

func TestClearSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "snapshots.db")

	store, err := NewSnapshotStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Set("a.json", []byte("a"), "r1", 10))
	require.NoError(t, store.Close())

	require.NoError(t, Clear(schema.SQLiteBackend, dbPath, ""))
	// Clearing twice is fine; the file is already gone.
	require.NoError(t, Clear(schema.SQLiteBackend, dbPath, ""))

	assert.Error(t, Clear(schema.SQLiteBackend, "", ""))
	assert.NoError(t, Clear(schema.NoneBackend, "", ""))
	assert.Error(t, Clear("redis", "", ""))
}

func TestFormatStatus(t *testing.T) {
	out := FormatStatus(contract.SnapshotStatus{Backend: "none", Connected: false})
	assert.Contains(t, out, "Snapshot Backend: none")
	assert.NotContains(t, out, "Total Entries")

	out = FormatStatus(contract.SnapshotStatus{
		Backend:      "sqlite",
		Connected:    true,
		TotalEntries: 3,
		OldestUnix:   time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC).Unix(),
		NewestUnix:   time.Date(2025, 6, 7, 8, 9, 10, 0, time.UTC).Unix(),
	})
	assert.Contains(t, out, "Total Entries: 3")
	assert.Contains(t, out, "Newest Entry:")
}