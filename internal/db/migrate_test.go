package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"users", "work_sessions", "shift_logs", "time_logs", "products", "sales", "sale_items", "notifications"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_shift_logs_user",
		"idx_shift_logs_end",
		"idx_time_logs_timestamp",
		"idx_products_locale",
		"idx_notifications_due",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func seedUser(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO users (id, username, password_hash, role, created_at, updated_at)
		VALUES (?, ?, 'x', 'worker', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`, id, "user-"+id)
	require.NoError(t, err)
}

func TestWorkSessionChecks_RejectInconsistentRows(t *testing.T) {
	db := openTestDB(t)
	seedUser(t, db, "u1")

	bad := []struct {
		name  string
		query string
	}{
		{"paused while idle", `INSERT INTO work_sessions (user_id, is_active, is_on_pause, last_pause_time, updated_at)
			VALUES ('u1', 0, 1, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`},
		{"active without start", `INSERT INTO work_sessions (user_id, is_active, updated_at)
			VALUES ('u1', 1, '2025-01-01T00:00:00Z')`},
		{"paused without pause time", `INSERT INTO work_sessions (user_id, is_active, is_on_pause, start_time, updated_at)
			VALUES ('u1', 1, 1, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`},
		{"negative pause", `INSERT INTO work_sessions (user_id, total_pause_ms, updated_at)
			VALUES ('u1', -1, '2025-01-01T00:00:00Z')`},
	}
	for _, tc := range bad {
		_, err := db.Exec(tc.query)
		assert.Error(t, err, tc.name)
	}

	_, err := db.Exec(`INSERT INTO work_sessions (user_id, is_active, is_on_pause, start_time, last_pause_time, total_pause_ms, updated_at)
		VALUES ('u1', 1, 1, '2025-01-01T08:00:00Z', '2025-01-01T09:00:00Z', 60000, '2025-01-01T09:00:00Z')`)
	assert.NoError(t, err, "consistent paused session is accepted")
}

func TestWorkSession_CascadesOnUserDelete(t *testing.T) {
	db := openTestDB(t)
	seedUser(t, db, "u1")

	_, err := db.Exec(`INSERT INTO work_sessions (user_id, updated_at) VALUES ('u1', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM users WHERE id = 'u1'`)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM work_sessions`).Scan(&count))
	assert.Equal(t, 0, count)
}
