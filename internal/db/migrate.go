package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is idempotent so the whole
// list is replayed on each start.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              TEXT PRIMARY KEY,
		username        TEXT NOT NULL UNIQUE,
		password_hash   TEXT NOT NULL,
		role            TEXT NOT NULL CHECK(role IN ('admin','worker')),
		allowed_locales TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	// One row per worker. The CHECKs mirror WorkSession.Validate.
	`CREATE TABLE IF NOT EXISTS work_sessions (
		user_id           TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		is_active         INTEGER NOT NULL DEFAULT 0,
		is_on_pause       INTEGER NOT NULL DEFAULT 0,
		start_time        TEXT,
		last_pause_time   TEXT,
		total_pause_ms    INTEGER NOT NULL DEFAULT 0 CHECK(total_pause_ms >= 0),
		updated_at        TEXT NOT NULL,
		CHECK(is_on_pause = 0 OR is_active = 1),
		CHECK((is_active = 1) = (start_time IS NOT NULL)),
		CHECK((is_on_pause = 1) = (last_pause_time IS NOT NULL))
	)`,

	// Shift history outlives user deletion, so no foreign key.
	`CREATE TABLE IF NOT EXISTS shift_logs (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL,
		username         TEXT NOT NULL,
		locale           TEXT NOT NULL CHECK(locale IN ('yummy','uwu')),
		start_time       TEXT NOT NULL,
		end_time         TEXT NOT NULL,
		total_pause_ms   INTEGER NOT NULL CHECK(total_pause_ms >= 0),
		total_work_ms    INTEGER NOT NULL CHECK(total_work_ms >= 0)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_shift_logs_user ON shift_logs(user_id, locale)`,
	`CREATE INDEX IF NOT EXISTS idx_shift_logs_end ON shift_logs(end_time)`,

	`CREATE TABLE IF NOT EXISTS time_logs (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		username   TEXT NOT NULL,
		locale     TEXT NOT NULL CHECK(locale IN ('yummy','uwu')),
		type       TEXT NOT NULL CHECK(type IN ('entrada','pausa','salida')),
		timestamp  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_time_logs_timestamp ON time_logs(timestamp)`,

	`CREATE TABLE IF NOT EXISTS products (
		id          TEXT PRIMARY KEY,
		locale      TEXT NOT NULL CHECK(locale IN ('yummy','uwu')),
		name        TEXT NOT NULL,
		price       INTEGER NOT NULL CHECK(price >= 0),
		icon        TEXT NOT NULL DEFAULT '',
		category    TEXT NOT NULL DEFAULT '',
		order_index INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_locale ON products(locale, order_index)`,

	`CREATE TABLE IF NOT EXISTS sales (
		id        TEXT PRIMARY KEY,
		user_id   TEXT NOT NULL,
		username  TEXT NOT NULL,
		locale    TEXT NOT NULL CHECK(locale IN ('yummy','uwu')),
		total     INTEGER NOT NULL CHECK(total >= 0),
		timestamp TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sale_items (
		sale_id    TEXT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
		line       INTEGER NOT NULL,
		product_id TEXT NOT NULL,
		name       TEXT NOT NULL,
		icon       TEXT NOT NULL DEFAULT '',
		category   TEXT NOT NULL DEFAULT '',
		price      INTEGER NOT NULL,
		quantity   INTEGER NOT NULL CHECK(quantity > 0),
		PRIMARY KEY (sale_id, line)
	)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id              TEXT PRIMARY KEY,
		kind            TEXT NOT NULL CHECK(kind IN ('time_log','sales_log')),
		locale          TEXT NOT NULL,
		payload         BLOB NOT NULL,
		status          TEXT NOT NULL DEFAULT 'pending'
		                CHECK(status IN ('pending','sent','failed')),
		attempts        INTEGER NOT NULL DEFAULT 0,
		last_error      TEXT NOT NULL DEFAULT '',
		next_attempt_at TEXT NOT NULL,
		created_at      TEXT NOT NULL,
		sent_at         TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_due ON notifications(status, next_attempt_at)`,
}
