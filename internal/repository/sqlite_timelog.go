package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/shiftclock/internal/db"
	"github.com/alexanderramin/shiftclock/internal/domain"
)

type SQLiteTimeLogRepo struct {
	db db.DBTX
}

func NewSQLiteTimeLogRepo(conn db.DBTX) *SQLiteTimeLogRepo {
	return &SQLiteTimeLogRepo{db: conn}
}

func (r *SQLiteTimeLogRepo) Create(ctx context.Context, l *domain.TimeLog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO time_logs (id, user_id, username, locale, type, timestamp) VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, l.UserID, l.Username, string(l.Locale), string(l.Type), formatTime(l.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("inserting time log: %w", err)
	}
	return nil
}

// ListRecent returns the newest events first.
func (r *SQLiteTimeLogRepo) ListRecent(ctx context.Context, limit int) ([]*domain.TimeLog, error) {
	query := `SELECT id, user_id, username, locale, type, timestamp FROM time_logs ORDER BY timestamp DESC, id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing time logs: %w", err)
	}
	defer rows.Close()

	var logs []*domain.TimeLog
	for rows.Next() {
		var (
			l           domain.TimeLog
			locale, typ string
			ts          string
		)
		if err := rows.Scan(&l.ID, &l.UserID, &l.Username, &locale, &typ, &ts); err != nil {
			return nil, fmt.Errorf("scanning time log: %w", err)
		}
		l.Locale = domain.Locale(locale)
		l.Type = domain.EventType(typ)
		if l.Timestamp, err = parseTime(ts); err != nil {
			return nil, fmt.Errorf("parsing timestamp: %w", err)
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
