package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/shiftclock/internal/db"
	"github.com/alexanderramin/shiftclock/internal/domain"
)

// SQLiteSessionRepo stores one WorkSession row per user.
type SQLiteSessionRepo struct {
	db db.DBTX
}

func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

const sessionColumns = `user_id, is_active, is_on_pause, start_time, last_pause_time, total_pause_ms, updated_at`

func (r *SQLiteSessionRepo) Get(ctx context.Context, userID string) (*domain.WorkSession, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM work_sessions WHERE user_id = ?`, userID)
	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return domain.NewWorkSession(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading work session: %w", err)
	}
	return s, nil
}

// Save upserts the session. Sessions that break the tracker invariants are
// refused before they reach the table.
func (r *SQLiteSessionRepo) Save(ctx context.Context, s *domain.WorkSession) error {
	if err := s.Validate(); err != nil {
		return err
	}
	query := `INSERT INTO work_sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			is_active = excluded.is_active,
			is_on_pause = excluded.is_on_pause,
			start_time = excluded.start_time,
			last_pause_time = excluded.last_pause_time,
			total_pause_ms = excluded.total_pause_ms,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		s.UserID,
		boolToInt(s.IsActive),
		boolToInt(s.IsOnPause),
		nullableTime(truncMs(s.StartTime)),
		nullableTime(truncMs(s.LastPauseTime)),
		durationToMs(s.TotalPauseTime),
		formatTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("saving work session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) ListActive(ctx context.Context) ([]*domain.WorkSession, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM work_sessions WHERE is_active = 1 ORDER BY start_time`)
	if err != nil {
		return nil, fmt.Errorf("listing active sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.WorkSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning work session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.WorkSession, error) {
	var (
		s                domain.WorkSession
		active, paused   int
		start, lastPause sql.NullString
		pauseMs          int64
		updatedAt        string
	)
	if err := row.Scan(&s.UserID, &active, &paused, &start, &lastPause, &pauseMs, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	s.IsActive = intToBool(active)
	s.IsOnPause = intToBool(paused)
	if s.StartTime, err = parseNullableTime(start); err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	if s.LastPauseTime, err = parseNullableTime(lastPause); err != nil {
		return nil, fmt.Errorf("parsing last_pause_time: %w", err)
	}
	s.TotalPauseTime = msToDuration(pauseMs)
	if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &s, nil
}
