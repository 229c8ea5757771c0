package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/shiftclock/internal/db"
	"github.com/alexanderramin/shiftclock/internal/domain"
)

type SQLiteShiftRepo struct {
	db db.DBTX
}

func NewSQLiteShiftRepo(conn db.DBTX) *SQLiteShiftRepo {
	return &SQLiteShiftRepo{db: conn}
}

const shiftColumns = `id, user_id, username, locale, start_time, end_time, total_pause_ms, total_work_ms`

func (r *SQLiteShiftRepo) Create(ctx context.Context, s *domain.ShiftLog) error {
	query := `INSERT INTO shift_logs (` + shiftColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.UserID, s.Username, string(s.Locale),
		formatTime(s.StartTime), formatTime(s.EndTime),
		durationToMs(s.TotalPauseTime), durationToMs(s.TotalWorkTime),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("shift %s: %w", s.ID, ErrConflict)
		}
		return fmt.Errorf("inserting shift log: %w", err)
	}
	return nil
}

func (r *SQLiteShiftRepo) GetByID(ctx context.Context, id string) (*domain.ShiftLog, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+shiftColumns+` FROM shift_logs WHERE id = ?`, id)
	s, err := scanShift(row)
	if err != nil {
		return nil, wrapNotFound("shift log", err)
	}
	return s, nil
}

// List returns shifts matching f, most recently finished first.
func (r *SQLiteShiftRepo) List(ctx context.Context, f domain.ShiftFilter) ([]*domain.ShiftLog, error) {
	var (
		where []string
		args  []any
	)
	if f.UserID != "" {
		where = append(where, "user_id = ?")
		args = append(args, f.UserID)
	}
	if f.Locale != "" {
		where = append(where, "locale = ?")
		args = append(args, string(f.Locale))
	}

	query := `SELECT ` + shiftColumns + ` FROM shift_logs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY end_time DESC, id`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing shift logs: %w", err)
	}
	defer rows.Close()

	var shifts []*domain.ShiftLog
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning shift log: %w", err)
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

func (r *SQLiteShiftRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shift_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting shift log: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("shift log %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteByUser removes every shift a user recorded at one locale.
func (r *SQLiteShiftRepo) DeleteByUser(ctx context.Context, userID string, locale domain.Locale) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM shift_logs WHERE user_id = ? AND locale = ?`, userID, string(locale))
	if err != nil {
		return 0, fmt.Errorf("clearing user history: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteShiftRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shift_logs`)
	if err != nil {
		return 0, fmt.Errorf("clearing shift history: %w", err)
	}
	return res.RowsAffected()
}

func scanShift(row rowScanner) (*domain.ShiftLog, error) {
	var (
		s               domain.ShiftLog
		locale          string
		start, end      string
		pauseMs, workMs int64
	)
	err := row.Scan(&s.ID, &s.UserID, &s.Username, &locale, &start, &end, &pauseMs, &workMs)
	if err != nil {
		return nil, err
	}
	s.Locale = domain.Locale(locale)
	if s.StartTime, err = parseTime(start); err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	if s.EndTime, err = parseTime(end); err != nil {
		return nil, fmt.Errorf("parsing end_time: %w", err)
	}
	s.TotalPauseTime = msToDuration(pauseMs)
	s.TotalWorkTime = msToDuration(workMs)
	return &s, nil
}
