package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/shiftclock/internal/db"
	"github.com/alexanderramin/shiftclock/internal/domain"
)

// SQLiteNotificationRepo is the webhook outbox. Rows are written in the same
// transaction as the event they announce and drained by notify.Dispatcher.
type SQLiteNotificationRepo struct {
	db db.DBTX
}

func NewSQLiteNotificationRepo(conn db.DBTX) *SQLiteNotificationRepo {
	return &SQLiteNotificationRepo{db: conn}
}

const notificationColumns = `id, kind, locale, payload, status, attempts, last_error, next_attempt_at, created_at, sent_at`

func (r *SQLiteNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	status := n.Status
	if status == "" {
		status = domain.NotificationPending
	}
	next := n.NextAttemptAt
	if next.IsZero() {
		next = n.CreatedAt
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (`+notificationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, string(n.Kind), string(n.Locale), n.Payload, string(status), n.Attempts, n.LastError,
		formatTime(next), formatTime(n.CreatedAt), nullableTime(n.SentAt),
	)
	if err != nil {
		return fmt.Errorf("enqueueing notification: %w", err)
	}
	return nil
}

func (r *SQLiteNotificationRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]*domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications
		WHERE status = 'pending' AND next_attempt_at <= ?
		ORDER BY created_at, id`
	args := []any{formatTime(now)}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return r.query(ctx, query, args...)
}

// ListByStatus returns the newest notifications in a status first.
func (r *SQLiteNotificationRepo) ListByStatus(ctx context.Context, status domain.NotificationStatus, limit int) ([]*domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE status = ? ORDER BY created_at DESC, id`
	args := []any{string(status)}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return r.query(ctx, query, args...)
}

func (r *SQLiteNotificationRepo) MarkSent(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET status = 'sent', attempts = attempts + 1, last_error = '', sent_at = ?
		WHERE id = ?`, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("marking notification sent: %w", err)
	}
	return requireOneRow(res, "notification", id)
}

func (r *SQLiteNotificationRepo) MarkFailed(ctx context.Context, id string, reason string, nextAttempt time.Time) error {
	status := domain.NotificationPending
	next := formatTime(nextAttempt)
	if nextAttempt.IsZero() {
		status = domain.NotificationFailed
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET status = ?, attempts = attempts + 1, last_error = ?, next_attempt_at = ?
		WHERE id = ?`, string(status), reason, next, id)
	if err != nil {
		return fmt.Errorf("marking notification failed: %w", err)
	}
	return requireOneRow(res, "notification", id)
}

func (r *SQLiteNotificationRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer rows.Close()

	var out []*domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func scanNotification(row rowScanner) (*domain.Notification, error) {
	var (
		n                    domain.Notification
		kind, locale, status string
		next, created        string
		sent                 sql.NullString
	)
	err := row.Scan(&n.ID, &kind, &locale, &n.Payload, &status, &n.Attempts, &n.LastError, &next, &created, &sent)
	if err != nil {
		return nil, err
	}
	n.Kind = domain.NotificationKind(kind)
	n.Locale = domain.Locale(locale)
	n.Status = domain.NotificationStatus(status)
	if n.NextAttemptAt, err = parseTime(next); err != nil {
		return nil, fmt.Errorf("parsing next_attempt_at: %w", err)
	}
	if n.CreatedAt, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if n.SentAt, err = parseNullableTime(sent); err != nil {
		return nil, fmt.Errorf("parsing sent_at: %w", err)
	}
	return &n, nil
}

func requireOneRow(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return nil
}
