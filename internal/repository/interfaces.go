package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/shiftclock/internal/domain"
)

type SessionRepo interface {
	// Get returns the stored session, or a fresh Idle session when the
	// user has never clocked in.
	Get(ctx context.Context, userID string) (*domain.WorkSession, error)
	Save(ctx context.Context, s *domain.WorkSession) error
	ListActive(ctx context.Context) ([]*domain.WorkSession, error)
}

type ShiftRepo interface {
	Create(ctx context.Context, s *domain.ShiftLog) error
	GetByID(ctx context.Context, id string) (*domain.ShiftLog, error)
	List(ctx context.Context, f domain.ShiftFilter) ([]*domain.ShiftLog, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string, locale domain.Locale) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type TimeLogRepo interface {
	Create(ctx context.Context, l *domain.TimeLog) error
	ListRecent(ctx context.Context, limit int) ([]*domain.TimeLog, error)
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	Upsert(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type ProductRepo interface {
	ListByLocale(ctx context.Context, locale domain.Locale) ([]*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ReplaceLocale(ctx context.Context, locale domain.Locale, products []*domain.Product) error
	Count(ctx context.Context) (int, error)
}

type SaleRepo interface {
	Create(ctx context.Context, s *domain.Sale) error
	GetByID(ctx context.Context, id string) (*domain.Sale, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Sale, error)
}

type NotificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) error
	// ListDue returns pending and retryable notifications whose next
	// attempt is not after now, oldest first.
	ListDue(ctx context.Context, now time.Time, limit int) ([]*domain.Notification, error)
	ListByStatus(ctx context.Context, status domain.NotificationStatus, limit int) ([]*domain.Notification, error)
	MarkSent(ctx context.Context, id string, at time.Time) error
	// MarkFailed records a failed attempt. A zero nextAttempt parks the
	// row permanently in the failed state.
	MarkFailed(ctx context.Context, id string, reason string, nextAttempt time.Time) error
}
