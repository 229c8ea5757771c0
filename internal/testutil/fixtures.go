package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/google/uuid"
)

var productCounter atomic.Int64

// PlaceholderHash is stored by NewTestUser. It is not a valid bcrypt hash,
// so tests that log in must set one with WithPasswordHash.
const PlaceholderHash = "x"

// User options
type UserOption func(*domain.User)

func WithRole(r domain.Role) UserOption {
	return func(u *domain.User) {
		u.Role = r
	}
}

func WithLocales(ls ...domain.Locale) UserOption {
	return func(u *domain.User) {
		u.AllowedLocales = ls
	}
}

func WithPasswordHash(h string) UserOption {
	return func(u *domain.User) {
		u.PasswordHash = h
	}
}

func WithUserID(id string) UserOption {
	return func(u *domain.User) {
		u.ID = id
	}
}

// NewTestUser returns a worker allowed at every locale.
func NewTestUser(username string, opts ...UserOption) *domain.User {
	now := time.Now().UTC()
	u := &domain.User{
		ID:             uuid.New().String(),
		Username:       username,
		PasswordHash:   PlaceholderHash,
		Role:           domain.RoleWorker,
		AllowedLocales: []domain.Locale{domain.LocaleYummy, domain.LocaleUwu},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Shift options
type ShiftOption func(*domain.ShiftLog)

func WithShiftLocale(l domain.Locale) ShiftOption {
	return func(s *domain.ShiftLog) {
		s.Locale = l
	}
}

func WithShiftPause(d time.Duration) ShiftOption {
	return func(s *domain.ShiftLog) {
		s.TotalPauseTime = d
		s.TotalWorkTime = s.EndTime.Sub(s.StartTime) - d
	}
}

// NewTestShift builds a completed shift of the given length ending at end.
func NewTestShift(u *domain.User, end time.Time, length time.Duration, opts ...ShiftOption) *domain.ShiftLog {
	s := &domain.ShiftLog{
		ID:            uuid.New().String(),
		UserID:        u.ID,
		Username:      u.Username,
		Locale:        domain.LocaleYummy,
		StartTime:     end.Add(-length),
		EndTime:       end,
		TotalWorkTime: length,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Product options
type ProductOption func(*domain.Product)

func WithPrice(p int64) ProductOption {
	return func(pr *domain.Product) {
		pr.Price = p
	}
}

func WithIcon(i string) ProductOption {
	return func(pr *domain.Product) {
		pr.Icon = i
	}
}

func WithCategory(c string) ProductOption {
	return func(pr *domain.Product) {
		pr.Category = c
	}
}

func NewTestProduct(locale domain.Locale, name string, opts ...ProductOption) *domain.Product {
	p := &domain.Product{
		ID:       fmt.Sprintf("%s-test-%d", locale, productCounter.Add(1)),
		Locale:   locale,
		Name:     name,
		Price:    1000,
		Icon:     "🍨",
		Category: "test",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTestNotification returns a pending outbox row due at createdAt.
func NewTestNotification(kind domain.NotificationKind, locale domain.Locale, createdAt time.Time) *domain.Notification {
	return &domain.Notification{
		ID:            uuid.New().String(),
		Kind:          kind,
		Locale:        locale,
		Payload:       []byte(`{"content":"test"}`),
		Status:        domain.NotificationPending,
		NextAttemptAt: createdAt,
		CreatedAt:     createdAt,
	}
}
