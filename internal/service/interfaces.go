package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/shiftclock/internal/domain"
)

// ClockRequest asks for one clock transition. A zero At means now.
// Without an Action, Event is resolved against the stored session, so an
// entrada sent while on pause resumes the shift.
type ClockRequest struct {
	UserID string
	Locale domain.Locale
	Action domain.ClockAction
	Event  domain.EventType
	At     time.Time
}

type ClockResult struct {
	Session    *domain.WorkSession
	Transition domain.Transition
	// Shift is the completed shift on clock-out, nil otherwise.
	Shift   *domain.ShiftLog
	TimeLog *domain.TimeLog
}

type ClockService interface {
	Do(ctx context.Context, req ClockRequest) (*ClockResult, error)
	Current(ctx context.Context, userID string) (*domain.WorkSession, error)
	ListActive(ctx context.Context) ([]*domain.WorkSession, error)
}

type ShiftService interface {
	List(ctx context.Context, f domain.ShiftFilter) ([]*domain.ShiftLog, error)
	Delete(ctx context.Context, id string) error
	ClearUser(ctx context.Context, userID string, locale domain.Locale) (int64, error)
	ClearAll(ctx context.Context) (int64, error)
	// Export writes the matching shifts as an xlsx workbook and returns the
	// number of rows written.
	Export(ctx context.Context, f domain.ShiftFilter, w io.Writer) (int, error)
}

type TimeLogService interface {
	ListRecent(ctx context.Context, limit int) ([]*domain.TimeLog, error)
}

// CheckoutLine is one product and quantity of a sale request. Prices are
// always read from the catalog.
type CheckoutLine struct {
	ProductID string
	Quantity  int
}

type SaleRequest struct {
	UserID string
	Locale domain.Locale
	Lines  []CheckoutLine
	At     time.Time
}

type SaleService interface {
	Checkout(ctx context.Context, req SaleRequest) (*domain.Sale, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Sale, error)
}

type UserService interface {
	Login(ctx context.Context, username, password string) (*domain.User, error)
	// Save creates or updates a user. An empty password keeps the stored
	// hash and is refused for new users.
	Save(ctx context.Context, u *domain.User, password string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.User, error)
	// Resolve finds a user by id, then by username.
	Resolve(ctx context.Context, ref string) (*domain.User, error)
}

type CatalogService interface {
	List(ctx context.Context, locale domain.Locale) ([]*domain.Product, error)
	Replace(ctx context.Context, locale domain.Locale, products []*domain.Product) error
}

// SeedResult reports what Seed inserted.
type SeedResult struct {
	Users    int
	Products int
}

type SeedService interface {
	// Seed installs the default accounts and catalogs into an empty store.
	Seed(ctx context.Context) (SeedResult, error)
}
