package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/notify"
	"github.com/alexanderramin/shiftclock/internal/repository"
	"github.com/alexanderramin/shiftclock/internal/testutil"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

type serviceFixture struct {
	db       *sql.DB
	users    *repository.SQLiteUserRepo
	sessions *repository.SQLiteSessionRepo
	shifts   *repository.SQLiteShiftRepo
	logs     *repository.SQLiteTimeLogRepo
	products *repository.SQLiteProductRepo
	sales    *repository.SQLiteSaleRepo
	outbox   *repository.SQLiteNotificationRepo
	hooks    notify.Webhooks
	observer *recordingObserver

	worker *domain.User
	admin  *domain.User
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	f := &serviceFixture{
		db:       database,
		users:    repository.NewSQLiteUserRepo(database),
		sessions: repository.NewSQLiteSessionRepo(database),
		shifts:   repository.NewSQLiteShiftRepo(database),
		logs:     repository.NewSQLiteTimeLogRepo(database),
		products: repository.NewSQLiteProductRepo(database),
		sales:    repository.NewSQLiteSaleRepo(database),
		outbox:   repository.NewSQLiteNotificationRepo(database),
		hooks:    notify.Webhooks{},
		observer: &recordingObserver{},
	}
	f.hooks.Set(domain.LocaleYummy, domain.KindTimeLog, "https://hooks.example/yummy-time")
	f.hooks.Set(domain.LocaleYummy, domain.KindSalesLog, "https://hooks.example/yummy-sales")

	ctx := context.Background()
	f.worker = testutil.NewTestUser("empleado1", testutil.WithLocales(domain.LocaleYummy))
	f.admin = testutil.NewTestUser("jefe", testutil.WithRole(domain.RoleAdmin), testutil.WithLocales())
	require.NoError(t, f.users.Create(ctx, f.worker))
	require.NoError(t, f.users.Create(ctx, f.admin))
	return f
}

func (f *serviceFixture) announcer() Announcer {
	return Announcer{Webhooks: f.hooks}
}

func (f *serviceFixture) clock() ClockService {
	return NewClockService(f.users, f.sessions, testutil.NewTestUoW(f.db), f.announcer(), f.observer)
}

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func mins(m int) time.Time {
	return t0.Add(time.Duration(m) * time.Minute)
}
