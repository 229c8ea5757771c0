package app

import (
	"database/sql"
	"log/slog"

	"github.com/alexanderramin/shiftclock/internal/config"
	"github.com/alexanderramin/shiftclock/internal/db"
	"github.com/alexanderramin/shiftclock/internal/notify"
	"github.com/alexanderramin/shiftclock/internal/repository"
	"github.com/alexanderramin/shiftclock/internal/service"
)

// New wires repositories, services and the outbox dispatcher on top of an
// open database.
func New(database *sql.DB, cfg config.Config, logger *slog.Logger) (*Services, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	userRepo := repository.NewSQLiteUserRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	shiftRepo := repository.NewSQLiteShiftRepo(database)
	logRepo := repository.NewSQLiteTimeLogRepo(database)
	productRepo := repository.NewSQLiteProductRepo(database)
	saleRepo := repository.NewSQLiteSaleRepo(database)
	outbox := repository.NewSQLiteNotificationRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewSlogUseCaseObserver(logger)
	hooks := cfg.Directory()
	announcer := service.Announcer{Webhooks: hooks, Location: loc}

	dispatcher := notify.NewDispatcher(
		outbox,
		notify.NewWebhookClient(cfg.ClientConfig()),
		hooks,
		cfg.DispatchConfig(),
		notify.NewLogObserver(logger),
	).WithLogger(logger)

	return &Services{
		Clock:      service.NewClockService(userRepo, sessionRepo, uow, announcer, observer),
		Shifts:     service.NewShiftService(shiftRepo, loc, observer),
		TimeLogs:   service.NewTimeLogService(logRepo),
		Sales:      service.NewSaleService(userRepo, saleRepo, uow, announcer, observer),
		Users:      service.NewUserService(userRepo, cfg.BcryptCost, observer),
		Catalog:    service.NewCatalogService(productRepo, uow, observer),
		Seed:       service.NewSeedService(uow, cfg.BcryptCost, observer),
		Outbox:     outbox,
		Dispatcher: dispatcher,
		Location:   loc,
	}, nil
}
