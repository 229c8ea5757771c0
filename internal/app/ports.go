package app

import (
	"time"

	"github.com/alexanderramin/shiftclock/internal/notify"
	"github.com/alexanderramin/shiftclock/internal/repository"
	"github.com/alexanderramin/shiftclock/internal/service"
)

// Services is everything the CLI and the HTTP API drive. Both front ends
// share one instance per process.
type Services struct {
	Clock    service.ClockService
	Shifts   service.ShiftService
	TimeLogs service.TimeLogService
	Sales    service.SaleService
	Users    service.UserService
	Catalog  service.CatalogService
	Seed     service.SeedService

	// Outbox is read directly by "notify list".
	Outbox     repository.NotificationRepo
	Dispatcher *notify.Dispatcher

	// Location renders local times in exports and announcements.
	Location *time.Location
}
