package service

import (
	"context"
	"time"

	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/notify"
	"github.com/alexanderramin/shiftclock/internal/repository"
	"github.com/google/uuid"
)

// Announcer turns clock events and sales into outbox rows. A locale with no
// usable webhook for a kind gets no row at all.
type Announcer struct {
	Webhooks notify.Directory
	// Location renders the Hora and Fecha fields. Nil means UTC.
	Location *time.Location
}

func (a Announcer) enabled(locale domain.Locale, kind domain.NotificationKind) bool {
	if a.Webhooks == nil {
		return false
	}
	_, ok := a.Webhooks.WebhookURL(locale, kind)
	return ok
}

// announceTimeLog enqueues the clock event and reports whether a row was
// written.
func (a Announcer) announceTimeLog(ctx context.Context, repo repository.NotificationRepo, l *domain.TimeLog) (bool, error) {
	if !a.enabled(l.Locale, domain.KindTimeLog) {
		return false, nil
	}
	return true, a.enqueue(ctx, repo, domain.KindTimeLog, l.Locale, notify.TimeLogEmbed(*l, a.Location))
}

func (a Announcer) announceSale(ctx context.Context, repo repository.NotificationRepo, s *domain.Sale) (bool, error) {
	if !a.enabled(s.Locale, domain.KindSalesLog) {
		return false, nil
	}
	return true, a.enqueue(ctx, repo, domain.KindSalesLog, s.Locale, notify.SaleEmbed(*s))
}

func (a Announcer) enqueue(ctx context.Context, repo repository.NotificationRepo, kind domain.NotificationKind, locale domain.Locale, p notify.Payload) error {
	data, err := p.Encode()
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	return repo.Create(ctx, &domain.Notification{
		ID:            uuid.New().String(),
		Kind:          kind,
		Locale:        locale,
		Payload:       data,
		Status:        domain.NotificationPending,
		NextAttemptAt: now,
		CreatedAt:     now,
	})
}
