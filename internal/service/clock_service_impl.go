package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/shiftclock/internal/db"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/repository"
	"github.com/google/uuid"
)

type clockService struct {
	users     repository.UserRepo
	sessions  repository.SessionRepo
	uow       db.UnitOfWork
	announcer Announcer
	observer  UseCaseObserver
	now       func() time.Time
}

func NewClockService(
	users repository.UserRepo,
	sessions repository.SessionRepo,
	uow db.UnitOfWork,
	announcer Announcer,
	observers ...UseCaseObserver,
) ClockService {
	return &clockService{
		users:     users,
		sessions:  sessions,
		uow:       uow,
		announcer: announcer,
		observer:  useCaseObserverOrNoop(observers),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Do applies one clock action. The session, its time log, the completed
// shift and the outbox row commit together or not at all.
func (s *clockService) Do(ctx context.Context, req ClockRequest) (res *ClockResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"user_id": req.UserID,
		"locale":  string(req.Locale),
		"action":  string(req.Action),
	}
	if req.Action == "" {
		fields["event"] = string(req.Event)
	}
	var warnings []string
	defer func() {
		observe(ctx, s.observer, "clock", startedAt, fields, &warnings, err)
	}()

	if _, err = domain.ParseLocale(string(req.Locale)); err != nil {
		return nil, err
	}
	if req.Action == "" && req.Event == "" {
		return nil, fmt.Errorf("%w: no action or event given", domain.ErrUnknownAction)
	}
	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !user.CanWorkAt(req.Locale) {
		return nil, fmt.Errorf("%w: %s at %s", ErrLocaleNotAllowed, user.Username, req.Locale)
	}

	at := req.At
	if at.IsZero() {
		at = s.now()
	}
	// Pause totals are stored in whole milliseconds; instants must match.
	at = at.UTC().Truncate(time.Millisecond)

	res = &ClockResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txShifts := repository.NewSQLiteShiftRepo(tx)
		txLogs := repository.NewSQLiteTimeLogRepo(tx)
		txOutbox := repository.NewSQLiteNotificationRepo(tx)

		session, err := txSessions.Get(ctx, user.ID)
		if err != nil {
			return err
		}
		action := req.Action
		if action == "" {
			if action, err = domain.ActionForEvent(req.Event, session.State()); err != nil {
				return err
			}
			fields["action"] = string(action)
		}
		tr, err := session.Apply(action, at)
		if err != nil {
			return err
		}
		if err := txSessions.Save(ctx, session); err != nil {
			return err
		}

		log := &domain.TimeLog{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			Username:  user.Username,
			Locale:    req.Locale,
			Type:      tr.Event,
			Timestamp: at,
		}
		if err := txLogs.Create(ctx, log); err != nil {
			return err
		}

		if tr.Shift != nil {
			tr.Shift.ID = uuid.New().String()
			tr.Shift.Username = user.Username
			tr.Shift.Locale = req.Locale
			if err := txShifts.Create(ctx, tr.Shift); err != nil {
				return err
			}
		}

		queued, err := s.announcer.announceTimeLog(ctx, txOutbox, log)
		if err != nil {
			return err
		}
		fields["announced"] = queued

		res.Session = session
		res.Transition = tr
		res.Shift = tr.Shift
		res.TimeLog = log
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["event"] = string(res.Transition.Event)
	if res.Transition.ClockSkew {
		warnings = append(warnings, "clock_skew")
	}
	return res, nil
}

func (s *clockService) Current(ctx context.Context, userID string) (*domain.WorkSession, error) {
	return s.sessions.Get(ctx, userID)
}

func (s *clockService) ListActive(ctx context.Context) ([]*domain.WorkSession, error) {
	return s.sessions.ListActive(ctx)
}
