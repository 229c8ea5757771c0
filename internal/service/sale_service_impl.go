package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/shiftclock/internal/db"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/repository"
	"github.com/google/uuid"
)

type saleService struct {
	users     repository.UserRepo
	sales     repository.SaleRepo
	uow       db.UnitOfWork
	announcer Announcer
	observer  UseCaseObserver
	now       func() time.Time
}

func NewSaleService(
	users repository.UserRepo,
	sales repository.SaleRepo,
	uow db.UnitOfWork,
	announcer Announcer,
	observers ...UseCaseObserver,
) SaleService {
	return &saleService{
		users:     users,
		sales:     sales,
		uow:       uow,
		announcer: announcer,
		observer:  useCaseObserverOrNoop(observers),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Checkout prices the requested lines from the locale's catalog, stores the
// sale and queues its announcement in one transaction.
func (s *saleService) Checkout(ctx context.Context, req SaleRequest) (sale *domain.Sale, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"user_id": req.UserID,
		"locale":  string(req.Locale),
		"lines":   len(req.Lines),
	}
	defer func() {
		observe(ctx, s.observer, "checkout", startedAt, fields, nil, err)
	}()

	if _, err = domain.ParseLocale(string(req.Locale)); err != nil {
		return nil, err
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

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProducts := repository.NewSQLiteProductRepo(tx)

		var cart domain.Cart
		for _, line := range req.Lines {
			p, err := txProducts.GetByID(ctx, line.ProductID)
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: %s", domain.ErrUnknownProduct, line.ProductID)
			}
			if err != nil {
				return err
			}
			if p.Locale != req.Locale {
				return fmt.Errorf("%w: %s is not sold at %s", domain.ErrUnknownProduct, p.ID, req.Locale)
			}
			cart.AddQuantity(*p, line.Quantity)
		}
		if cart.IsEmpty() {
			return domain.ErrEmptyCart
		}

		sale = &domain.Sale{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			Username:  user.Username,
			Locale:    req.Locale,
			Items:     cart.Items,
			Total:     cart.Total(),
			Timestamp: at.UTC(),
		}
		if err := repository.NewSQLiteSaleRepo(tx).Create(ctx, sale); err != nil {
			return err
		}
		queued, err := s.announcer.announceSale(ctx, repository.NewSQLiteNotificationRepo(tx), sale)
		fields["announced"] = queued
		return err
	})
	if err != nil {
		return nil, err
	}
	fields["total"] = sale.Total
	return sale, nil
}

func (s *saleService) ListRecent(ctx context.Context, limit int) ([]*domain.Sale, error) {
	return s.sales.ListRecent(ctx, limit)
}
