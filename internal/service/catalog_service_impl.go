package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shiftclock/internal/db"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/repository"
)

type catalogService struct {
	products repository.ProductRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewCatalogService(products repository.ProductRepo, uow db.UnitOfWork, observers ...UseCaseObserver) CatalogService {
	return &catalogService{products: products, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *catalogService) List(ctx context.Context, locale domain.Locale) ([]*domain.Product, error) {
	if _, err := domain.ParseLocale(string(locale)); err != nil {
		return nil, err
	}
	return s.products.ListByLocale(ctx, locale)
}

// Replace swaps a locale's whole catalog. Every product is checked first so
// a bad entry leaves the old catalog in place.
func (s *catalogService) Replace(ctx context.Context, locale domain.Locale, products []*domain.Product) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"locale": string(locale), "products": len(products)}
	defer func() {
		observe(ctx, s.observer, "replace-catalog", startedAt, fields, nil, err)
	}()

	if _, err = domain.ParseLocale(string(locale)); err != nil {
		return err
	}
	seen := make(map[string]bool, len(products))
	for i, p := range products {
		p.ID = strings.TrimSpace(p.ID)
		p.Name = strings.TrimSpace(p.Name)
		switch {
		case p.ID == "":
			return fmt.Errorf("%w: product %d: id is required", ErrInvalidProduct, i)
		case p.Name == "":
			return fmt.Errorf("%w: product %s: name is required", ErrInvalidProduct, p.ID)
		case p.Price < 0:
			return fmt.Errorf("%w: product %s: negative price", ErrInvalidProduct, p.ID)
		case seen[p.ID]:
			return fmt.Errorf("product %s: %w", p.ID, repository.ErrConflict)
		}
		seen[p.ID] = true
		p.Locale = locale
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteProductRepo(tx).ReplaceLocale(ctx, locale, products)
	})
}
