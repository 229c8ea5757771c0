package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/shiftclock/internal/db"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is given to every seeded account.
const DefaultPassword = "123"

type seedUser struct {
	id       string
	username string
	role     domain.Role
	locales  []domain.Locale
}

var seedUsers = []seedUser{
	{"0", "admin", domain.RoleAdmin, []domain.Locale{domain.LocaleYummy, domain.LocaleUwu}},
	{"1", "jefe", domain.RoleAdmin, []domain.Locale{domain.LocaleYummy, domain.LocaleUwu}},
	{"2", "empleado1", domain.RoleWorker, []domain.Locale{domain.LocaleYummy}},
	{"3", "empleado2", domain.RoleWorker, []domain.Locale{domain.LocaleUwu}},
}

// DefaultCatalog returns a fresh copy of the stock catalog of a locale.
func DefaultCatalog(locale domain.Locale) []*domain.Product {
	var src []domain.Product
	switch locale {
	case domain.LocaleYummy:
		src = yummyCatalog
	case domain.LocaleUwu:
		src = uwuCatalog
	}
	out := make([]*domain.Product, len(src))
	for i := range src {
		p := src[i]
		p.Locale = locale
		out[i] = &p
	}
	return out
}

var yummyCatalog = []domain.Product{
	{ID: "y1", Name: "Helado de Vainilla", Price: 1300, Icon: "🍦", Category: "Helados"},
	{ID: "y2", Name: "Helado de Chocolate", Price: 1300, Icon: "🍫", Category: "Helados"},
	{ID: "y3", Name: "Helado de Fresa", Price: 1300, Icon: "🍓", Category: "Helados"},
	{ID: "y4", Name: "Helado de Cookies & Cream", Price: 1300, Icon: "🍪", Category: "Helados"},
	{ID: "y5", Name: "Helado de Menta", Price: 1300, Icon: "🌿", Category: "Helados"},
	{ID: "y6", Name: "Helado de Arcoiris", Price: 1300, Icon: "🌈", Category: "Helados"},
	{ID: "y7", Name: "Smoothie de Fresa", Price: 1300, Icon: "🍓", Category: "Bebidas"},
	{ID: "y8", Name: "Té Negro", Price: 1300, Icon: "🥤", Category: "Bebidas"},
	{ID: "y9", Name: "Cappuccino Helado", Price: 1300, Icon: "☕", Category: "Bebidas"},
	{ID: "y10", Name: "Piña Dulce", Price: 1300, Icon: "🍍", Category: "Postres"},
	{ID: "y11", Name: "Frappe Chocodream", Price: 1300, Icon: "🍫", Category: "Bebidas"},
	{ID: "y12", Name: "Limonada & Banana Split", Price: 2000, Icon: "🍋", Category: "Especial"},
	{ID: "y13", Name: "Cookies & Frappe", Price: 2000, Icon: "🍪", Category: "Especial"},
	{ID: "y14", Name: "Cajita Sorpresa", Price: 15000, Icon: "🎁", Category: "Especial"},
}

var uwuCatalog = []domain.Product{
	{ID: "u1", Name: "RAMEN", Price: 1500, Icon: "🍜", Category: "Comida"},
	{ID: "u2", Name: "SUSHI", Price: 1500, Icon: "🍣", Category: "Comida"},
	{ID: "u3", Name: "DANGOS", Price: 1500, Icon: "🍡", Category: "Postres"},
	{ID: "u4", Name: "DUMPLINGS", Price: 1500, Icon: "🥟", Category: "Comida"},
	{ID: "u5", Name: "DORIYAKIS", Price: 1500, Icon: "🍘", Category: "Postres"},
	{ID: "u6", Name: "ONIGIRIS", Price: 1500, Icon: "🍙", Category: "Comida"},
	{ID: "u7", Name: "AWA DE UWU", Price: 2000, Icon: "🍶", Category: "Bebidas"},
	{ID: "u8", Name: "BUBBLE TEA", Price: 1500, Icon: "🥤", Category: "Bebidas"},
	{ID: "u9", Name: "TE VERDE", Price: 1500, Icon: "🍵", Category: "Bebidas"},
	{ID: "u10", Name: "SAKURA MILK", Price: 2000, Icon: "🌸", Category: "Bebidas"},
	{ID: "u11", Name: "ICE COFFEE", Price: 1500, Icon: "🧊", Category: "Bebidas"},
	{ID: "u12", Name: "MILKSHAKE FRESA", Price: 2000, Icon: "🍓", Category: "Bebidas"},
	{ID: "u13", Name: "Cajita Sorpresa", Price: 15000, Icon: "🎁", Category: "Especial"},
}

type seedService struct {
	uow      db.UnitOfWork
	cost     int
	observer UseCaseObserver
}

// NewSeedService installs defaults. cost is the bcrypt work factor.
func NewSeedService(uow db.UnitOfWork, cost int, observers ...UseCaseObserver) SeedService {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &seedService{uow: uow, cost: cost, observer: useCaseObserverOrNoop(observers)}
}

// Seed fills only what is empty: users when there are none, and each
// locale's catalog when it has no products.
func (s *seedService) Seed(ctx context.Context) (res SeedResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		fields["users"] = res.Users
		fields["products"] = res.Products
		observe(ctx, s.observer, "seed", startedAt, fields, nil, err)
	}()

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), s.cost)
	if err != nil {
		return res, fmt.Errorf("hashing default password: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		users := repository.NewSQLiteUserRepo(tx)
		products := repository.NewSQLiteProductRepo(tx)

		n, err := users.Count(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			now := time.Now().UTC()
			for _, su := range seedUsers {
				u := &domain.User{
					ID:             su.id,
					Username:       su.username,
					PasswordHash:   string(hash),
					Role:           su.role,
					AllowedLocales: su.locales,
					CreatedAt:      now,
					UpdatedAt:      now,
				}
				if err := users.Create(ctx, u); err != nil {
					return err
				}
				res.Users++
			}
		}

		for _, locale := range domain.Locales {
			existing, err := products.ListByLocale(ctx, locale)
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				continue
			}
			catalog := DefaultCatalog(locale)
			if err := products.ReplaceLocale(ctx, locale, catalog); err != nil {
				return err
			}
			res.Products += len(catalog)
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	return res, nil
}
