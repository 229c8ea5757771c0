package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/shiftclock/internal/db"
	"github.com/alexanderramin/shiftclock/internal/domain"
)

type SQLiteProductRepo struct {
	db db.DBTX
}

func NewSQLiteProductRepo(conn db.DBTX) *SQLiteProductRepo {
	return &SQLiteProductRepo{db: conn}
}

const productColumns = `id, locale, name, price, icon, category`

// ListByLocale returns the catalog in the order it was saved.
func (r *SQLiteProductRepo) ListByLocale(ctx context.Context, locale domain.Locale) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE locale = ? ORDER BY order_index, id`, string(locale))
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *SQLiteProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err != nil {
		return nil, wrapNotFound("product", err)
	}
	return p, nil
}

// ReplaceLocale swaps the whole catalog of one locale. Callers wrap it in a
// transaction so readers never see a half-written catalog.
func (r *SQLiteProductRepo) ReplaceLocale(ctx context.Context, locale domain.Locale, products []*domain.Product) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE locale = ?`, string(locale)); err != nil {
		return fmt.Errorf("clearing %s catalog: %w", locale, err)
	}
	for i, p := range products {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO products (id, locale, name, price, icon, category, order_index) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.ID, string(locale), p.Name, p.Price, p.Icon, p.Category, i,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("product %s: %w", p.ID, ErrConflict)
			}
			return fmt.Errorf("inserting product %s: %w", p.ID, err)
		}
	}
	return nil
}

func (r *SQLiteProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}
	return n, nil
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p      domain.Product
		locale string
	)
	if err := row.Scan(&p.ID, &locale, &p.Name, &p.Price, &p.Icon, &p.Category); err != nil {
		return nil, err
	}
	p.Locale = domain.Locale(locale)
	return &p, nil
}
