package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/shiftclock/internal/db"
	"github.com/alexanderramin/shiftclock/internal/domain"
)

type SQLiteSaleRepo struct {
	db db.DBTX
}

func NewSQLiteSaleRepo(conn db.DBTX) *SQLiteSaleRepo {
	return &SQLiteSaleRepo{db: conn}
}

// Create stores the sale header and one sale_items row per cart line. The
// product fields are copied so later catalog edits do not rewrite history.
func (r *SQLiteSaleRepo) Create(ctx context.Context, s *domain.Sale) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sales (id, user_id, username, locale, total, timestamp) VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.Username, string(s.Locale), s.Total, formatTime(s.Timestamp),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("sale %s: %w", s.ID, ErrConflict)
		}
		return fmt.Errorf("inserting sale: %w", err)
	}
	for i, it := range s.Items {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO sale_items (sale_id, line, product_id, name, icon, category, price, quantity)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID, i, it.Product.ID, it.Product.Name, it.Product.Icon, it.Product.Category,
			it.Product.Price, it.Quantity,
		)
		if err != nil {
			return fmt.Errorf("inserting sale item %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteSaleRepo) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, username, locale, total, timestamp FROM sales WHERE id = ?`, id)
	s, err := scanSale(row)
	if err != nil {
		return nil, wrapNotFound("sale", err)
	}
	if err := r.loadItems(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ListRecent returns the newest sales first, items included.
func (r *SQLiteSaleRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Sale, error) {
	query := `SELECT id, user_id, username, locale, total, timestamp FROM sales ORDER BY timestamp DESC, id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}

	var sales []*domain.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning sale: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating sales: %w", err)
	}
	// Release the cursor before issuing item queries; the pool may hold a
	// single connection.
	rows.Close()

	for _, s := range sales {
		if err := r.loadItems(ctx, s); err != nil {
			return nil, err
		}
	}
	return sales, nil
}

func (r *SQLiteSaleRepo) loadItems(ctx context.Context, s *domain.Sale) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, name, icon, category, price, quantity
		FROM sale_items WHERE sale_id = ? ORDER BY line`, s.ID)
	if err != nil {
		return fmt.Errorf("loading sale items: %w", err)
	}
	defer rows.Close()

	s.Items = nil
	for rows.Next() {
		var it domain.CartItem
		if err := rows.Scan(&it.Product.ID, &it.Product.Name, &it.Product.Icon,
			&it.Product.Category, &it.Product.Price, &it.Quantity); err != nil {
			return fmt.Errorf("scanning sale item: %w", err)
		}
		it.Product.Locale = s.Locale
		s.Items = append(s.Items, it)
	}
	return rows.Err()
}

func scanSale(row rowScanner) (*domain.Sale, error) {
	var (
		s      domain.Sale
		locale string
		ts     string
	)
	err := row.Scan(&s.ID, &s.UserID, &s.Username, &locale, &s.Total, &ts)
	if err != nil {
		return nil, err
	}
	s.Locale = domain.Locale(locale)
	if s.Timestamp, err = parseTime(ts); err != nil {
		return nil, fmt.Errorf("parsing timestamp: %w", err)
	}
	return &s, nil
}
