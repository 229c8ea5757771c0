package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/shiftclock/internal/domain"
)

// ErrInvalidCatalog wraps the joined validation errors of a rejected file.
var ErrInvalidCatalog = errors.New("invalid catalog file")

// ConvertCatalog validates the schema and turns it into domain products in
// file order.
func ConvertCatalog(schema *CatalogSchema) (domain.Locale, []*domain.Product, error) {
	if errs := ValidateCatalogSchema(schema); len(errs) > 0 {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}

	locale, _ := domain.ParseLocale(schema.Locale)
	products := make([]*domain.Product, 0, len(schema.Products))
	for _, p := range schema.Products {
		products = append(products, &domain.Product{
			ID:       strings.TrimSpace(p.ID),
			Locale:   locale,
			Name:     strings.TrimSpace(p.Name),
			Price:    *p.Price,
			Icon:     p.Icon,
			Category: p.Category,
		})
	}
	return locale, products, nil
}
