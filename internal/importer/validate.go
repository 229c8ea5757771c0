package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/shiftclock/internal/domain"
)

// ValidateCatalogSchema checks the whole file and returns every problem
// found, not just the first.
func ValidateCatalogSchema(schema *CatalogSchema) []error {
	var errs []error

	if _, err := domain.ParseLocale(schema.Locale); err != nil {
		errs = append(errs, fmt.Errorf("locale: %w", err))
	}
	if len(schema.Products) == 0 {
		errs = append(errs, fmt.Errorf("products: at least one product is required"))
	}

	seen := make(map[string]int, len(schema.Products))
	for i, p := range schema.Products {
		at := fmt.Sprintf("products[%d]", i)
		id := strings.TrimSpace(p.ID)
		if id == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", at))
		} else if first, dup := seen[id]; dup {
			errs = append(errs, fmt.Errorf("%s.id %q duplicates products[%d]", at, id, first))
		} else {
			seen[id] = i
		}
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", at))
		}
		switch {
		case p.Price == nil:
			errs = append(errs, fmt.Errorf("%s.price is required", at))
		case *p.Price < 0:
			errs = append(errs, fmt.Errorf("%s.price must not be negative, got %d", at, *p.Price))
		}
	}

	return errs
}
