package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/service"
	"github.com/spf13/pflag"
)

// localeFlag validates --locale while flags are parsed.
type localeFlag struct {
	value domain.Locale
}

var _ pflag.Value = (*localeFlag)(nil)

func (f *localeFlag) String() string { return string(f.value) }

func (f *localeFlag) Set(s string) error {
	l, err := domain.ParseLocale(s)
	if err != nil {
		return err
	}
	f.value = l
	return nil
}

func (f *localeFlag) Type() string { return "locale" }

// timeFlag accepts RFC 3339 timestamps.
type timeFlag struct {
	value time.Time
}

var _ pflag.Value = (*timeFlag)(nil)

func (f *timeFlag) String() string {
	if f.value.IsZero() {
		return ""
	}
	return f.value.Format(time.RFC3339)
}

func (f *timeFlag) Set(s string) error {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("expected RFC 3339 time such as 2024-03-01T09:00:00-03:00: %w", err)
	}
	f.value = t
	return nil
}

func (f *timeFlag) Type() string { return "time" }

// parseItem reads "ID" or "ID=QTY".
func parseItem(s string) (service.CheckoutLine, error) {
	id, qtyText, hasQty := strings.Cut(strings.TrimSpace(s), "=")
	if id == "" {
		return service.CheckoutLine{}, fmt.Errorf("empty product id in %q", s)
	}
	line := service.CheckoutLine{ProductID: id, Quantity: 1}
	if hasQty {
		qty, err := strconv.Atoi(qtyText)
		if err != nil || qty < 1 {
			return service.CheckoutLine{}, fmt.Errorf("invalid quantity in %q", s)
		}
		line.Quantity = qty
	}
	return line, nil
}

// resolveUser accepts a user id or username.
func resolveUser(ctx context.Context, app *App, ref string) (*domain.User, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, fmt.Errorf("--user is required")
	}
	u, err := app.Users.Resolve(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", ref, err)
	}
	return u, nil
}

// defaultLocale picks the only storefront a user may work at when --locale
// is omitted.
func defaultLocale(u *domain.User, flag localeFlag) (domain.Locale, error) {
	if flag.value != "" {
		return flag.value, nil
	}
	if len(u.AllowedLocales) == 1 {
		return u.AllowedLocales[0], nil
	}
	return "", fmt.Errorf("--locale is required for %s", u.Username)
}
