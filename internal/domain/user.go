package domain

import (
	"fmt"
	"strings"
	"time"
)

type User struct {
	ID             string
	Username       string
	PasswordHash   string
	Role           Role
	AllowedLocales []Locale
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanWorkAt reports whether the user may clock in or sell at a locale.
// Admins are allowed everywhere.
func (u *User) CanWorkAt(l Locale) bool {
	if u.Role == RoleAdmin {
		return true
	}
	for _, allowed := range u.AllowedLocales {
		if allowed == l {
			return true
		}
	}
	return false
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidUser)
	}
	if u.Role != RoleAdmin && u.Role != RoleWorker {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidUser, u.Role)
	}
	for _, l := range u.AllowedLocales {
		if _, err := ParseLocale(string(l)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidUser, err)
		}
	}
	return nil
}
