package notify

import (
	"net/url"
	"strings"

	"github.com/alexanderramin/shiftclock/internal/domain"
)

// Directory resolves the webhook URL for a locale and notification kind.
type Directory interface {
	WebhookURL(locale domain.Locale, kind domain.NotificationKind) (string, bool)
}

// Webhooks is a static Directory keyed by locale then kind.
type Webhooks map[domain.Locale]map[domain.NotificationKind]string

// WebhookURL returns the configured URL when it is a usable http(s) URL.
func (w Webhooks) WebhookURL(locale domain.Locale, kind domain.NotificationKind) (string, bool) {
	u := strings.TrimSpace(w[locale][kind])
	if !ValidURL(u) {
		return "", false
	}
	return u, true
}

// Set stores a URL, allocating the inner map when needed.
func (w Webhooks) Set(locale domain.Locale, kind domain.NotificationKind, u string) {
	if w[locale] == nil {
		w[locale] = make(map[domain.NotificationKind]string)
	}
	w[locale][kind] = u
}

// ValidURL reports whether u is an absolute http or https URL.
func ValidURL(u string) bool {
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
