package domain

import (
	"fmt"
	"strings"
)

type SessionState string

const (
	StateIdle    SessionState = "idle"
	StateWorking SessionState = "working"
	StateOnPause SessionState = "on_pause"
)

type ClockAction string

const (
	ActionClockIn  ClockAction = "clock_in"
	ActionPause    ClockAction = "pause"
	ActionResume   ClockAction = "resume"
	ActionClockOut ClockAction = "clock_out"
)

// Event maps a clock action onto the announcement vocabulary.
// Resuming from a pause is announced as a new entrada.
func (a ClockAction) Event() EventType {
	switch a {
	case ActionClockIn, ActionResume:
		return EventEntrada
	case ActionPause:
		return EventPausa
	case ActionClockOut:
		return EventSalida
	default:
		return ""
	}
}

// ParseClockAction accepts the canonical action names plus the short
// aliases used by the CLI ("in", "out") and the event names the web
// front-end sends ("entrada", "pausa", "salida").
func ParseClockAction(s string) (ClockAction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clock_in", "in", "entrada":
		return ActionClockIn, nil
	case "pause", "pausa":
		return ActionPause, nil
	case "resume":
		return ActionResume, nil
	case "clock_out", "out", "salida":
		return ActionClockOut, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

type EventType string

const (
	EventEntrada EventType = "entrada"
	EventPausa   EventType = "pausa"
	EventSalida  EventType = "salida"
)

// ParseEventType validates an event name.
func ParseEventType(s string) (EventType, error) {
	switch e := EventType(strings.ToLower(strings.TrimSpace(s))); e {
	case EventEntrada, EventPausa, EventSalida:
		return e, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// ActionForEvent picks the clock action an event stands for in the given
// state. An entrada while on pause is a resume; everywhere else it starts a
// shift.
func ActionForEvent(e EventType, from SessionState) (ClockAction, error) {
	switch e {
	case EventEntrada:
		if from == StateOnPause {
			return ActionResume, nil
		}
		return ActionClockIn, nil
	case EventPausa:
		return ActionPause, nil
	case EventSalida:
		return ActionClockOut, nil
	default:
		return "", fmt.Errorf("%w: event %q", ErrUnknownAction, e)
	}
}

type Locale string

const (
	LocaleYummy Locale = "yummy"
	LocaleUwu   Locale = "uwu"
)

// Locales lists every storefront in display order.
var Locales = []Locale{LocaleYummy, LocaleUwu}

// ParseLocale validates a storefront name.
func ParseLocale(s string) (Locale, error) {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case LocaleYummy:
		return LocaleYummy, nil
	case LocaleUwu:
		return LocaleUwu, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLocale, s)
	}
}

// ShopName is the human-facing storefront name.
func (l Locale) ShopName() string {
	switch l {
	case LocaleYummy:
		return "🍦 Yummy Ice Cream"
	case LocaleUwu:
		return "☕ UwU Café"
	default:
		return strings.ToUpper(string(l))
	}
}

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWorker Role = "worker"
)

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleWorker:
		return RoleWorker, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidUser, s)
	}
}

type NotificationKind string

const (
	KindTimeLog  NotificationKind = "time_log"
	KindSalesLog NotificationKind = "sales_log"
)

type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)
