package httpapi

import (
	"time"

	"github.com/alexanderramin/shiftclock/internal/domain"
)

// Durations travel as milliseconds and timestamps as RFC 3339, the shapes
// the storefront front-end already reads.

type sessionJSON struct {
	UserID         string     `json:"userId"`
	State          string     `json:"state"`
	IsActive       bool       `json:"isActive"`
	IsOnPause      bool       `json:"isOnPause"`
	StartTime      *time.Time `json:"startTime"`
	LastPauseTime  *time.Time `json:"lastPauseTime"`
	TotalPauseTime int64      `json:"totalPauseTime"`
}

func toSession(s *domain.WorkSession) sessionJSON {
	return sessionJSON{
		UserID:         s.UserID,
		State:          string(s.State()),
		IsActive:       s.IsActive,
		IsOnPause:      s.IsOnPause,
		StartTime:      s.StartTime,
		LastPauseTime:  s.LastPauseTime,
		TotalPauseTime: s.TotalPauseTime.Milliseconds(),
	}
}

type shiftJSON struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Username       string    `json:"username"`
	Locale         string    `json:"locale"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	TotalPauseTime int64     `json:"totalPauseTime"`
	TotalWorkTime  int64     `json:"totalWorkTime"`
}

func toShift(s *domain.ShiftLog) shiftJSON {
	return shiftJSON{
		ID:             s.ID,
		UserID:         s.UserID,
		Username:       s.Username,
		Locale:         string(s.Locale),
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
		TotalPauseTime: s.TotalPauseTime.Milliseconds(),
		TotalWorkTime:  s.TotalWorkTime.Milliseconds(),
	}
}

func toShifts(in []*domain.ShiftLog) []shiftJSON {
	out := make([]shiftJSON, 0, len(in))
	for _, s := range in {
		out = append(out, toShift(s))
	}
	return out
}

type timeLogJSON struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Locale    string    `json:"locale"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

func toTimeLogs(in []*domain.TimeLog) []timeLogJSON {
	out := make([]timeLogJSON, 0, len(in))
	for _, l := range in {
		out = append(out, timeLogJSON{
			ID:        l.ID,
			UserID:    l.UserID,
			Username:  l.Username,
			Locale:    string(l.Locale),
			Type:      string(l.Type),
			Timestamp: l.Timestamp,
		})
	}
	return out
}

// userJSON never carries the password hash.
type userJSON struct {
	ID             string   `json:"id"`
	Username       string   `json:"username"`
	Role           string   `json:"role"`
	AllowedLocales []string `json:"allowedLocales"`
}

func toUser(u *domain.User) userJSON {
	locales := make([]string, 0, len(u.AllowedLocales))
	for _, l := range u.AllowedLocales {
		locales = append(locales, string(l))
	}
	return userJSON{ID: u.ID, Username: u.Username, Role: string(u.Role), AllowedLocales: locales}
}

func toUsers(in []*domain.User) []userJSON {
	out := make([]userJSON, 0, len(in))
	for _, u := range in {
		out = append(out, toUser(u))
	}
	return out
}

type productJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Icon     string `json:"icon"`
	Category string `json:"category"`
}

func toProducts(in []*domain.Product) []productJSON {
	out := make([]productJSON, 0, len(in))
	for _, p := range in {
		out = append(out, productJSON{ID: p.ID, Name: p.Name, Price: p.Price, Icon: p.Icon, Category: p.Category})
	}
	return out
}

type saleItemJSON struct {
	productJSON
	Quantity int `json:"quantity"`
}

type saleJSON struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Username  string         `json:"username"`
	Locale    string         `json:"locale"`
	Items     []saleItemJSON `json:"items"`
	Total     int64          `json:"total"`
	Timestamp time.Time      `json:"timestamp"`
}

func toSale(s *domain.Sale) saleJSON {
	items := make([]saleItemJSON, 0, len(s.Items))
	for _, it := range s.Items {
		p := it.Product
		items = append(items, saleItemJSON{
			productJSON: productJSON{ID: p.ID, Name: p.Name, Price: p.Price, Icon: p.Icon, Category: p.Category},
			Quantity:    it.Quantity,
		})
	}
	return saleJSON{
		ID:        s.ID,
		UserID:    s.UserID,
		Username:  s.Username,
		Locale:    string(s.Locale),
		Items:     items,
		Total:     s.Total,
		Timestamp: s.Timestamp,
	}
}

func toSales(in []*domain.Sale) []saleJSON {
	out := make([]saleJSON, 0, len(in))
	for _, s := range in {
		out = append(out, toSale(s))
	}
	return out
}
