package domain

import "time"

// ShiftLog is the immutable record of one completed shift.
type ShiftLog struct {
	ID             string
	UserID         string
	Username       string
	Locale         Locale
	StartTime      time.Time
	EndTime        time.Time
	TotalPauseTime time.Duration
	TotalWorkTime  time.Duration
}

// TimeLog is the raw record of a single clock event.
type TimeLog struct {
	ID        string
	UserID    string
	Username  string
	Locale    Locale
	Type      EventType
	Timestamp time.Time
}

// ShiftFilter narrows shift history queries. Zero fields match everything;
// Limit <= 0 means no limit.
type ShiftFilter struct {
	UserID string
	Locale Locale
	Limit  int
}
