package domain

import "time"

// Notification is an outbox entry waiting to be delivered to a webhook.
type Notification struct {
	ID            string
	Kind          NotificationKind
	Locale        Locale
	Payload       []byte
	Status        NotificationStatus
	Attempts      int
	LastError     string
	NextAttemptAt time.Time
	CreatedAt     time.Time
	SentAt        *time.Time
}
