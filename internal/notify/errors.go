package notify

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the webhook host could not be reached.
	ErrUnavailable = errors.New("webhook unavailable")

	// ErrTimeout indicates the delivery exceeded the configured timeout.
	ErrTimeout = errors.New("webhook request timed out")

	// ErrRejected indicates a 4xx answer other than 429. Retrying the same
	// payload will not help.
	ErrRejected = errors.New("webhook rejected payload")

	// ErrRetryExhausted indicates every attempt failed with a retryable
	// status.
	ErrRetryExhausted = errors.New("webhook retries exhausted")

	// ErrNoWebhook indicates no http(s) URL is configured for a locale and
	// notification kind.
	ErrNoWebhook = errors.New("no webhook configured")
)

// StatusError carries a non-2xx webhook answer.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("webhook returned status %d", e.Code)
	}
	return fmt.Sprintf("webhook returned status %d: %s", e.Code, e.Body)
}

// Retryable reports whether the status is worth another attempt.
func (e *StatusError) Retryable() bool {
	return e.Code == 429 || e.Code >= 500
}
