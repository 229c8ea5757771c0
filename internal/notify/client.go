package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Client posts a rendered payload to a webhook URL.
type Client interface {
	Post(ctx context.Context, url string, payload []byte) error
}

// ClientConfig controls a single delivery.
type ClientConfig struct {
	TimeoutMs  int
	MaxRetries int
	// RetryDelayMs is the pause before each extra attempt. A Retry-After
	// header overrides it, capped at one timeout.
	RetryDelayMs int
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		TimeoutMs:    5000,
		MaxRetries:   2,
		RetryDelayMs: 500,
	}
}

type webhookClient struct {
	cfg  ClientConfig
	http *http.Client
}

// NewWebhookClient creates a Client for Discord-style webhooks.
func NewWebhookClient(cfg ClientConfig) Client {
	return &webhookClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

func (c *webhookClient) Post(ctx context.Context, url string, payload []byte) error {
	if c.cfg.TimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
		defer cancel()
	}

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		if i > 0 {
			if !c.wait(ctx, lastErr) {
				break
			}
		}
		err := c.doRequest(ctx, url, payload)
		if err == nil {
			return nil
		}
		lastErr = err

		var se *StatusError
		if errors.As(err, &se) && !se.Retryable() {
			return fmt.Errorf("%w: %v", ErrRejected, err)
		}
		if ctx.Err() != nil {
			break
		}
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if isConnectionError(lastErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
	}
	return fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
}

func (c *webhookClient) doRequest(ctx context.Context, url string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &retryAfterError{
		StatusError: &StatusError{Code: resp.StatusCode, Body: string(body)},
		after:       parseRetryAfter(resp.Header.Get("Retry-After")),
	}
}

// wait sleeps before the next attempt and reports false if ctx ended first.
func (c *webhookClient) wait(ctx context.Context, lastErr error) bool {
	delay := time.Duration(c.cfg.RetryDelayMs) * time.Millisecond
	var ra *retryAfterError
	if errors.As(lastErr, &ra) && ra.after > 0 {
		delay = ra.after
		if limit := time.Duration(c.cfg.TimeoutMs) * time.Millisecond; limit > 0 && delay > limit {
			delay = limit
		}
	}
	if delay <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

type retryAfterError struct {
	*StatusError
	after time.Duration
}

func (e *retryAfterError) Unwrap() error { return e.StatusError }

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if d, err := time.ParseDuration(v + "s"); err == nil && d > 0 {
		return d
	}
	return 0
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrRejected):
		return "REJECTED"
	case errors.Is(err, ErrNoWebhook):
		return "NO_WEBHOOK"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}
