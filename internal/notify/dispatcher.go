package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/repository"
)

// DispatchConfig controls how the outbox is drained.
type DispatchConfig struct {
	BatchSize   int
	Interval    time.Duration
	MaxAttempts int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
}

func DefaultDispatchConfig() DispatchConfig {
	return DispatchConfig{
		BatchSize:   20,
		Interval:    5 * time.Second,
		MaxAttempts: 6,
		BaseBackoff: 10 * time.Second,
		MaxBackoff:  10 * time.Minute,
	}
}

// Backoff is the delay before retry number attempts+1:
// BaseBackoff * 2^(attempts-1), capped at MaxBackoff.
func (c DispatchConfig) Backoff(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	d := c.BaseBackoff
	for i := 1; i < attempts; i++ {
		d *= 2
		if c.MaxBackoff > 0 && d >= c.MaxBackoff {
			return c.MaxBackoff
		}
	}
	if c.MaxBackoff > 0 && d > c.MaxBackoff {
		return c.MaxBackoff
	}
	return d
}

// FlushResult counts what one Flush did.
type FlushResult struct {
	Sent    int
	Retried int
	Failed  int
}

// Dispatcher delivers outbox notifications. It never touches sessions or
// shift history, so a failing webhook cannot undo a clock action.
type Dispatcher struct {
	repo     repository.NotificationRepo
	client   Client
	dir      Directory
	cfg      DispatchConfig
	observer Observer
	logger   *slog.Logger
	now      func() time.Time
}

func NewDispatcher(repo repository.NotificationRepo, client Client, dir Directory, cfg DispatchConfig, observer Observer) *Dispatcher {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Dispatcher{
		repo:     repo,
		client:   client,
		dir:      dir,
		cfg:      cfg,
		observer: observer,
		logger:   slog.Default(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (d *Dispatcher) WithLogger(l *slog.Logger) *Dispatcher {
	if l != nil {
		d.logger = l
	}
	return d
}

// WithClock replaces the time source. Tests use it to step through backoff.
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// Flush sends every due notification in one batch.
func (d *Dispatcher) Flush(ctx context.Context) (FlushResult, error) {
	var res FlushResult
	due, err := d.repo.ListDue(ctx, d.now(), d.cfg.BatchSize)
	if err != nil {
		return res, fmt.Errorf("loading due notifications: %w", err)
	}

	for _, n := range due {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		final, err := d.deliver(ctx, n)
		switch {
		case err == nil:
			res.Sent++
		case final:
			res.Failed++
		default:
			res.Retried++
		}
		if err != nil && errors.Is(err, errBookkeeping) {
			return res, err
		}
	}
	return res, nil
}

var errBookkeeping = errors.New("outbox update failed")

// deliver sends one notification and records the outcome. It reports whether
// the row reached a terminal failed state.
func (d *Dispatcher) deliver(ctx context.Context, n *domain.Notification) (bool, error) {
	attempt := n.Attempts + 1
	start := time.Now()

	var sendErr error
	if url, ok := d.dir.WebhookURL(n.Locale, n.Kind); ok {
		sendErr = d.client.Post(ctx, url, n.Payload)
	} else {
		sendErr = fmt.Errorf("%w for %s %s", ErrNoWebhook, n.Locale, n.Kind)
	}

	event := DeliveryEvent{
		NotificationID: n.ID,
		Kind:           n.Kind,
		Locale:         n.Locale,
		Attempt:        attempt,
		Latency:        time.Since(start),
		Success:        sendErr == nil,
	}

	if sendErr == nil {
		d.observer.OnDelivery(ctx, event)
		if err := d.repo.MarkSent(ctx, n.ID, d.now()); err != nil {
			return false, fmt.Errorf("%w: %v", errBookkeeping, err)
		}
		return false, nil
	}

	final := attempt >= d.cfg.MaxAttempts ||
		errors.Is(sendErr, ErrRejected) ||
		errors.Is(sendErr, ErrNoWebhook)
	var next time.Time
	if !final {
		next = d.now().Add(d.cfg.Backoff(attempt))
	}
	event.Final = final
	event.ErrorCode = errorCode(sendErr)
	d.observer.OnDelivery(ctx, event)

	if err := d.repo.MarkFailed(ctx, n.ID, sendErr.Error(), next); err != nil {
		return final, fmt.Errorf("%w: %v", errBookkeeping, err)
	}
	return final, sendErr
}

// Run flushes on every interval tick until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	interval := d.cfg.Interval
	if interval <= 0 {
		interval = DefaultDispatchConfig().Interval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := d.Flush(ctx); err != nil && ctx.Err() == nil {
			d.logger.ErrorContext(ctx, "outbox_flush_failed", "error", err.Error())
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
