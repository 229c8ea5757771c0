package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/shiftclock/internal/domain"
)

// DeliveryEvent records one webhook delivery attempt by the dispatcher.
type DeliveryEvent struct {
	NotificationID string
	Kind           domain.NotificationKind
	Locale         domain.Locale
	Attempt        int
	Latency        time.Duration
	Success        bool
	Final          bool
	ErrorCode      string
}

// Observer receives delivery events for logging.
type Observer interface {
	OnDelivery(ctx context.Context, event DeliveryEvent)
}

type NoopObserver struct{}

func (NoopObserver) OnDelivery(context.Context, DeliveryEvent) {}

// LogObserver writes delivery events through slog.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnDelivery(ctx context.Context, e DeliveryEvent) {
	attrs := []any{
		"notification_id", e.NotificationID,
		"kind", string(e.Kind),
		"locale", string(e.Locale),
		"attempt", e.Attempt,
		"latency_ms", e.Latency.Milliseconds(),
	}
	switch {
	case e.Success:
		o.logger.InfoContext(ctx, "webhook_delivered", attrs...)
	case e.Final:
		o.logger.ErrorContext(ctx, "webhook_failed", append(attrs, "error_code", e.ErrorCode)...)
	default:
		o.logger.WarnContext(ctx, "webhook_retry_scheduled", append(attrs, "error_code", e.ErrorCode)...)
	}
}
