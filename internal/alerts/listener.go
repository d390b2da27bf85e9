package alerts

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"stock-system/internal/connections/rabbitmq"
	"stock-system/internal/domain"
)

// Listener consumes low-stock alert events from the alert queue and logs
// them. Delivery semantics are at-least-once; repeated alerts for the
// same item are expected because the aggregate re-raises on every
// breaching mutation.
type Listener struct {
	mq       *rabbitmq.Client
	lg       *zap.Logger
	prefetch int
}

func NewListener(mq *rabbitmq.Client, lg *zap.Logger, prefetch int) *Listener {
	if prefetch <= 0 {
		prefetch = 1
	}
	return &Listener{mq: mq, lg: lg, prefetch: prefetch}
}

// Run blocks until the context is cancelled or the delivery channel closes.
func (l *Listener) Run(ctx context.Context) error {
	deliveries, err := l.mq.Consume(rabbitmq.AlertQueue, "low-stock-listener", l.prefetch)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			var alert domain.LowStockAlertRaised
			if err := json.Unmarshal(d.Body, &alert); err != nil {
				l.lg.Error("alert_decode_failed", zap.Error(err))
				_ = d.Nack(false, false)
				continue
			}
			l.lg.Warn("low_stock_alert",
				zap.String("stock_item_id", string(alert.StockItemID)),
				zap.String("item", alert.ItemName),
				zap.String("current", alert.CurrentQuantity.String()),
				zap.String("threshold", alert.Threshold.String()),
				zap.Time("occurred_at", alert.At))
			_ = d.Ack(false)
		}
	}
}
