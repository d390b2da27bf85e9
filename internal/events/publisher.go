package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"stock-system/internal/connections/rabbitmq"
	"stock-system/internal/domain"
)

// Publisher forwards drained domain events to the events exchange. The
// event name is the routing key, so consumers bind with patterns like
// "stock.*" or "stock.low_stock_alert".
type Publisher struct {
	mq *rabbitmq.Client
	lg *zap.Logger
}

func NewPublisher(mq *rabbitmq.Client, lg *zap.Logger) *Publisher {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Publisher{mq: mq, lg: lg}
}

func (p *Publisher) Publish(ctx context.Context, events []domain.DomainEvent) error {
	for _, event := range events {
		body, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", event.EventName(), err)
		}
		headers := amqp.Table{"x-event-name": event.EventName()}
		if err := p.mq.Publish(ctx, rabbitmq.EventsExchange, event.EventName(), body, headers); err != nil {
			return fmt.Errorf("failed to publish event %s: %w", event.EventName(), err)
		}
		p.lg.Debug("event_published", zap.String("event", event.EventName()))
	}
	return nil
}
