package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"stock-system/internal/domain"
	"stock-system/internal/repository"
)

// EventPublisher forwards drained domain events to the broker. A nil
// publisher is valid: events are then dropped after persistence, which is
// what tests and the seeder want.
type EventPublisher interface {
	Publish(ctx context.Context, events []domain.DomainEvent) error
}

// Service bundles the application services for wiring.
type Service struct {
	Stock      *StockOperationService
	StockQuery *StockQueryService
	Order      *OrderService
}

func New(repo *repository.Repository, publisher EventPublisher, lg *zap.Logger) *Service {
	return &Service{
		Stock:      NewStockOperationService(repo.Stock, publisher, lg),
		StockQuery: NewStockQueryService(repo.Stock),
		Order:      NewOrderService(repo.Order, repo.Menu, repo.Staff, publisher, lg),
	}
}

type eventDrainer struct {
	publisher EventPublisher
}

// drain publishes the aggregate's pending events and clears the buffer.
// Publish failures propagate; the aggregate state is already saved, so
// callers decide whether a lost event is fatal.
func (d eventDrainer) drain(ctx context.Context, rec interface {
	Events() []domain.DomainEvent
	ClearEvents()
}) error {
	events := rec.Events()
	if len(events) == 0 {
		return nil
	}
	if d.publisher != nil {
		if err := d.publisher.Publish(ctx, events); err != nil {
			return fmt.Errorf("failed to publish events: %w", err)
		}
	}
	rec.ClearEvents()
	return nil
}
