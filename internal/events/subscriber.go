package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"

	"github.com/appetiteclub/kitchenboard/internal/board"
	"github.com/appetiteclub/kitchenboard/pkg/event"
)

// OrderEventSubscriber listens for order lifecycle events and schedules a
// full store refresh when one arrives. Events are only a staleness signal;
// the store is always rebuilt from a full fetch, never patched from the
// event payload, so the board keeps the same visible-order semantics as
// pure polling.
type OrderEventSubscriber struct {
	subscriber events.Subscriber
	store      *board.OrderStore
	logger     apt.Logger
}

func NewOrderEventSubscriber(subscriber events.Subscriber, store *board.OrderStore, logger apt.Logger) *OrderEventSubscriber {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &OrderEventSubscriber{
		subscriber: subscriber,
		store:      store,
		logger:     logger,
	}
}

func (s *OrderEventSubscriber) Start(ctx context.Context) error {
	s.logger.Info("Starting OrderEventSubscriber for topic: " + event.OrdersTopic)

	if err := s.subscriber.Subscribe(ctx, event.OrdersTopic, s.handleEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", event.OrdersTopic, err)
	}

	return nil
}

func (s *OrderEventSubscriber) Stop(ctx context.Context) error {
	return nil
}

func (s *OrderEventSubscriber) handleEvent(ctx context.Context, msg []byte) error {
	var evt event.OrderEvent
	if err := json.Unmarshal(msg, &evt); err != nil {
		s.logger.Errorf("Failed to unmarshal order event: %v", err)
		return nil
	}

	switch evt.EventType {
	case event.EventOrderCreated,
		event.EventOrderUpdated,
		event.EventOrderStatusChanged,
		event.EventOrderItemsChanged:
	default:
		// Unknown event types are ignored (forward compatibility).
		return nil
	}

	if err := s.store.Refresh(ctx); err != nil {
		s.logger.Errorf("Refresh on %s failed: %v", evt.EventType, err)
		return nil
	}

	s.logger.Debugf("Refreshed order store on %s for order %s", evt.EventType, evt.OrderID)
	return nil
}
