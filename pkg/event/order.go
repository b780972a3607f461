package event

import "time"

const (
	OrdersTopic = "orders.events"

	EventOrderCreated       = "order.created"
	EventOrderUpdated       = "order.updated"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderItemsChanged  = "order.items_changed"
)

// OrderEvent is the envelope the order service publishes for order
// lifecycle changes. The board only needs enough to decide that its
// working set is stale; the payload never patches the store directly.
type OrderEvent struct {
	EventType   string    `json:"event_type"`
	OccurredAt  time.Time `json:"occurred_at"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number,omitempty"`
	TableNumber string    `json:"table_number,omitempty"`
	Status      string    `json:"status,omitempty"`
}
