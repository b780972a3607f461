package event

import "time"

const (
	BoardTopic = "board.events"

	EventBoardBatchApplied   = "board.batch.applied"
	EventBoardOrderCompleted = "board.order.completed"
)

// BoardBatchAppliedEvent is published after the coordinator commits a batch
// of item status changes for one order.
type BoardBatchAppliedEvent struct {
	EventType   string    `json:"event_type"`
	OccurredAt  time.Time `json:"occurred_at"`
	OrderID     string    `json:"order_id"`
	Applied     int       `json:"applied"`
	Dropped     []string  `json:"dropped,omitempty"`
	TableNumber string    `json:"table_number,omitempty"`
}

// BoardOrderCompletedEvent is published when a batch completes the last
// outstanding item and the coordinator marks the whole order completed.
type BoardOrderCompletedEvent struct {
	EventType   string    `json:"event_type"`
	OccurredAt  time.Time `json:"occurred_at"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number,omitempty"`
	TableNumber string    `json:"table_number,omitempty"`
}
