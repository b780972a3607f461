package board

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"

	"github.com/appetiteclub/kitchenboard/pkg/enums/itemstatus"
	"github.com/appetiteclub/kitchenboard/pkg/enums/orderstatus"
	"github.com/appetiteclub/kitchenboard/pkg/event"
)

// UnknownItemPolicy decides what happens when a batch edit names an item
// the order does not contain.
type UnknownItemPolicy int

const (
	// DropUnknownEdits silently discards stale references and reports them
	// in the outcome. This is the historical board behavior.
	DropUnknownEdits UnknownItemPolicy = iota
	// RejectUnknownEdits fails the whole batch with ErrUnknownItem.
	RejectUnknownEdits
)

// BatchOutcome reports what a committed batch did.
type BatchOutcome struct {
	OrderID OrderID  `json:"order_id"`
	Applied int      `json:"applied"`
	Dropped []ItemID `json:"dropped,omitempty"`
	// Completed is set when the batch covered the last outstanding item
	// and the coordinator also marked the order completed.
	Completed bool `json:"completed"`
	// NoOp is set when nothing needed to change and no write was issued.
	NoOp bool `json:"no_op"`
}

// Coordinator owns the write path of the board: it validates item-level
// status edits against the working set, translates them to the order
// service vocabulary, detects order completion, and refreshes the store
// after every successful mutation so the board reflects server truth.
//
// It also owns the per-order edit overlays for open detail sessions, and
// refuses a second batch for an order while one is still in flight.
type Coordinator struct {
	mu        sync.Mutex
	sessions  map[OrderID]*EditOverlay
	inFlight  map[OrderID]bool
	svc       OrderService
	store     *OrderStore
	publisher events.Publisher
	policy    UnknownItemPolicy
	logger    apt.Logger
}

type CoordinatorOption func(*Coordinator)

// WithUnknownItemPolicy selects how stale item references are handled.
func WithUnknownItemPolicy(p UnknownItemPolicy) CoordinatorOption {
	return func(c *Coordinator) {
		c.policy = p
	}
}

// WithPublisher makes the coordinator announce committed batches on the
// board topic. Optional; a nil publisher disables it.
func WithPublisher(p events.Publisher) CoordinatorOption {
	return func(c *Coordinator) {
		c.publisher = p
	}
}

func NewCoordinator(svc OrderService, store *OrderStore, logger apt.Logger, opts ...CoordinatorOption) *Coordinator {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	c := &Coordinator{
		sessions: make(map[OrderID]*EditOverlay),
		inFlight: make(map[OrderID]bool),
		svc:      svc,
		store:    store,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OpenSession starts a fresh edit overlay for an order detail view. Any
// previous session for the order is discarded; overlays are never merged
// across sessions.
func (c *Coordinator) OpenSession(orderID OrderID) *EditOverlay {
	c.mu.Lock()
	defer c.mu.Unlock()

	overlay := NewEditOverlay(orderID)
	c.sessions[orderID] = overlay
	return overlay
}

// Session returns the open overlay for an order, or nil.
func (c *Coordinator) Session(orderID OrderID) *EditOverlay {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessions[orderID]
}

// CloseSession discards the overlay without committing (cancel path).
func (c *Coordinator) CloseSession(orderID OrderID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, orderID)
}

// ApplyBatch commits a set of item status edits (board vocabulary, keyed
// by item ID) for one order. Omitted items keep their persisted status.
//
// If the batch leaves every item done, the order-level completion write is
// issued after the item write succeeds. On success the session overlay is
// cleared and the store re-fetched; on failure both are left untouched so
// the caller can retry with the same edits.
func (c *Coordinator) ApplyBatch(ctx context.Context, orderID OrderID, edits map[ItemID]string) (*BatchOutcome, error) {
	if err := c.acquire(orderID); err != nil {
		return nil, err
	}
	defer c.release(orderID)

	order := c.store.Get(orderID)
	if order == nil {
		return nil, ErrUnknownOrder
	}

	valid, dropped, err := c.validateEdits(order, edits)
	if err != nil {
		return nil, err
	}

	outcome := &BatchOutcome{OrderID: orderID, Dropped: dropped}

	if len(valid) == 0 {
		// Nothing needed to change; success-as-no-op, no write issued.
		outcome.NoOp = true
		c.CloseSession(orderID)
		return outcome, nil
	}

	updates := make([]ItemStatusUpdate, 0, len(valid))
	for itemID, status := range valid {
		item := order.Item(itemID)
		updates = append(updates, ItemStatusUpdate{
			MenuItemID: item.MenuItemID.String(),
			Status:     itemstatus.ByName(status).Wire(),
		})
	}

	completes := order.AllItemsDone(valid)

	if err := c.svc.UpdateOrderItems(ctx, orderID, updates); err != nil {
		return nil, err
	}
	outcome.Applied = len(updates)

	if completes {
		if err := c.svc.UpdateOrderStatus(ctx, orderID, orderstatus.Statuses.Completed.Code()); err != nil {
			return nil, err
		}
		outcome.Completed = true
	}

	c.CloseSession(orderID)

	if err := c.store.Refresh(ctx); err != nil {
		// The writes landed; a failed refresh only means the board is
		// stale until the next one.
		c.logger.Errorf("refresh after batch failed: %v", err)
	}

	c.publishOutcome(ctx, order, outcome)

	return outcome, nil
}

// StartOrder moves a pending order to preparing.
func (c *Coordinator) StartOrder(ctx context.Context, orderID OrderID) error {
	order := c.store.Get(orderID)
	if order == nil {
		return ErrUnknownOrder
	}
	if order.Status != orderstatus.Statuses.Pending.Code() {
		return ErrOrderNotPending
	}

	if err := c.svc.UpdateOrderStatus(ctx, orderID, orderstatus.Statuses.Preparing.Code()); err != nil {
		return err
	}

	if err := c.store.Refresh(ctx); err != nil {
		c.logger.Errorf("refresh after start failed: %v", err)
	}
	return nil
}

// CompleteOrder marks every item done through the regular batch path,
// which in turn triggers the order-level completion write.
func (c *Coordinator) CompleteOrder(ctx context.Context, orderID OrderID) (*BatchOutcome, error) {
	order := c.store.Get(orderID)
	if order == nil {
		return nil, ErrUnknownOrder
	}

	edits := make(map[ItemID]string, len(order.Items))
	for i := range order.Items {
		edits[order.Items[i].ID] = itemstatus.Statuses.Done.Code()
	}

	return c.ApplyBatch(ctx, orderID, edits)
}

// MarkItemDone forces a single item to done. Used by the summary view's
// bulk actions, one call per selected (order, item) pair.
func (c *Coordinator) MarkItemDone(ctx context.Context, orderID OrderID, itemID ItemID) (*BatchOutcome, error) {
	return c.ApplyBatch(ctx, orderID, map[ItemID]string{
		itemID: itemstatus.Statuses.Done.Code(),
	})
}

// validateEdits splits edits into applicable ones and stale references,
// honoring the unknown-item policy. Statuses outside the board vocabulary
// always fail.
func (c *Coordinator) validateEdits(order *Order, edits map[ItemID]string) (map[ItemID]string, []ItemID, error) {
	valid := make(map[ItemID]string, len(edits))
	var dropped []ItemID

	for itemID, status := range edits {
		if itemstatus.ByName(status) == nil {
			return nil, nil, ErrInvalidStatus
		}
		if order.Item(itemID) == nil {
			if c.policy == RejectUnknownEdits {
				return nil, nil, ErrUnknownItem
			}
			dropped = append(dropped, itemID)
			c.logger.Debugf("dropping edit for unknown item %s on order %s", itemID, order.ID)
			continue
		}
		valid[itemID] = status
	}

	return valid, dropped, nil
}

func (c *Coordinator) acquire(orderID OrderID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight[orderID] {
		return ErrBatchInFlight
	}
	c.inFlight[orderID] = true
	return nil
}

func (c *Coordinator) release(orderID OrderID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, orderID)
}

func (c *Coordinator) publishOutcome(ctx context.Context, order *Order, outcome *BatchOutcome) {
	if c.publisher == nil || outcome.NoOp {
		return
	}

	dropped := make([]string, 0, len(outcome.Dropped))
	for _, id := range outcome.Dropped {
		dropped = append(dropped, id.String())
	}

	payload := event.BoardBatchAppliedEvent{
		EventType:   event.EventBoardBatchApplied,
		OccurredAt:  time.Now().UTC(),
		OrderID:     order.ID.String(),
		Applied:     outcome.Applied,
		Dropped:     dropped,
		TableNumber: order.TableNumber,
	}
	data, _ := json.Marshal(payload)
	if err := c.publisher.Publish(ctx, event.BoardTopic, data); err != nil {
		c.logger.Errorf("failed to publish batch.applied event: %v", err)
	}

	if !outcome.Completed {
		return
	}

	completed := event.BoardOrderCompletedEvent{
		EventType:   event.EventBoardOrderCompleted,
		OccurredAt:  time.Now().UTC(),
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		TableNumber: order.TableNumber,
	}
	data, _ = json.Marshal(completed)
	if err := c.publisher.Publish(ctx, event.BoardTopic, data); err != nil {
		c.logger.Errorf("failed to publish order.completed event: %v", err)
	}
}
