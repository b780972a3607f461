package board

import (
	"time"

	"github.com/google/uuid"

	"github.com/appetiteclub/kitchenboard/pkg/enums/itemstatus"
	"github.com/appetiteclub/kitchenboard/pkg/enums/orderstatus"
)

type OrderID = uuid.UUID
type ItemID = uuid.UUID
type MenuItemID = uuid.UUID

// Modifier is one selected option within a modifier group.
type Modifier struct {
	Group  string `json:"group_name"`
	Option string `json:"option_value"`
}

// Item is one line within an order. Status carries the board vocabulary
// (pending/done); the wire mapping lives in the itemstatus enum.
type Item struct {
	ID         ItemID     `json:"id"`
	MenuItemID MenuItemID `json:"menu_item_id"`
	Name       string     `json:"name"`
	Quantity   int        `json:"quantity"`
	Category   string     `json:"category"`
	Status     string     `json:"status"`
	Modifiers  []Modifier `json:"modifiers,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

func (it *Item) Done() bool {
	return it.Status == itemstatus.Statuses.Done.Code()
}

// Order is one ticket for one table, as last fetched from the order
// service. Status is the persisted order status; delayed is derived at
// read time and never stored here.
type Order struct {
	ID          OrderID   `json:"id"`
	TableNumber string    `json:"table_number"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	Items       []Item    `json:"items"`
}

func (o *Order) GetID() uuid.UUID {
	return o.ID
}

func (o *Order) ResourceType() string {
	return "order"
}

// Age returns how long the order has been open. A zero CreatedAt means the
// server sent nothing usable; the order then never ages into delayed.
func (o *Order) Age(now time.Time) time.Duration {
	if o.CreatedAt.IsZero() {
		return 0
	}
	age := now.Sub(o.CreatedAt)
	if age < 0 {
		return 0
	}
	return age
}

// Item returns the line with the given ID, or nil.
func (o *Order) Item(id ItemID) *Item {
	for i := range o.Items {
		if o.Items[i].ID == id {
			return &o.Items[i]
		}
	}
	return nil
}

func (o *Order) Completed() bool {
	return o.Status == orderstatus.Statuses.Completed.Code()
}

// AllItemsDone reports whether every item would be done after applying
// edits (board vocabulary, keyed by item ID) on top of the current state.
// Orders with no items are never considered done.
func (o *Order) AllItemsDone(edits map[ItemID]string) bool {
	if len(o.Items) == 0 {
		return false
	}
	for i := range o.Items {
		status := o.Items[i].Status
		if edit, ok := edits[o.Items[i].ID]; ok {
			status = edit
		}
		if status != itemstatus.Statuses.Done.Code() {
			return false
		}
	}
	return true
}

// DoneCount returns how many items are already done.
func (o *Order) DoneCount() int {
	var n int
	for i := range o.Items {
		if o.Items[i].Done() {
			n++
		}
	}
	return n
}
