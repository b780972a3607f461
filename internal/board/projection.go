package board

import (
	"sort"
	"time"

	"github.com/appetiteclub/kitchenboard/pkg/enums/category"
	"github.com/appetiteclub/kitchenboard/pkg/enums/orderstatus"
)

// Board filters. A filter is either one of these codes or a category code.
const (
	FilterAll       = "all"
	FilterCompleted = "completed"
)

// ValidFilter reports whether code names a board filter.
func ValidFilter(code string) bool {
	if code == FilterAll || code == FilterCompleted {
		return true
	}
	return category.ByName(code) != nil
}

// OrderView is one order as the board displays it: effective status, the
// working (not yet done) items in display order, and progress counts over
// the full item set.
type OrderView struct {
	ID          OrderID    `json:"id"`
	TableNumber string     `json:"table_number"`
	OrderNumber string     `json:"order_number"`
	Status      string     `json:"status"`
	AgeMinutes  int        `json:"age_minutes"`
	Items       []ItemView `json:"items"`
	DoneItems   int        `json:"done_items"`
	TotalItems  int        `json:"total_items"`
}

type ItemView struct {
	ID         ItemID     `json:"id"`
	MenuItemID MenuItemID `json:"menu_item_id"`
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	Quantity   int        `json:"quantity"`
	Status     string     `json:"status"`
	Modifiers  []Modifier `json:"modifiers,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

// Project derives the displayed order list from the working set under the
// active filter. Pure: no store mutation, effective statuses computed
// against now.
//
// Non-completed filters show an order only while it still has work: at
// least one item not done and the order itself not effectively completed.
// The completed filter shows completed orders regardless of item state.
// Orders with zero items never show anywhere.
func Project(orders []*Order, filter string, now time.Time) []OrderView {
	// Oldest tickets first; the store hands out map order.
	sorted := make([]*Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	views := make([]OrderView, 0, len(sorted))

	for _, order := range sorted {
		if len(order.Items) == 0 {
			continue
		}

		effective := DeriveOrderStatus(order, now)

		if filter == FilterCompleted {
			if effective != orderstatus.Statuses.Completed.Code() {
				continue
			}
		} else {
			if effective == orderstatus.Statuses.Completed.Code() {
				continue
			}
			if order.DoneCount() == len(order.Items) {
				continue
			}
			if filter != FilterAll && !orderHasCategory(order, filter) {
				continue
			}
		}

		views = append(views, orderView(order, effective, filter, now))
	}

	return views
}

func orderView(order *Order, effective, filter string, now time.Time) OrderView {
	view := OrderView{
		ID:          order.ID,
		TableNumber: order.TableNumber,
		OrderNumber: order.OrderNumber,
		Status:      effective,
		AgeMinutes:  int(order.Age(now) / time.Minute),
		DoneItems:   order.DoneCount(),
		TotalItems:  len(order.Items),
	}

	for i := range order.Items {
		it := &order.Items[i]
		// Done items stay in the order for progress counts but are hidden
		// from the working view.
		if filter != FilterCompleted && it.Done() {
			continue
		}
		view.Items = append(view.Items, ItemView{
			ID:         it.ID,
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Category:   it.Category,
			Quantity:   it.Quantity,
			Status:     it.Status,
			Modifiers:  it.Modifiers,
			Notes:      it.Notes,
		})
	}

	sort.SliceStable(view.Items, func(i, j int) bool {
		return itemLess(&view.Items[i], &view.Items[j], filter)
	})

	return view
}

// itemLess orders items for display: items matching the active category
// filter first, then by the fixed category priority.
func itemLess(a, b *ItemView, filter string) bool {
	if filter != FilterAll && filter != FilterCompleted {
		am, bm := a.Category == filter, b.Category == filter
		if am != bm {
			return am
		}
	}
	return category.Priority(a.Category) < category.Priority(b.Category)
}

func orderHasCategory(o *Order, cat string) bool {
	for i := range o.Items {
		if o.Items[i].Category == cat && !o.Items[i].Done() {
			return true
		}
	}
	return false
}

