package board

import (
	"sort"
	"time"

	"github.com/appetiteclub/kitchenboard/pkg/enums/category"
	"github.com/appetiteclub/kitchenboard/pkg/enums/orderstatus"
)

// SummaryRef traces one summary row back to a contributing order line, so
// bulk actions can target the exact (order, item) pair.
type SummaryRef struct {
	OrderID     OrderID `json:"order_id"`
	ItemID      ItemID  `json:"item_id"`
	OrderNumber string  `json:"order_number"`
	TableNumber string  `json:"table_number"`
	Quantity    int     `json:"quantity"`
}

// ItemSummary is the cross-order rollup for one item name: everything the
// kitchen still has to make of it, across all open orders.
type ItemSummary struct {
	Name          string       `json:"name"`
	Category      string       `json:"category"`
	TotalQuantity int          `json:"total_quantity"`
	Refs          []SummaryRef `json:"refs"`
}

// CategoryGroup holds the summary rows for one menu category.
type CategoryGroup struct {
	Category string        `json:"category"`
	Label    string        `json:"label"`
	Items    []ItemSummary `json:"items"`
}

// Summarize builds the "what to cook next" view: outstanding (not done)
// items across all orders, merged by item name, grouped by category in the
// fixed kitchen order. Rebuilt from scratch on every call; it is a pure
// projection of the working set.
//
// Merging by display name rather than menu item ID is intentional: the
// kitchen cares what to cook, not which catalog entry sold it. The refs
// keep the real IDs so actions stay precise.
func Summarize(orders []*Order, now time.Time) []CategoryGroup {
	rows := make(map[string]*ItemSummary)

	for _, order := range orders {
		if DeriveOrderStatus(order, now) == orderstatus.Statuses.Completed.Code() {
			continue
		}
		for i := range order.Items {
			it := &order.Items[i]
			if it.Done() {
				continue
			}

			row, ok := rows[it.Name]
			if !ok {
				row = &ItemSummary{Name: it.Name, Category: it.Category}
				rows[it.Name] = row
			}
			row.TotalQuantity += it.Quantity
			row.Refs = append(row.Refs, SummaryRef{
				OrderID:     order.ID,
				ItemID:      it.ID,
				OrderNumber: order.OrderNumber,
				TableNumber: order.TableNumber,
				Quantity:    it.Quantity,
			})
		}
	}

	byCategory := make(map[string][]ItemSummary)
	for _, row := range rows {
		sort.SliceStable(row.Refs, func(i, j int) bool {
			return row.Refs[i].TableNumber < row.Refs[j].TableNumber
		})
		byCategory[row.Category] = append(byCategory[row.Category], *row)
	}

	groups := make([]CategoryGroup, 0, len(byCategory))
	for _, cat := range category.All {
		items := byCategory[cat.Code()]
		if len(items) == 0 {
			continue
		}
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].TotalQuantity != items[j].TotalQuantity {
				return items[i].TotalQuantity > items[j].TotalQuantity
			}
			return items[i].Name < items[j].Name
		})
		groups = append(groups, CategoryGroup{
			Category: cat.Code(),
			Label:    cat.Label(),
			Items:    items,
		})
	}

	return groups
}
