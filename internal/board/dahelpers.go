package board

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/appetiteclub/kitchenboard/pkg/enums/category"
	"github.com/appetiteclub/kitchenboard/pkg/enums/itemstatus"
)

// decodeSuccessResponse copies the dynamic response payload into dest.
func decodeSuccessResponse(resp *apt.SuccessResponse, dest interface{}) error {
	if resp == nil {
		return errors.New("nil success response")
	}

	raw, err := json.Marshal(resp.Data)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return err
	}

	return nil
}

// resourceToOrder converts a wire order into the board's domain record.
// Malformed fields degrade instead of failing: an unparseable created_at
// becomes the zero time (so the order never ages into delayed), a missing
// category falls back to name matching.
func resourceToOrder(res *orderResource) Order {
	id, _ := uuid.Parse(res.ID)

	var createdAt time.Time
	if res.CreatedAt != "" {
		if parsed, err := time.Parse(time.RFC3339, res.CreatedAt); err == nil {
			createdAt = parsed
		}
	}

	items := make([]Item, 0, len(res.Items))
	for i := range res.Items {
		items = append(items, resourceToItem(&res.Items[i]))
	}

	return Order{
		ID:          id,
		TableNumber: res.TableNumber,
		OrderNumber: res.OrderNumber,
		Status:      res.Status,
		CreatedAt:   createdAt,
		Items:       items,
	}
}

func resourceToItem(res *orderItemResource) Item {
	id, _ := uuid.Parse(res.ID)
	menuItemID, _ := uuid.Parse(res.MenuItemID)

	cat := res.Category
	if category.ByName(cat) == nil {
		cat = category.Match(res.Name).Code()
	}

	var modifiers []Modifier
	for _, m := range res.Modifiers {
		modifiers = append(modifiers, Modifier{Group: m.Group, Option: m.Option})
	}

	return Item{
		ID:         id,
		MenuItemID: menuItemID,
		Name:       res.Name,
		Quantity:   res.Quantity,
		Category:   cat,
		Status:     itemstatus.FromWire(res.Status).Code(),
		Modifiers:  modifiers,
		Notes:      res.Notes,
	}
}
