package board

import (
	"time"

	"github.com/appetiteclub/kitchenboard/pkg/enums/orderstatus"
)

// DelayThreshold is how old a non-completed order must be before the board
// shows it as delayed. The boundary is exclusive: an order aged exactly 30
// minutes is not delayed yet.
const DelayThreshold = 30 * time.Minute

// DeriveOrderStatus computes the effective status of an order at a point
// in time. Delayed is purely a read-time annotation; nothing is written
// back, so the same order can become delayed between refreshes without any
// status change on the server.
func DeriveOrderStatus(o *Order, now time.Time) string {
	if o.Completed() {
		return orderstatus.Statuses.Completed.Code()
	}
	if o.Age(now) > DelayThreshold {
		return orderstatus.Statuses.Delayed.Code()
	}
	return o.Status
}

// DeriveItemStatus computes the effective status of an item: the persisted
// status overridden by any uncommitted edit in the session overlay. A nil
// overlay means server truth.
func DeriveItemStatus(it *Item, overlay *EditOverlay) string {
	if overlay != nil {
		if status, ok := overlay.Get(it.ID); ok {
			return status
		}
	}
	return it.Status
}
