package board

// EditOverlay holds the uncommitted item status toggles for one open
// order-detail session. It is a transient layer over server truth: seeded
// fresh every time a detail view opens, discarded on cancel, cleared after
// a successful commit. It is never merged into the store.
type EditOverlay struct {
	orderID OrderID
	edits   map[ItemID]string
}

func NewEditOverlay(orderID OrderID) *EditOverlay {
	return &EditOverlay{
		orderID: orderID,
		edits:   make(map[ItemID]string),
	}
}

func (ov *EditOverlay) OrderID() OrderID {
	return ov.orderID
}

// Set records an uncommitted status toggle (board vocabulary).
func (ov *EditOverlay) Set(itemID ItemID, status string) {
	ov.edits[itemID] = status
}

// Get returns the uncommitted status for an item, if any.
func (ov *EditOverlay) Get(itemID ItemID) (string, bool) {
	status, ok := ov.edits[itemID]
	return status, ok
}

// Edits returns a copy of the pending toggles.
func (ov *EditOverlay) Edits() map[ItemID]string {
	out := make(map[ItemID]string, len(ov.edits))
	for id, status := range ov.edits {
		out[id] = status
	}
	return out
}

func (ov *EditOverlay) Len() int {
	return len(ov.edits)
}

func (ov *EditOverlay) Clear() {
	ov.edits = make(map[ItemID]string)
}
