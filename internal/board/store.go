package board

import (
	"context"
	"sync"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

const defaultPageSize = 100

// OrderStore is the board's working set of kitchen orders: a read-through
// cache of the last full fetch from the order service, indexed by persisted
// status and by item category for board queries. It holds no authoritative
// state; Refresh replaces the whole set.
type OrderStore struct {
	mu sync.RWMutex
	// orders indexed by order_id
	orders map[OrderID]*Order
	// index by persisted status code -> order_id
	byStatus map[string][]OrderID
	// index by item category code -> order_id (orders with at least one
	// item of that category)
	byCategory map[string][]OrderID

	fetchedAt time.Time

	svc      OrderService
	pageSize int
	logger   apt.Logger
}

// NewOrderStore creates an empty store backed by the given order service.
func NewOrderStore(svc OrderService, logger apt.Logger) *OrderStore {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &OrderStore{
		orders:     make(map[OrderID]*Order),
		byStatus:   make(map[string][]OrderID),
		byCategory: make(map[string][]OrderID),
		svc:        svc,
		pageSize:   defaultPageSize,
		logger:     logger,
	}
}

// SetPageSize overrides the fetch page size (config driven).
func (s *OrderStore) SetPageSize(n int) {
	if n > 0 {
		s.pageSize = n
	}
}

// Warm performs the initial fetch. A failure leaves the store empty rather
// than aborting startup; the first successful refresh fills it.
func (s *OrderStore) Warm(ctx context.Context) error {
	if s.svc == nil {
		s.logger.Info("no order service configured, store remains empty")
		return nil
	}
	if err := s.Refresh(ctx); err != nil {
		s.logger.Info("initial order fetch failed, store remains empty", "error", err)
		return nil
	}
	return nil
}

// Refresh re-fetches the full working set and replaces the store contents.
// On failure the previous contents are kept unchanged.
func (s *OrderStore) Refresh(ctx context.Context) error {
	orders, err := s.svc.ListOrders(ctx, OrderQuery{Page: 1, PageSize: s.pageSize})
	if err != nil {
		return err
	}

	s.ReplaceAll(orders)
	s.logger.Debugf("order store refreshed, %d orders", len(orders))
	return nil
}

// ReplaceAll swaps in a full fetch result and rebuilds the indexes.
func (s *OrderStore) ReplaceAll(orders []Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = make(map[OrderID]*Order, len(orders))
	s.byStatus = make(map[string][]OrderID)
	s.byCategory = make(map[string][]OrderID)

	for i := range orders {
		order := &orders[i]
		if order.ID == uuid.Nil {
			continue
		}
		s.orders[order.ID] = order
		s.byStatus[order.Status] = append(s.byStatus[order.Status], order.ID)
		for _, cat := range orderCategories(order) {
			s.byCategory[cat] = append(s.byCategory[cat], order.ID)
		}
	}

	s.fetchedAt = time.Now()
}

// Get retrieves an order by ID, or nil.
func (s *OrderStore) Get(orderID OrderID) *Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders[orderID]
}

// All returns all cached orders.
func (s *OrderStore) All() []*Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Order, 0, len(s.orders))
	for _, order := range s.orders {
		result = append(result, order)
	}
	return result
}

// ByStatus returns orders whose persisted status matches the code.
func (s *OrderStore) ByStatus(status string) []*Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byStatus[status]
	result := make([]*Order, 0, len(ids))
	for _, id := range ids {
		if order := s.orders[id]; order != nil {
			result = append(result, order)
		}
	}
	return result
}

// ByCategory returns orders containing at least one item of the category.
func (s *OrderStore) ByCategory(cat string) []*Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byCategory[cat]
	result := make([]*Order, 0, len(ids))
	for _, id := range ids {
		if order := s.orders[id]; order != nil {
			result = append(result, order)
		}
	}
	return result
}

// Count returns the number of orders in the store.
func (s *OrderStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// FetchedAt returns when the working set was last replaced.
func (s *OrderStore) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

func orderCategories(o *Order) []string {
	seen := make(map[string]bool, 4)
	var cats []string
	for i := range o.Items {
		cat := o.Items[i].Category
		if cat == "" || seen[cat] {
			continue
		}
		seen[cat] = true
		cats = append(cats, cat)
	}
	return cats
}
