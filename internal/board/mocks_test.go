package board

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/appetiteclub/kitchenboard/pkg/enums/itemstatus"
)

func testItem(name, cat, status string, quantity int) Item {
	return Item{
		ID:         uuid.New(),
		MenuItemID: uuid.New(),
		Name:       name,
		Quantity:   quantity,
		Category:   cat,
		Status:     status,
	}
}

func testOrder(table, number, status string, age time.Duration, items ...Item) Order {
	return Order{
		ID:          uuid.New(),
		TableNumber: table,
		OrderNumber: number,
		Status:      status,
		CreatedAt:   time.Now().Add(-age),
		Items:       items,
	}
}

// MockOrderService implements OrderService for testing
type MockOrderService struct {
	ListOrdersFunc        func(ctx context.Context, query OrderQuery) ([]Order, error)
	GetOrderFunc          func(ctx context.Context, id OrderID) (*Order, error)
	UpdateOrderStatusFunc func(ctx context.Context, id OrderID, status string) error
	UpdateOrderItemsFunc  func(ctx context.Context, id OrderID, updates []ItemStatusUpdate) error

	mu    sync.Mutex
	Calls []string
}

func NewMockOrderService() *MockOrderService {
	return &MockOrderService{}
}

func (m *MockOrderService) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

func (m *MockOrderService) CallSequence() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Calls...)
}

func (m *MockOrderService) ListOrders(ctx context.Context, query OrderQuery) ([]Order, error) {
	m.record("list")
	if m.ListOrdersFunc != nil {
		return m.ListOrdersFunc(ctx, query)
	}
	return nil, nil
}

func (m *MockOrderService) GetOrder(ctx context.Context, id OrderID) (*Order, error) {
	m.record("get")
	if m.GetOrderFunc != nil {
		return m.GetOrderFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *MockOrderService) UpdateOrderStatus(ctx context.Context, id OrderID, status string) error {
	m.record("status")
	if m.UpdateOrderStatusFunc != nil {
		return m.UpdateOrderStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockOrderService) UpdateOrderItems(ctx context.Context, id OrderID, updates []ItemStatusUpdate) error {
	m.record("items")
	if m.UpdateOrderItemsFunc != nil {
		return m.UpdateOrderItemsFunc(ctx, id, updates)
	}
	return nil
}

// FakeOrderBackend is a stateful OrderService: writes mutate its orders
// and subsequent lists return the mutated state, like a real order
// service between refreshes.
type FakeOrderBackend struct {
	mu     sync.Mutex
	orders map[OrderID]*Order

	ItemWrites   int
	StatusWrites int
	Calls        []string
}

func NewFakeOrderBackend(orders ...Order) *FakeOrderBackend {
	f := &FakeOrderBackend{orders: make(map[OrderID]*Order)}
	for i := range orders {
		o := orders[i]
		f.orders[o.ID] = &o
	}
	return f
}

func (f *FakeOrderBackend) ListOrders(ctx context.Context, query OrderQuery) ([]Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "list")

	out := make([]Order, 0, len(f.orders))
	for _, o := range f.orders {
		cp := *o
		cp.Items = append([]Item(nil), o.Items...)
		out = append(out, cp)
	}
	return out, nil
}

func (f *FakeOrderBackend) GetOrder(ctx context.Context, id OrderID) (*Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "get")

	o, ok := f.orders[id]
	if !ok {
		return nil, errors.New("order not found")
	}
	cp := *o
	cp.Items = append([]Item(nil), o.Items...)
	return &cp, nil
}

func (f *FakeOrderBackend) UpdateOrderStatus(ctx context.Context, id OrderID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "status")
	f.StatusWrites++

	o, ok := f.orders[id]
	if !ok {
		return errors.New("order not found")
	}
	o.Status = status
	return nil
}

func (f *FakeOrderBackend) UpdateOrderItems(ctx context.Context, id OrderID, updates []ItemStatusUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "items")
	f.ItemWrites++

	o, ok := f.orders[id]
	if !ok {
		return errors.New("order not found")
	}
	for _, u := range updates {
		for i := range o.Items {
			if o.Items[i].MenuItemID.String() == u.MenuItemID {
				o.Items[i].Status = itemstatus.FromWire(u.Status).Code()
			}
		}
	}
	return nil
}

func (f *FakeOrderBackend) Order(id OrderID) *Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orders[id]
}

// MockPublisher implements events.Publisher for testing
type MockPublisher struct {
	mu        sync.Mutex
	Published []PublishedMessage
	Err       error
}

type PublishedMessage struct {
	Topic string
	Data  []byte
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Published = append(m.Published, PublishedMessage{Topic: topic, Data: msg})
	return nil
}

func (m *MockPublisher) Topics() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	topics := make([]string, 0, len(m.Published))
	for _, p := range m.Published {
		topics = append(topics, p.Topic)
	}
	return topics
}
