package board

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/appetiteclub/apt"
)

// OrderService is the slice of the remote order service the board needs.
type OrderService interface {
	ListOrders(ctx context.Context, query OrderQuery) ([]Order, error)
	GetOrder(ctx context.Context, id OrderID) (*Order, error)
	UpdateOrderStatus(ctx context.Context, id OrderID, status string) error
	UpdateOrderItems(ctx context.Context, id OrderID, updates []ItemStatusUpdate) error
}

// OrderQuery narrows and pages the order list fetch.
type OrderQuery struct {
	Status   string
	Category string
	Page     int
	PageSize int
}

// ItemStatusUpdate is one entry of the batch item write, in the order
// service vocabulary.
type ItemStatusUpdate struct {
	MenuItemID string `json:"menu_item_id"`
	Status     string `json:"status"`
}

// orderResource mirrors the aggregate returned by the order service.
type orderResource struct {
	ID          string              `json:"id"`
	TableNumber string              `json:"table_number"`
	OrderNumber string              `json:"order_number"`
	Status      string              `json:"status"`
	CreatedAt   string              `json:"created_at"`
	Items       []orderItemResource `json:"items"`
}

// orderItemResource represents a single line inside an order.
type orderItemResource struct {
	ID         string             `json:"id"`
	MenuItemID string             `json:"menu_item_id"`
	Name       string             `json:"name"`
	Category   string             `json:"category"`
	Quantity   int                `json:"quantity"`
	Status     string             `json:"status"`
	Notes      string             `json:"notes"`
	Modifiers  []modifierResource `json:"modifiers"`
}

type modifierResource struct {
	Group  string `json:"group_name"`
	Option string `json:"option_value"`
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

type orderItemsRequest struct {
	Items []ItemStatusUpdate `json:"items"`
}

// OrderDataAccess centralizes decoding of order service responses.
type OrderDataAccess struct {
	client *apt.ServiceClient
}

func NewOrderDataAccess(client *apt.ServiceClient) *OrderDataAccess {
	return &OrderDataAccess{client: client}
}

func (da *OrderDataAccess) ListOrders(ctx context.Context, query OrderQuery) ([]Order, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("order client not configured")
	}

	path := "/orders"
	if qs := query.encode(); qs != "" {
		path += "?" + qs
	}

	resp, err := da.client.Request(ctx, "GET", path, nil)
	if err != nil {
		return nil, &TransportError{Op: "list orders", Err: err}
	}

	var resources []orderResource
	if err := decodeSuccessResponse(resp, &resources); err != nil {
		return nil, err
	}

	orders := make([]Order, 0, len(resources))
	for i := range resources {
		orders = append(orders, resourceToOrder(&resources[i]))
	}

	return orders, nil
}

func (da *OrderDataAccess) GetOrder(ctx context.Context, id OrderID) (*Order, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("order client not configured")
	}

	resp, err := da.client.Get(ctx, "orders", id.String())
	if err != nil {
		return nil, &TransportError{Op: "get order", Err: err}
	}

	var resource orderResource
	if err := decodeSuccessResponse(resp, &resource); err != nil {
		return nil, err
	}

	order := resourceToOrder(&resource)
	return &order, nil
}

func (da *OrderDataAccess) UpdateOrderStatus(ctx context.Context, id OrderID, status string) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("order client not configured")
	}
	if status == "" {
		return fmt.Errorf("missing order status")
	}

	path := fmt.Sprintf("/orders/%s/status", id)
	if _, err := da.client.Request(ctx, "PATCH", path, orderStatusRequest{Status: status}); err != nil {
		return &TransportError{Op: "update order status", Err: err}
	}

	return nil
}

func (da *OrderDataAccess) UpdateOrderItems(ctx context.Context, id OrderID, updates []ItemStatusUpdate) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("order client not configured")
	}
	if len(updates) == 0 {
		return fmt.Errorf("missing item updates")
	}

	path := fmt.Sprintf("/orders/%s/items", id)
	if _, err := da.client.Request(ctx, "PATCH", path, orderItemsRequest{Items: updates}); err != nil {
		return &TransportError{Op: "update order items", Err: err}
	}

	return nil
}

func (q OrderQuery) encode() string {
	values := url.Values{}
	if q.Status != "" {
		values.Set("status", q.Status)
	}
	if q.Category != "" {
		values.Set("category", q.Category)
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(q.PageSize))
	}
	return values.Encode()
}
