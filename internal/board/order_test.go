package board

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/appetiteclub/kitchenboard/pkg/enums/category"
)

func TestOrderAge(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		createdAt time.Time
		want      time.Duration
	}{
		{
			name:      "normalAge",
			createdAt: now.Add(-20 * time.Minute),
			want:      20 * time.Minute,
		},
		{
			name:      "zeroCreatedAt",
			createdAt: time.Time{},
			want:      0,
		},
		{
			name:      "futureCreatedAt",
			createdAt: now.Add(5 * time.Minute),
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &Order{CreatedAt: tt.createdAt}
			got := order.Age(now)
			if got != tt.want {
				t.Errorf("Order.Age() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrderItemLookup(t *testing.T) {
	item := testItem("Fries", category.Categories.MainCourse.Code(), "pending", 2)
	order := testOrder("4", "101", "pending", 0, item)

	found := order.Item(item.ID)
	if found == nil {
		t.Fatal("Order.Item() returned nil for existing item")
	}
	if found.Name != "Fries" {
		t.Errorf("Order.Item().Name = %q, want %q", found.Name, "Fries")
	}

	if order.Item(uuid.New()) != nil {
		t.Error("Order.Item() should return nil for unknown ID")
	}
}

func TestOrderAllItemsDone(t *testing.T) {
	done := testItem("Cake", category.Categories.Dessert.Code(), "done", 1)
	pending := testItem("Soup", category.Categories.Appetizer.Code(), "pending", 1)

	tests := []struct {
		name  string
		items []Item
		edits map[ItemID]string
		want  bool
	}{
		{
			name:  "allPersistedDone",
			items: []Item{done},
			want:  true,
		},
		{
			name:  "onePending",
			items: []Item{done, pending},
			want:  false,
		},
		{
			name:  "pendingCoveredByEdit",
			items: []Item{done, pending},
			edits: map[ItemID]string{pending.ID: "done"},
			want:  true,
		},
		{
			name:  "editRevertsDoneItem",
			items: []Item{done},
			edits: map[ItemID]string{done.ID: "pending"},
			want:  false,
		},
		{
			name:  "noItems",
			items: nil,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &Order{Items: tt.items}
			if got := order.AllItemsDone(tt.edits); got != tt.want {
				t.Errorf("Order.AllItemsDone() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrderDoneCount(t *testing.T) {
	order := testOrder("2", "55", "preparing", 0,
		testItem("Cake", category.Categories.Dessert.Code(), "done", 1),
		testItem("Soup", category.Categories.Appetizer.Code(), "pending", 1),
		testItem("Tea", category.Categories.Beverage.Code(), "done", 2),
	)

	if got := order.DoneCount(); got != 2 {
		t.Errorf("Order.DoneCount() = %d, want %d", got, 2)
	}
}

func TestOrderResourceType(t *testing.T) {
	order := &Order{}
	if got := order.ResourceType(); got != "order" {
		t.Errorf("Order.ResourceType() = %q, want %q", got, "order")
	}
}
