package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMenuItemValidate(t *testing.T) {
	m := &MenuItem{
		Name:     "Test Menu Item",
		Category: MenuCategoryMain,
		Price:    decimal.NewFromInt(15),
	}
	if err := m.Validate(); err != nil {
		t.Errorf("expected valid menu item, got %v", err)
	}

	m.Price = decimal.NewFromInt(-5)
	if err := m.Validate(); err == nil {
		t.Error("expected error for negative price")
	}

	m.Price = decimal.NewFromInt(15)
	prep := 150
	m.PreparationTimeMinutes = &prep
	if err := m.Validate(); err == nil {
		t.Error("expected error for preparation time over 120 minutes")
	}

	prep = 120
	if err := m.Validate(); err != nil {
		t.Errorf("expected 120 minutes to be valid, got %v", err)
	}
}

func TestMenuItemString(t *testing.T) {
	m := &MenuItem{Name: "Test Menu Item", Price: decimal.NewFromInt(15)}
	want := "Test Menu Item ($15.00)"
	if got := m.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestOrderTotalPrice(t *testing.T) {
	order := &Order{
		Quantity: 2,
		MenuItem: &MenuItem{Price: decimal.NewFromInt(15)},
	}
	if got := order.TotalPrice(); !got.Equal(decimal.NewFromInt(30)) {
		t.Errorf("TotalPrice() = %s, want 30", got)
	}
}

func TestOrderTotalPrice_MenuItemNotLoaded(t *testing.T) {
	order := &Order{Quantity: 2}
	if got := order.TotalPrice(); !got.IsZero() {
		t.Errorf("TotalPrice() without menu item = %s, want 0", got)
	}
}

func TestOrderValidate(t *testing.T) {
	order := &Order{Quantity: 1, Status: OrderStatusPending}
	if err := order.Validate(); err != nil {
		t.Errorf("expected valid order, got %v", err)
	}

	order.Quantity = 0
	if err := order.Validate(); err == nil {
		t.Error("expected error for zero quantity")
	}

	order.Quantity = 1
	order.Status = OrderStatus("delivered")
	if err := order.Validate(); err == nil {
		t.Error("expected error for unknown status")
	}
}
