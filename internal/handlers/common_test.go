package handlers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"resto-system/internal/database/models"
)

func TestRawQuantity(t *testing.T) {
	cases := []struct {
		in   interface{}
		want string
	}{
		{"10.5", "10.5"},
		{float64(3), "3"},
		{float64(-2.5), "-2.5"},
		{nil, "<nil>"},
	}
	for _, tc := range cases {
		if got := rawQuantity(tc.in); got != tc.want {
			t.Errorf("rawQuantity(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2024-06-15")
	if err != nil {
		t.Fatalf("parseDate returned error: %v", err)
	}
	want := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parseDate = %s, want %s", got, want)
	}

	if _, err := parseDate("15/06/2024"); err == nil {
		t.Error("expected error for wrong date format")
	}
}

func TestSerializeIngredient_DerivedFields(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1)
	i := &models.Ingredient{
		ID:                1,
		Name:              "Milk",
		StockQuantity:     decimal.NewFromInt(5),
		MinimumStockLevel: decimal.NewFromInt(10),
		Unit:              models.UnitLiter,
		StorageType:       models.StorageRefrigerated,
		ExpiryDate:        &yesterday,
		Supplier:          &models.Supplier{Name: "Dairy Co"},
	}

	resp := serializeIngredient(i)
	if !resp.IsLowStock {
		t.Error("expected is_low_stock true")
	}
	if !resp.IsExpired {
		t.Error("expected is_expired true")
	}
	if resp.UnitDisplay != "Liter" {
		t.Errorf("unit_display = %q, want Liter", resp.UnitDisplay)
	}
	if resp.SupplierName != "Dairy Co" {
		t.Errorf("supplier_name = %q, want Dairy Co", resp.SupplierName)
	}
	if resp.ExpiryDate == nil {
		t.Fatal("expected expiry_date to be set")
	}
}

func TestSerializeMenuItem_DerivedFields(t *testing.T) {
	m := &models.MenuItem{
		ID:       1,
		Name:     "Pasta",
		Category: models.MenuCategoryMain,
		Price:    decimal.NewFromInt(15),
		RecipeItems: []models.RecipeItem{
			{
				IngredientID: 2,
				Quantity:     decimal.NewFromInt(100),
				Ingredient: &models.Ingredient{
					ID:            2,
					Name:          "Flour",
					StockQuantity: decimal.NewFromInt(10),
					CostPerUnit:   decimal.NewFromFloat(0.05),
				},
			},
		},
	}

	resp := serializeMenuItem(m)
	if resp.IngredientAvailability {
		t.Error("expected ingredient_availability false with stock 10 and required 100")
	}
	if !resp.IngredientCost.Equal(decimal.NewFromInt(5)) {
		t.Errorf("ingredient_cost = %s, want 5", resp.IngredientCost)
	}
	if resp.CategoryDisplay != "Main Course" {
		t.Errorf("category_display = %q, want Main Course", resp.CategoryDisplay)
	}
	if len(resp.RecipeItems) != 1 || resp.RecipeItems[0].IngredientName != "Flour" {
		t.Errorf("unexpected recipe items: %+v", resp.RecipeItems)
	}
}

func TestSerializeOrder_TotalPrice(t *testing.T) {
	o := &models.Order{
		ID:       1,
		Quantity: 2,
		Status:   models.OrderStatusPending,
		MenuItem: &models.MenuItem{Name: "Pasta", Price: decimal.NewFromInt(15)},
	}

	resp := serializeOrder(o)
	if !resp.TotalPrice.Equal(decimal.NewFromInt(30)) {
		t.Errorf("total_price = %s, want 30", resp.TotalPrice)
	}
	if resp.StatusDisplay != "Pending" {
		t.Errorf("status_display = %q, want Pending", resp.StatusDisplay)
	}
	if resp.MenuItemName != "Pasta" {
		t.Errorf("menu_item_name = %q, want Pasta", resp.MenuItemName)
	}
}
