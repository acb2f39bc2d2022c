package recipe

import (
	"testing"

	"github.com/shopspring/decimal"

	"resto-system/internal/database/models"
)

func menuItemWith(items ...models.RecipeItem) *models.MenuItem {
	return &models.MenuItem{
		Name:        "Test Menu Item",
		RecipeItems: items,
	}
}

func TestIngredientCost_EmptyRecipe(t *testing.T) {
	cost := IngredientCost(menuItemWith())
	if !cost.IsZero() {
		t.Errorf("expected zero cost for empty recipe, got %s", cost)
	}
}

func TestIngredientCost_SumsOverRecipe(t *testing.T) {
	item := menuItemWith(
		models.RecipeItem{
			Quantity:   decimal.NewFromInt(2),
			Ingredient: &models.Ingredient{CostPerUnit: decimal.NewFromFloat(2.50)},
		},
		models.RecipeItem{
			Quantity:   decimal.NewFromFloat(0.5),
			Ingredient: &models.Ingredient{CostPerUnit: decimal.NewFromInt(10)},
		},
	)

	// 2*2.50 + 0.5*10 = 10
	cost := IngredientCost(item)
	if !cost.Equal(decimal.NewFromInt(10)) {
		t.Errorf("IngredientCost = %s, want 10", cost)
	}
}

func TestCheckAvailability_InsufficientStock(t *testing.T) {
	item := menuItemWith(models.RecipeItem{
		Quantity:   decimal.NewFromInt(100),
		Ingredient: &models.Ingredient{StockQuantity: decimal.NewFromInt(10)},
	})

	if CheckAvailability(item, 1) {
		t.Error("expected availability false when recipe needs 100 and stock is 10")
	}
}

func TestCheckAvailability_SufficientStock(t *testing.T) {
	item := menuItemWith(models.RecipeItem{
		Quantity:   decimal.NewFromInt(10),
		Ingredient: &models.Ingredient{StockQuantity: decimal.NewFromInt(10)},
	})

	if !CheckAvailability(item, 1) {
		t.Error("expected availability true when stock exactly covers the recipe")
	}
}

func TestCheckAvailability_EmptyRecipe(t *testing.T) {
	if !CheckAvailability(menuItemWith(), 1) {
		t.Error("expected empty recipe to be vacuously available")
	}
}

func TestCheckAvailability_Multiplier(t *testing.T) {
	item := menuItemWith(models.RecipeItem{
		Quantity:   decimal.NewFromInt(4),
		Ingredient: &models.Ingredient{StockQuantity: decimal.NewFromInt(10)},
	})

	if !CheckAvailability(item, 2) {
		t.Error("expected stock 10 to cover 2x recipe of 4")
	}
	if CheckAvailability(item, 3) {
		t.Error("expected stock 10 not to cover 3x recipe of 4")
	}
}

func TestCheckAvailability_MissingIngredient(t *testing.T) {
	item := menuItemWith(models.RecipeItem{Quantity: decimal.NewFromInt(1)})
	if CheckAvailability(item, 1) {
		t.Error("expected availability false when the ingredient is not loaded")
	}
}
