// Package recipe answers questions about a menu item's recipe: what the
// ingredients cost, and whether current stock can cover it. All functions are
// pure over a menu item whose RecipeItems (and their Ingredients) have been
// preloaded.
package recipe

import (
	"github.com/shopspring/decimal"

	"resto-system/internal/database/models"
)

// IngredientCost sums cost_per_unit times required quantity over the recipe.
// An empty recipe costs zero.
func IngredientCost(item *models.MenuItem) decimal.Decimal {
	total := decimal.Zero
	for _, ri := range item.RecipeItems {
		if ri.Ingredient == nil {
			continue
		}
		total = total.Add(ri.Ingredient.CostPerUnit.Mul(ri.Quantity))
	}
	return total
}

// CheckAvailability reports whether every recipe ingredient has enough stock
// to cover the recipe multiplied by multiplier. It short-circuits on the
// first insufficient ingredient. An empty recipe is vacuously available.
func CheckAvailability(item *models.MenuItem, multiplier int64) bool {
	factor := decimal.NewFromInt(multiplier)
	for _, ri := range item.RecipeItems {
		if ri.Ingredient == nil {
			return false
		}
		required := ri.Quantity.Mul(factor)
		if ri.Ingredient.StockQuantity.LessThan(required) {
			return false
		}
	}
	return true
}
