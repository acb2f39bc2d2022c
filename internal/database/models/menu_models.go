package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID                     uint             `gorm:"primaryKey;autoIncrement"`
	Name                   string           `gorm:"size:100;uniqueIndex;not null"`
	Description            string           `gorm:"type:text"`
	Category               MenuItemCategory `gorm:"size:20;not null;default:'main'"`
	IsVegetarian           bool             `gorm:"not null;default:false"`
	IsAvailable            bool             `gorm:"not null;default:true"`
	Price                  decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0.00"`
	PreparationTimeMinutes *int
	CreatedAt              time.Time
	UpdatedAt              time.Time

	RecipeItems []RecipeItem `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`
}

func (m *MenuItem) Validate() error {
	if m.Price.IsNegative() {
		return fmt.Errorf("price must not be negative, got %s", m.Price)
	}
	if !m.Category.Valid() {
		return fmt.Errorf("invalid menu item category: %q", m.Category)
	}
	if m.PreparationTimeMinutes != nil && (*m.PreparationTimeMinutes < 0 || *m.PreparationTimeMinutes > 120) {
		return fmt.Errorf("preparation_time_minutes must be between 0 and 120, got %d", *m.PreparationTimeMinutes)
	}
	return nil
}

func (m *MenuItem) String() string {
	return fmt.Sprintf("%s ($%s)", m.Name, m.Price.StringFixed(2))
}

// RecipeItem is one line of a menu item's recipe: the quantity of an
// ingredient required to produce one unit of the item. At most one row may
// exist per (menu item, ingredient) pair.
type RecipeItem struct {
	ID           uint            `gorm:"primaryKey;autoIncrement"`
	MenuItemID   uint            `gorm:"not null;uniqueIndex:idx_recipe_menu_ingredient"`
	IngredientID uint            `gorm:"not null;uniqueIndex:idx_recipe_menu_ingredient"`
	Quantity     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}

func (r *RecipeItem) Validate() error {
	if r.Quantity.IsNegative() {
		return fmt.Errorf("recipe quantity must not be negative, got %s", r.Quantity)
	}
	return nil
}
