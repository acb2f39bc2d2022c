package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID                  uint        `gorm:"primaryKey;autoIncrement"`
	MenuItemID          uint        `gorm:"not null;index"`
	Quantity            int         `gorm:"not null;default:1"`
	CustomerName        *string     `gorm:"size:100"`
	SpecialInstructions *string     `gorm:"type:text"`
	OrderDate           time.Time   `gorm:"not null;index"`
	Status              OrderStatus `gorm:"size:20;not null;default:'pending';index"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID;constraint:OnDelete:RESTRICT"`
}

func (o *Order) Validate() error {
	if o.Quantity < 1 {
		return fmt.Errorf("order quantity must be at least 1, got %d", o.Quantity)
	}
	if !o.Status.Valid() {
		return fmt.Errorf("invalid order status: %q", o.Status)
	}
	return nil
}

// TotalPrice is menu item price times order quantity. Requires MenuItem to be
// loaded; returns zero otherwise.
func (o *Order) TotalPrice() decimal.Decimal {
	if o.MenuItem == nil {
		return decimal.Zero
	}
	return o.MenuItem.Price.Mul(decimal.NewFromInt(int64(o.Quantity)))
}
