package models

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type Supplier struct {
	ID            uint             `gorm:"primaryKey;autoIncrement"`
	Name          string           `gorm:"size:100;uniqueIndex;not null"`
	Category      SupplierCategory `gorm:"size:20;not null;default:'other'"`
	ContactPerson *string          `gorm:"size:100"`
	Email         *string          `gorm:"size:100"`
	PhoneNumber   *string          `gorm:"size:50"`
	Address       *string          `gorm:"size:255"`
	IsActive      bool             `gorm:"not null;default:true"`
	Rating        decimal.Decimal  `gorm:"type:decimal(3,1);not null;default:0.0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Ingredients []Ingredient `gorm:"foreignKey:SupplierID"`
}

var (
	ratingMin = decimal.Zero
	ratingMax = decimal.NewFromInt(5)
)

// Validate enforces the supplier field invariants: rating within [0, 5] and,
// when an email is set, a basic local@domain.tld shape.
func (s *Supplier) Validate() error {
	if s.Rating.LessThan(ratingMin) || s.Rating.GreaterThan(ratingMax) {
		return fmt.Errorf("rating must be between 0.0 and 5.0, got %s", s.Rating)
	}
	if !s.Category.Valid() {
		return fmt.Errorf("invalid supplier category: %q", s.Category)
	}
	if s.Email != nil && !emailPattern.MatchString(*s.Email) {
		return fmt.Errorf("invalid email address: %q", *s.Email)
	}
	return nil
}

type Ingredient struct {
	ID                uint            `gorm:"primaryKey;autoIncrement"`
	Name              string          `gorm:"size:100;uniqueIndex;not null"`
	SupplierID        uint            `gorm:"not null;index"`
	StockQuantity     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00"`
	Unit              IngredientUnit  `gorm:"size:10;not null"`
	MinimumStockLevel decimal.Decimal `gorm:"type:decimal(10,2);not null;default:10.00"`
	CostPerUnit       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00"`
	StorageType       StorageType     `gorm:"size:20;not null;default:'dry'"`
	ExpiryDate        *time.Time      `gorm:"type:date"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Supplier *Supplier `gorm:"foreignKey:SupplierID;constraint:OnDelete:RESTRICT"`
}

func (i *Ingredient) Validate() error {
	if i.StockQuantity.IsNegative() {
		return fmt.Errorf("stock_quantity must not be negative, got %s", i.StockQuantity)
	}
	if i.CostPerUnit.IsNegative() {
		return fmt.Errorf("cost_per_unit must not be negative, got %s", i.CostPerUnit)
	}
	if !i.Unit.Valid() {
		return fmt.Errorf("invalid unit: %q", i.Unit)
	}
	if !i.StorageType.Valid() {
		return fmt.Errorf("invalid storage type: %q", i.StorageType)
	}
	return nil
}

// IsLowStock reports whether the stock on hand is at or below the minimum level.
func (i *Ingredient) IsLowStock() bool {
	return i.StockQuantity.LessThanOrEqual(i.MinimumStockLevel)
}

// IsExpired reports whether the expiry date lies strictly before today's
// calendar date. Ingredients without an expiry date never expire.
func (i *Ingredient) IsExpired(now time.Time) bool {
	if i.ExpiryDate == nil {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	ey, em, ed := i.ExpiryDate.Date()
	expiry := time.Date(ey, em, ed, 0, 0, 0, 0, now.Location())
	return expiry.Before(today)
}

func (i *Ingredient) String() string {
	return fmt.Sprintf("%s (%s %s)", i.Name, i.StockQuantity.StringFixed(2), i.Unit.Display())
}
