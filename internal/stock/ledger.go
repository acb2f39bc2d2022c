package stock

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"resto-system/internal/database/models"
)

var ErrInvalidQuantity = errors.New("quantity must be a number")

// Ledger owns ingredient stock mutations. Availability predicates live on the
// Ingredient model so read-side queries can share them.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// ParseQuantity parses a client-supplied quantity into a decimal, failing
// with ErrInvalidQuantity on anything that is not a number.
func ParseQuantity(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidQuantity, raw)
	}
	return d, nil
}

// Adjust applies delta (positive or negative) to the ingredient's stock and
// persists it. A negative resulting quantity is not rejected here; the
// fulfillment paths guard their own deductions.
func (l *Ledger) Adjust(ctx context.Context, ingredientID uint, raw string) (*models.Ingredient, error) {
	delta, err := ParseQuantity(raw)
	if err != nil {
		return nil, err
	}

	var ingredient models.Ingredient
	if err := l.db.WithContext(ctx).First(&ingredient, ingredientID).Error; err != nil {
		return nil, err
	}

	ingredient.StockQuantity = ingredient.StockQuantity.Add(delta)
	if err := l.db.WithContext(ctx).Save(&ingredient).Error; err != nil {
		return nil, err
	}

	return &ingredient, nil
}
