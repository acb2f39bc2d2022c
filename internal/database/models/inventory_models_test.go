package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func validSupplier() *Supplier {
	return &Supplier{
		Name:     "Test Supplier",
		Category: SupplierCategoryProduce,
		Email:    strPtr("valid@email.com"),
		Rating:   decimal.NewFromFloat(4.5),
	}
}

func TestSupplierValidate_OK(t *testing.T) {
	if err := validSupplier().Validate(); err != nil {
		t.Errorf("expected valid supplier, got %v", err)
	}
}

func TestSupplierValidate_RatingOutOfRange(t *testing.T) {
	s := validSupplier()
	s.Rating = decimal.NewFromInt(6)
	if err := s.Validate(); err == nil {
		t.Error("expected error for rating 6")
	}

	s.Rating = decimal.NewFromInt(-1)
	if err := s.Validate(); err == nil {
		t.Error("expected error for rating -1")
	}
}

func TestSupplierValidate_RatingBoundaries(t *testing.T) {
	s := validSupplier()
	s.Rating = decimal.Zero
	if err := s.Validate(); err != nil {
		t.Errorf("expected rating 0 to be valid, got %v", err)
	}
	s.Rating = decimal.NewFromInt(5)
	if err := s.Validate(); err != nil {
		t.Errorf("expected rating 5 to be valid, got %v", err)
	}
}

func TestSupplierValidate_InvalidEmail(t *testing.T) {
	s := validSupplier()
	s.Email = strPtr("invalid-email")
	if err := s.Validate(); err == nil {
		t.Error("expected error for malformed email")
	}

	s.Email = nil
	if err := s.Validate(); err != nil {
		t.Errorf("expected nil email to be valid, got %v", err)
	}
}

func TestIngredientIsLowStock(t *testing.T) {
	i := &Ingredient{
		StockQuantity:     decimal.NewFromInt(5),
		MinimumStockLevel: decimal.NewFromInt(10),
	}
	if !i.IsLowStock() {
		t.Error("expected stock 5 with minimum 10 to be low")
	}

	i.StockQuantity = decimal.NewFromInt(15)
	if i.IsLowStock() {
		t.Error("expected stock 15 with minimum 10 not to be low")
	}

	i.StockQuantity = decimal.NewFromInt(10)
	if !i.IsLowStock() {
		t.Error("expected stock equal to minimum to be low")
	}
}

func TestIngredientIsExpired(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC)

	i := &Ingredient{}
	if i.IsExpired(now) {
		t.Error("expected ingredient without expiry date not to be expired")
	}

	yesterday := now.AddDate(0, 0, -1)
	i.ExpiryDate = &yesterday
	if !i.IsExpired(now) {
		t.Error("expected yesterday's expiry to be expired")
	}

	tomorrow := now.AddDate(0, 0, 1)
	i.ExpiryDate = &tomorrow
	if i.IsExpired(now) {
		t.Error("expected tomorrow's expiry not to be expired")
	}

	// Same calendar day does not count as expired.
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	i.ExpiryDate = &today
	if i.IsExpired(now) {
		t.Error("expected today's expiry not to be expired")
	}
}

func TestIngredientString(t *testing.T) {
	i := &Ingredient{
		Name:          "Test Ingredient",
		StockQuantity: decimal.NewFromInt(100),
		Unit:          UnitGram,
	}
	want := "Test Ingredient (100.00 Gram)"
	if got := i.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestIngredientValidate(t *testing.T) {
	i := &Ingredient{
		Name:          "Flour",
		StockQuantity: decimal.NewFromInt(10),
		Unit:          UnitKilogram,
		StorageType:   StorageDry,
	}
	if err := i.Validate(); err != nil {
		t.Errorf("expected valid ingredient, got %v", err)
	}

	i.StockQuantity = decimal.NewFromInt(-1)
	if err := i.Validate(); err == nil {
		t.Error("expected error for negative stock")
	}

	i.StockQuantity = decimal.NewFromInt(10)
	i.Unit = IngredientUnit("bag")
	if err := i.Validate(); err == nil {
		t.Error("expected error for unknown unit")
	}
}
