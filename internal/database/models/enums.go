package models

// Closed string-coded enums. The persistence layer stores the code; HTTP
// responses carry both the code and the human-readable label.

type SupplierCategory string

const (
	SupplierCategoryProduce SupplierCategory = "produce"
	SupplierCategoryMeat    SupplierCategory = "meat"
	SupplierCategoryDairy   SupplierCategory = "dairy"
	SupplierCategoryBakery  SupplierCategory = "bakery"
	SupplierCategoryOther   SupplierCategory = "other"
)

var supplierCategoryLabels = map[SupplierCategory]string{
	SupplierCategoryProduce: "Produce",
	SupplierCategoryMeat:    "Meat",
	SupplierCategoryDairy:   "Dairy",
	SupplierCategoryBakery:  "Bakery",
	SupplierCategoryOther:   "Other",
}

func (c SupplierCategory) Valid() bool {
	_, ok := supplierCategoryLabels[c]
	return ok
}

func (c SupplierCategory) Display() string {
	return supplierCategoryLabels[c]
}

type IngredientUnit string

const (
	UnitKilogram   IngredientUnit = "kg"
	UnitGram       IngredientUnit = "g"
	UnitLiter      IngredientUnit = "l"
	UnitMilliliter IngredientUnit = "ml"
	UnitPiece      IngredientUnit = "piece"
)

var ingredientUnitLabels = map[IngredientUnit]string{
	UnitKilogram:   "Kilogram",
	UnitGram:       "Gram",
	UnitLiter:      "Liter",
	UnitMilliliter: "Milliliter",
	UnitPiece:      "Piece",
}

func (u IngredientUnit) Valid() bool {
	_, ok := ingredientUnitLabels[u]
	return ok
}

func (u IngredientUnit) Display() string {
	return ingredientUnitLabels[u]
}

type StorageType string

const (
	StorageRefrigerated StorageType = "refrigerated"
	StorageFrozen       StorageType = "frozen"
	StorageDry          StorageType = "dry"
	StorageRoomTemp     StorageType = "room_temp"
)

var storageTypeLabels = map[StorageType]string{
	StorageRefrigerated: "Refrigerated",
	StorageFrozen:       "Frozen",
	StorageDry:          "Dry Storage",
	StorageRoomTemp:     "Room Temperature",
}

func (s StorageType) Valid() bool {
	_, ok := storageTypeLabels[s]
	return ok
}

func (s StorageType) Display() string {
	return storageTypeLabels[s]
}

type MenuItemCategory string

const (
	MenuCategoryAppetizer MenuItemCategory = "appetizer"
	MenuCategoryMain      MenuItemCategory = "main"
	MenuCategoryDessert   MenuItemCategory = "dessert"
	MenuCategoryBeverage  MenuItemCategory = "beverage"
)

var menuItemCategoryLabels = map[MenuItemCategory]string{
	MenuCategoryAppetizer: "Appetizer",
	MenuCategoryMain:      "Main Course",
	MenuCategoryDessert:   "Dessert",
	MenuCategoryBeverage:  "Beverage",
}

func (c MenuItemCategory) Valid() bool {
	_, ok := menuItemCategoryLabels[c]
	return ok
}

func (c MenuItemCategory) Display() string {
	return menuItemCategoryLabels[c]
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusPending:   "Pending",
	OrderStatusPreparing: "Preparing",
	OrderStatusReady:     "Ready",
	OrderStatusCompleted: "Completed",
	OrderStatusCancelled: "Cancelled",
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

func (s OrderStatus) Display() string {
	return orderStatusLabels[s]
}

// Terminal reports whether no further status transition is permitted.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}
