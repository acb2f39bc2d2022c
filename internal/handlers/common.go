package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"resto-system/internal/database/models"
	"resto-system/internal/recipe"
)

const dateLayout = "2006-01-02"

func parseDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return parsed, nil
}

// rawQuantity renders a decoded JSON value back to the string the ledger
// parses, so both numeric and string quantities are accepted and anything
// else fails the parse.
func rawQuantity(v interface{}) string {
	switch q := v.(type) {
	case string:
		return q
	case float64:
		return strconv.FormatFloat(q, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func parseUintParam(c *gin.Context, param string) (uint, error) {
	val, err := strconv.ParseUint(c.Param(param), 10, 64)
	return uint(val), err
}

func parseBoolQuery(c *gin.Context, param string) *bool {
	str := c.Query(param)
	if str == "" {
		return nil
	}
	val, err := strconv.ParseBool(str)
	if err != nil {
		return nil
	}
	return &val
}

func parseUintQuery(c *gin.Context, param string) *uint {
	str := c.Query(param)
	if str == "" {
		return nil
	}
	val, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return nil
	}
	result := uint(val)
	return &result
}

// applySearch adds a case-insensitive substring match over the given columns.
func applySearch(q *gorm.DB, term string, columns ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" {
		return q
	}
	pattern := "%" + term + "%"
	clause := ""
	args := make([]interface{}, 0, len(columns))
	for i, col := range columns {
		if i > 0 {
			clause += " OR "
		}
		clause += col + " ILIKE ?"
		args = append(args, pattern)
	}
	return q.Where(clause, args...)
}

// applyOrdering applies the ?ordering= parameter against a whitelist of
// sortable columns. A leading '-' requests descending order. Unknown fields
// fall back to the default ordering.
func applyOrdering(q *gorm.DB, ordering string, sortable map[string]bool, defaultOrder string) *gorm.DB {
	ordering = strings.TrimSpace(ordering)
	if ordering == "" {
		return q.Order(defaultOrder)
	}
	desc := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")
	if !sortable[field] {
		return q.Order(defaultOrder)
	}
	if desc {
		return q.Order(field + " desc")
	}
	return q.Order(field + " asc")
}

func success(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{
		"success": true,
		"data":    data,
	})
}

// --- Response serializers ---

type supplierResponse struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	CategoryDisplay string          `json:"category_display"`
	ContactPerson   *string         `json:"contact_person"`
	Email           *string         `json:"email"`
	PhoneNumber     *string         `json:"phone_number"`
	Address         *string         `json:"address"`
	IsActive        bool            `json:"is_active"`
	Rating          decimal.Decimal `json:"rating"`
}

func serializeSupplier(s *models.Supplier) supplierResponse {
	return supplierResponse{
		ID:              s.ID,
		Name:            s.Name,
		Category:        string(s.Category),
		CategoryDisplay: s.Category.Display(),
		ContactPerson:   s.ContactPerson,
		Email:           s.Email,
		PhoneNumber:     s.PhoneNumber,
		Address:         s.Address,
		IsActive:        s.IsActive,
		Rating:          s.Rating,
	}
}

func serializeSuppliers(suppliers []models.Supplier) []supplierResponse {
	out := make([]supplierResponse, len(suppliers))
	for i := range suppliers {
		out[i] = serializeSupplier(&suppliers[i])
	}
	return out
}

type ingredientResponse struct {
	ID                 uint            `json:"id"`
	Name               string          `json:"name"`
	Supplier           uint            `json:"supplier"`
	SupplierName       string          `json:"supplier_name,omitempty"`
	StockQuantity      decimal.Decimal `json:"stock_quantity"`
	Unit               string          `json:"unit"`
	UnitDisplay        string          `json:"unit_display"`
	MinimumStockLevel  decimal.Decimal `json:"minimum_stock_level"`
	CostPerUnit        decimal.Decimal `json:"cost_per_unit"`
	StorageType        string          `json:"storage_type"`
	StorageTypeDisplay string          `json:"storage_type_display"`
	ExpiryDate         *string         `json:"expiry_date"`
	IsLowStock         bool            `json:"is_low_stock"`
	IsExpired          bool            `json:"is_expired"`
}

func serializeIngredient(i *models.Ingredient) ingredientResponse {
	resp := ingredientResponse{
		ID:                 i.ID,
		Name:               i.Name,
		Supplier:           i.SupplierID,
		StockQuantity:      i.StockQuantity,
		Unit:               string(i.Unit),
		UnitDisplay:        i.Unit.Display(),
		MinimumStockLevel:  i.MinimumStockLevel,
		CostPerUnit:        i.CostPerUnit,
		StorageType:        string(i.StorageType),
		StorageTypeDisplay: i.StorageType.Display(),
		IsLowStock:         i.IsLowStock(),
		IsExpired:          i.IsExpired(time.Now()),
	}
	if i.Supplier != nil {
		resp.SupplierName = i.Supplier.Name
	}
	if i.ExpiryDate != nil {
		formatted := i.ExpiryDate.Format(dateLayout)
		resp.ExpiryDate = &formatted
	}
	return resp
}

func serializeIngredients(ingredients []models.Ingredient) []ingredientResponse {
	out := make([]ingredientResponse, len(ingredients))
	for i := range ingredients {
		out[i] = serializeIngredient(&ingredients[i])
	}
	return out
}

type recipeItemResponse struct {
	ID             uint            `json:"id"`
	Ingredient     uint            `json:"ingredient"`
	IngredientName string          `json:"ingredient_name,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
}

type menuItemResponse struct {
	ID                     uint                 `json:"id"`
	Name                   string               `json:"name"`
	Description            string               `json:"description"`
	Category               string               `json:"category"`
	CategoryDisplay        string               `json:"category_display"`
	IsVegetarian           bool                 `json:"is_vegetarian"`
	IsAvailable            bool                 `json:"is_available"`
	Price                  decimal.Decimal      `json:"price"`
	PreparationTimeMinutes *int                 `json:"preparation_time_minutes"`
	RecipeItems            []recipeItemResponse `json:"recipe_items"`
	IngredientCost         decimal.Decimal      `json:"ingredient_cost"`
	IngredientAvailability bool                 `json:"ingredient_availability"`
}

func serializeMenuItem(m *models.MenuItem) menuItemResponse {
	items := make([]recipeItemResponse, len(m.RecipeItems))
	for i, ri := range m.RecipeItems {
		items[i] = recipeItemResponse{
			ID:         ri.ID,
			Ingredient: ri.IngredientID,
			Quantity:   ri.Quantity,
		}
		if ri.Ingredient != nil {
			items[i].IngredientName = ri.Ingredient.Name
		}
	}
	return menuItemResponse{
		ID:                     m.ID,
		Name:                   m.Name,
		Description:            m.Description,
		Category:               string(m.Category),
		CategoryDisplay:        m.Category.Display(),
		IsVegetarian:           m.IsVegetarian,
		IsAvailable:            m.IsAvailable,
		Price:                  m.Price,
		PreparationTimeMinutes: m.PreparationTimeMinutes,
		RecipeItems:            items,
		IngredientCost:         recipe.IngredientCost(m),
		IngredientAvailability: recipe.CheckAvailability(m, 1),
	}
}

func serializeMenuItems(items []models.MenuItem) []menuItemResponse {
	out := make([]menuItemResponse, len(items))
	for i := range items {
		out[i] = serializeMenuItem(&items[i])
	}
	return out
}

type orderResponse struct {
	ID                  uint            `json:"id"`
	MenuItem            uint            `json:"menu_item"`
	MenuItemName        string          `json:"menu_item_name,omitempty"`
	Quantity            int             `json:"quantity"`
	CustomerName        *string         `json:"customer_name"`
	SpecialInstructions *string         `json:"special_instructions"`
	OrderDate           time.Time       `json:"order_date"`
	Status              string          `json:"status"`
	StatusDisplay       string          `json:"status_display"`
	TotalPrice          decimal.Decimal `json:"total_price"`
}

func serializeOrder(o *models.Order) orderResponse {
	resp := orderResponse{
		ID:                  o.ID,
		MenuItem:            o.MenuItemID,
		Quantity:            o.Quantity,
		CustomerName:        o.CustomerName,
		SpecialInstructions: o.SpecialInstructions,
		OrderDate:           o.OrderDate,
		Status:              string(o.Status),
		StatusDisplay:       o.Status.Display(),
		TotalPrice:          o.TotalPrice(),
	}
	if o.MenuItem != nil {
		resp.MenuItemName = o.MenuItem.Name
	}
	return resp
}

func serializeOrders(orders []models.Order) []orderResponse {
	out := make([]orderResponse, len(orders))
	for i := range orders {
		out[i] = serializeOrder(&orders[i])
	}
	return out
}
