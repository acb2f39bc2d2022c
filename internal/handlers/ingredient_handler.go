package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"resto-system/internal/database/models"
	"resto-system/internal/httperr"
	"resto-system/internal/reports"
	"resto-system/internal/stock"
)

type IngredientHandler struct {
	db      *gorm.DB
	ledger  *stock.Ledger
	reports *reports.Service
	logger  *zap.Logger
}

func NewIngredientHandler(db *gorm.DB, ledger *stock.Ledger, reportsService *reports.Service, logger *zap.Logger) *IngredientHandler {
	return &IngredientHandler{db: db, ledger: ledger, reports: reportsService, logger: logger}
}

var ingredientSortable = map[string]bool{
	"name":           true,
	"stock_quantity": true,
	"expiry_date":    true,
}

type ingredientRequest struct {
	Name              string           `json:"name" binding:"required"`
	Supplier          uint             `json:"supplier" binding:"required"`
	StockQuantity     decimal.Decimal  `json:"stock_quantity"`
	Unit              string           `json:"unit" binding:"required"`
	MinimumStockLevel *decimal.Decimal `json:"minimum_stock_level"`
	CostPerUnit       decimal.Decimal  `json:"cost_per_unit"`
	StorageType       string           `json:"storage_type" binding:"required"`
	ExpiryDate        *string          `json:"expiry_date"`
}

func (r *ingredientRequest) apply(i *models.Ingredient) error {
	i.Name = r.Name
	i.SupplierID = r.Supplier
	i.StockQuantity = r.StockQuantity
	i.Unit = models.IngredientUnit(r.Unit)
	if r.MinimumStockLevel != nil {
		i.MinimumStockLevel = *r.MinimumStockLevel
	} else if i.MinimumStockLevel.IsZero() {
		i.MinimumStockLevel = decimal.NewFromInt(10)
	}
	i.CostPerUnit = r.CostPerUnit
	i.StorageType = models.StorageType(r.StorageType)
	if r.ExpiryDate != nil && *r.ExpiryDate != "" {
		parsed, err := parseDate(*r.ExpiryDate)
		if err != nil {
			return err
		}
		i.ExpiryDate = &parsed
	} else {
		i.ExpiryDate = nil
	}
	return nil
}

func (h *IngredientHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.Ingredient{}).Preload("Supplier")

	if unit := c.Query("unit"); unit != "" {
		q = q.Where("unit = ?", unit)
	}
	if storageType := c.Query("storage_type"); storageType != "" {
		q = q.Where("storage_type = ?", storageType)
	}
	if supplierID := parseUintQuery(c, "supplier_id"); supplierID != nil {
		q = q.Where("supplier_id = ?", *supplierID)
	}
	q = applySearch(q, c.Query("search"), "name")
	q = applyOrdering(q, c.Query("ordering"), ingredientSortable, "name asc")

	var ingredients []models.Ingredient
	if err := q.Find(&ingredients).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	success(c, http.StatusOK, serializeIngredients(ingredients))
}

func (h *IngredientHandler) Create(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation(err))
		return
	}

	var ingredient models.Ingredient
	if err := req.apply(&ingredient); err != nil {
		httperr.Respond(c, httperr.Validation(err))
		return
	}

	if err := ingredient.Validate(); err != nil {
		httperr.Respond(c, httperr.Validation(err))
		return
	}

	var supplier models.Supplier
	if err := h.db.WithContext(c.Request.Context()).First(&supplier, ingredient.SupplierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, httperr.Validation(errors.New("unknown supplier")))
			return
		}
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&ingredient).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	ingredient.Supplier = &supplier

	h.reports.InvalidateIngredientCaches(c.Request.Context())
	success(c, http.StatusCreated, serializeIngredient(&ingredient))
}

func (h *IngredientHandler) Get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, httperr.Validation(errors.New("invalid ingredient id")))
		return
	}

	var ingredient models.Ingredient
	if err := h.db.WithContext(c.Request.Context()).Preload("Supplier").First(&ingredient, id).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	success(c, http.StatusOK, serializeIngredient(&ingredient))
}

func (h *IngredientHandler) Update(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, httperr.Validation(errors.New("invalid ingredient id")))
		return
	}

	var ingredient models.Ingredient
	if err := h.db.WithContext(c.Request.Context()).First(&ingredient, id).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation(err))
		return
	}
	if err := req.apply(&ingredient); err != nil {
		httperr.Respond(c, httperr.Validation(err))
		return
	}

	if err := ingredient.Validate(); err != nil {
		httperr.Respond(c, httperr.Validation(err))
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&ingredient).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Preload("Supplier").First(&ingredient, id).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.reports.InvalidateIngredientCaches(c.Request.Context())
	success(c, http.StatusOK, serializeIngredient(&ingredient))
}

// Delete removes the ingredient; recipe rows referencing it go with it.
func (h *IngredientHandler) Delete(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, httperr.Validation(errors.New("invalid ingredient id")))
		return
	}

	var ingredient models.Ingredient
	if err := h.db.WithContext(c.Request.Context()).First(&ingredient, id).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	tx := h.db.WithContext(c.Request.Context()).Begin()
	if err := tx.Where("ingredient_id = ?", id).Delete(&models.RecipeItem{}).Error; err != nil {
		tx.Rollback()
		httperr.Respond(c, err)
		return
	}
	if err := tx.Delete(&ingredient).Error; err != nil {
		tx.Rollback()
		httperr.Respond(c, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.reports.InvalidateIngredientCaches(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (h *IngredientHandler) LowStock(c *gin.Context) {
	ingredients, err := h.reports.LowStockIngredients(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	success(c, http.StatusOK, serializeIngredients(ingredients))
}

type adjustStockRequest struct {
	Quantity interface{} `json:"quantity"`
}

// AdjustStock applies a signed delta to the ingredient's stock. The quantity
// may arrive as a JSON number or a numeric string; anything else is a 400.
func (h *IngredientHandler) AdjustStock(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, httperr.Validation(errors.New("invalid ingredient id")))
		return
	}

	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation(err))
		return
	}

	ingredient, err := h.ledger.Adjust(c.Request.Context(), id, rawQuantity(req.Quantity))
	if err != nil {
		if errors.Is(err, stock.ErrInvalidQuantity) {
			httperr.Respond(c, httperr.Validation(err))
			return
		}
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Preload("Supplier").First(ingredient, ingredient.ID).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.logger.Info("stock adjusted",
		zap.Uint("ingredient_id", ingredient.ID),
		zap.String("stock_quantity", ingredient.StockQuantity.String()))
	h.reports.InvalidateIngredientCaches(c.Request.Context())
	success(c, http.StatusOK, serializeIngredient(ingredient))
}
