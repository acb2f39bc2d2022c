package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"resto-system/internal/database/models"
	"resto-system/internal/httperr"
	"resto-system/internal/reports"
)

type MenuHandler struct {
	db      *gorm.DB
	reports *reports.Service
	logger  *zap.Logger
}

func NewMenuHandler(db *gorm.DB, reportsService *reports.Service, logger *zap.Logger) *MenuHandler {
	return &MenuHandler{db: db, reports: reportsService, logger: logger}
}

var menuItemSortable = map[string]bool{
	"name":  true,
	"price": true,
}

type recipeItemRequest struct {
	Ingredient uint            `json:"ingredient" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
}

type menuItemRequest struct {
	Name                   string              `json:"name" binding:"required"`
	Description            string              `json:"description"`
	Category               string              `json:"category" binding:"required"`
	IsVegetarian           bool                `json:"is_vegetarian"`
	IsAvailable            *bool               `json:"is_available"`
	Price                  decimal.Decimal     `json:"price"`
	PreparationTimeMinutes *int                `json:"preparation_time_minutes"`
	RecipeItems            []recipeItemRequest `json:"recipe_items"`
}

func (r *menuItemRequest) apply(m *models.MenuItem) {
	m.Name = r.Name
	m.Description = r.Description
	m.Category = models.MenuItemCategory(r.Category)
	m.IsVegetarian = r.IsVegetarian
	if r.IsAvailable != nil {
		m.IsAvailable = *r.IsAvailable
	}
	m.Price = r.Price
	m.PreparationTimeMinutes = r.PreparationTimeMinutes
}

// validateRecipe rejects duplicate ingredients and negative quantities before
// any rows are written.
func (r *menuItemRequest) validateRecipe() error {
	seen := make(map[uint]bool, len(r.RecipeItems))
	for _, ri := range r.RecipeItems {
		if seen[ri.Ingredient] {
			return fmt.Errorf("duplicate recipe ingredient %d", ri.Ingredient)
		}
		seen[ri.Ingredient] = true
		if ri.Quantity.IsNegative() {
			return fmt.Errorf("recipe quantity must not be negative, got %s", ri.Quantity)
		}
	}
	return nil
}

func (h *MenuHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.MenuItem{}).Preload("RecipeItems.Ingredient")

	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if isVegetarian := parseBoolQuery(c, "is_vegetarian"); isVegetarian != nil {
		q = q.Where("is_vegetarian = ?", *isVegetarian)
	}
	if isAvailable := parseBoolQuery(c, "is_available"); isAvailable != nil {
		q = q.Where("is_available = ?", *isAvailable)
	}
	q = applySearch(q, c.Query("search"), "name", "description")
	q = applyOrdering(q, c.Query("ordering"), menuItemSortable, "name asc")

	var items []models.MenuItem
	if err := q.Find(&items).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	success(c, http.StatusOK, serializeMenuItems(items))
}

func (h *MenuHandler) Create(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation(err))
		return
	}
	if err := req.validateRecipe(); err != nil {
		httperr.Respond(c, httperr.Validation(err))
		return
	}

	var item models.MenuItem
	item.IsAvailable = true
	req.apply(&item)

	if err := item.Validate(); err != nil {
		httperr.Respond(c, httperr.Validation(err))
		return
	}

	tx := h.db.WithContext(c.Request.Context()).Begin()
	if err := tx.Create(&item).Error; err != nil {
		tx.Rollback()
		httperr.Respond(c, err)
		return
	}
	if err := h.createRecipeItems(tx, item.ID, req.RecipeItems); err != nil {
		tx.Rollback()
		httperr.Respond(c, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.reload(c, &item); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.reports.InvalidateMenuCaches(c.Request.Context())
	success(c, http.StatusCreated, serializeMenuItem(&item))
}

func (h *MenuHandler) createRecipeItems(tx *gorm.DB, menuItemID uint, items []recipeItemRequest) error {
	for _, ri := range items {
		var ingredient models.Ingredient
		if err := tx.First(&ingredient, ri.Ingredient).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.Validation(fmt.Errorf("unknown ingredient %d", ri.Ingredient))
			}
			return err
		}
		row := models.RecipeItem{
			MenuItemID:   menuItemID,
			IngredientID: ri.Ingredient,
			Quantity:     ri.Quantity,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func (h *MenuHandler) reload(c *gin.Context, item *models.MenuItem) error {
	return h.db.WithContext(c.Request.Context()).
		Preload("RecipeItems.Ingredient").
		First(item, item.ID).Error
}

func (h *MenuHandler) Get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, httperr.Validation(errors.New("invalid menu item id")))
		return
	}

	var item models.MenuItem
	if err := h.db.WithContext(c.Request.Context()).
		Preload("RecipeItems.Ingredient").
		First(&item, id).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	success(c, http.StatusOK, serializeMenuItem(&item))
}

// Update replaces the menu item's fields and, when recipe_items is present,
// its entire recipe.
func (h *MenuHandler) Update(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, httperr.Validation(errors.New("invalid menu item id")))
		return
	}

	var item models.MenuItem
	if err := h.db.WithContext(c.Request.Context()).First(&item, id).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation(err))
		return
	}
	if err := req.validateRecipe(); err != nil {
		httperr.Respond(c, httperr.Validation(err))
		return
	}
	req.apply(&item)

	if err := item.Validate(); err != nil {
		httperr.Respond(c, httperr.Validation(err))
		return
	}

	tx := h.db.WithContext(c.Request.Context()).Begin()
	if err := tx.Save(&item).Error; err != nil {
		tx.Rollback()
		httperr.Respond(c, err)
		return
	}
	if req.RecipeItems != nil {
		if err := tx.Where("menu_item_id = ?", item.ID).Delete(&models.RecipeItem{}).Error; err != nil {
			tx.Rollback()
			httperr.Respond(c, err)
			return
		}
		if err := h.createRecipeItems(tx, item.ID, req.RecipeItems); err != nil {
			tx.Rollback()
			httperr.Respond(c, err)
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.reload(c, &item); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.reports.InvalidateMenuCaches(c.Request.Context())
	success(c, http.StatusOK, serializeMenuItem(&item))
}

// Delete removes a menu item and cascades its recipe rows, refusing while
// orders still reference the item.
func (h *MenuHandler) Delete(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, httperr.Validation(errors.New("invalid menu item id")))
		return
	}

	var item models.MenuItem
	if err := h.db.WithContext(c.Request.Context()).First(&item, id).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	var orderCount int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Order{}).
		Where("menu_item_id = ?", id).
		Count(&orderCount).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	if orderCount > 0 {
		httperr.Respond(c, httperr.Protected(
			fmt.Errorf("menu item %q has %d orders and cannot be deleted", item.Name, orderCount)))
		return
	}

	tx := h.db.WithContext(c.Request.Context()).Begin()
	if err := tx.Where("menu_item_id = ?", id).Delete(&models.RecipeItem{}).Error; err != nil {
		tx.Rollback()
		httperr.Respond(c, err)
		return
	}
	if err := tx.Delete(&item).Error; err != nil {
		tx.Rollback()
		httperr.Respond(c, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.reports.InvalidateMenuCaches(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (h *MenuHandler) Unavailable(c *gin.Context) {
	items, err := h.reports.UnavailableMenuItems(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	success(c, http.StatusOK, serializeMenuItems(items))
}

func (h *MenuHandler) ToggleAvailability(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, httperr.Validation(errors.New("invalid menu item id")))
		return
	}

	var item models.MenuItem
	if err := h.db.WithContext(c.Request.Context()).
		Preload("RecipeItems.Ingredient").
		First(&item, id).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	toggled := !item.IsAvailable
	if err := h.db.WithContext(c.Request.Context()).
		Model(&item).
		Update("is_available", toggled).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	item.IsAvailable = toggled

	h.logger.Info("menu item availability toggled",
		zap.Uint("menu_item_id", item.ID),
		zap.Bool("is_available", item.IsAvailable))
	h.reports.InvalidateMenuCaches(c.Request.Context())
	success(c, http.StatusOK, serializeMenuItem(&item))
}
