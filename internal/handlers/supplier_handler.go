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

type SupplierHandler struct {
	db      *gorm.DB
	reports *reports.Service
	logger  *zap.Logger
}

func NewSupplierHandler(db *gorm.DB, reportsService *reports.Service, logger *zap.Logger) *SupplierHandler {
	return &SupplierHandler{db: db, reports: reportsService, logger: logger}
}

var supplierSortable = map[string]bool{
	"name":   true,
	"rating": true,
}

type supplierRequest struct {
	Name          string          `json:"name" binding:"required"`
	Category      string          `json:"category" binding:"required"`
	ContactPerson *string         `json:"contact_person"`
	Email         *string         `json:"email"`
	PhoneNumber   *string         `json:"phone_number"`
	Address       *string         `json:"address"`
	IsActive      *bool           `json:"is_active"`
	Rating        decimal.Decimal `json:"rating"`
}

func (r *supplierRequest) apply(s *models.Supplier) {
	s.Name = r.Name
	s.Category = models.SupplierCategory(r.Category)
	s.ContactPerson = r.ContactPerson
	s.Email = r.Email
	s.PhoneNumber = r.PhoneNumber
	s.Address = r.Address
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
	s.Rating = r.Rating
}

func (h *SupplierHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.Supplier{})

	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if isActive := parseBoolQuery(c, "is_active"); isActive != nil {
		q = q.Where("is_active = ?", *isActive)
	}
	q = applySearch(q, c.Query("search"), "name", "contact_person")
	q = applyOrdering(q, c.Query("ordering"), supplierSortable, "name asc")

	var suppliers []models.Supplier
	if err := q.Find(&suppliers).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	success(c, http.StatusOK, serializeSuppliers(suppliers))
}

func (h *SupplierHandler) Create(c *gin.Context) {
	var req supplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation(err))
		return
	}

	var supplier models.Supplier
	supplier.IsActive = true
	req.apply(&supplier)

	if err := supplier.Validate(); err != nil {
		httperr.Respond(c, httperr.Validation(err))
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&supplier).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.reports.InvalidateSupplierCaches(c.Request.Context())
	success(c, http.StatusCreated, serializeSupplier(&supplier))
}

func (h *SupplierHandler) Get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, httperr.Validation(errors.New("invalid supplier id")))
		return
	}

	var supplier models.Supplier
	if err := h.db.WithContext(c.Request.Context()).First(&supplier, id).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	success(c, http.StatusOK, serializeSupplier(&supplier))
}

func (h *SupplierHandler) Update(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, httperr.Validation(errors.New("invalid supplier id")))
		return
	}

	var supplier models.Supplier
	if err := h.db.WithContext(c.Request.Context()).First(&supplier, id).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	var req supplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation(err))
		return
	}
	req.apply(&supplier)

	if err := supplier.Validate(); err != nil {
		httperr.Respond(c, httperr.Validation(err))
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&supplier).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.reports.InvalidateSupplierCaches(c.Request.Context())
	success(c, http.StatusOK, serializeSupplier(&supplier))
}

// Delete removes a supplier, refusing while any ingredient still references
// it. Deactivation is the supported path for suppliers in use.
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, httperr.Validation(errors.New("invalid supplier id")))
		return
	}

	var supplier models.Supplier
	if err := h.db.WithContext(c.Request.Context()).First(&supplier, id).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	var ingredientCount int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Ingredient{}).
		Where("supplier_id = ?", id).
		Count(&ingredientCount).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	if ingredientCount > 0 {
		httperr.Respond(c, httperr.Protected(
			fmt.Errorf("supplier %q has %d ingredients and cannot be deleted", supplier.Name, ingredientCount)))
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&supplier).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.reports.InvalidateSupplierCaches(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// Deactivate soft-disables a supplier instead of deleting it.
func (h *SupplierHandler) Deactivate(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, httperr.Validation(errors.New("invalid supplier id")))
		return
	}

	var supplier models.Supplier
	if err := h.db.WithContext(c.Request.Context()).First(&supplier, id).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(&supplier).
		Update("is_active", false).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	supplier.IsActive = false

	h.logger.Info("supplier deactivated", zap.Uint("supplier_id", supplier.ID))
	h.reports.InvalidateSupplierCaches(c.Request.Context())
	success(c, http.StatusOK, serializeSupplier(&supplier))
}

func (h *SupplierHandler) LowRating(c *gin.Context) {
	suppliers, err := h.reports.LowRatingSuppliers(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	success(c, http.StatusOK, serializeSuppliers(suppliers))
}
