package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"resto-system/internal/database/models"
	"resto-system/internal/fulfillment"
	"resto-system/internal/httperr"
	"resto-system/internal/reports"
)

type OrderHandler struct {
	db          *gorm.DB
	fulfillment *fulfillment.Service
	reports     *reports.Service
	logger      *zap.Logger
}

func NewOrderHandler(db *gorm.DB, fulfillmentService *fulfillment.Service, reportsService *reports.Service, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{db: db, fulfillment: fulfillmentService, reports: reportsService, logger: logger}
}

var orderSortable = map[string]bool{
	"order_date": true,
	"status":     true,
}

type createOrderRequest struct {
	MenuItem            uint    `json:"menu_item" binding:"required"`
	Quantity            int     `json:"quantity"`
	CustomerName        *string `json:"customer_name"`
	SpecialInstructions *string `json:"special_instructions"`
}

type updateOrderRequest struct {
	CustomerName        *string `json:"customer_name"`
	SpecialInstructions *string `json:"special_instructions"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.Order{}).Preload("MenuItem")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if menuItemID := parseUintQuery(c, "menu_item_id"); menuItemID != nil {
		q = q.Where("menu_item_id = ?", *menuItemID)
	}
	q = applySearch(q, c.Query("search"), "customer_name", "special_instructions")
	q = applyOrdering(q, c.Query("ordering"), orderSortable, "order_date desc")

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	success(c, http.StatusOK, serializeOrders(orders))
}

// Create accepts an order through the fulfillment rule: the menu item must be
// available and its recipe coverable by current stock, and the deduction is
// committed together with the order row.
func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation(err))
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 {
		httperr.Respond(c, httperr.Validation(errors.New("quantity must be at least 1")))
		return
	}

	order, err := h.fulfillment.PlaceOrder(c.Request.Context(), fulfillment.PlaceOrderInput{
		MenuItemID:          req.MenuItem,
		Quantity:            req.Quantity,
		CustomerName:        req.CustomerName,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		h.respondFulfillmentError(c, err)
		return
	}

	h.reports.InvalidateIngredientCaches(c.Request.Context())
	h.reports.InvalidateOrderCaches(c.Request.Context(), order.OrderDate)
	success(c, http.StatusCreated, serializeOrder(order))
}

func (h *OrderHandler) respondFulfillmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, fulfillment.ErrMenuItemUnavailable),
		errors.Is(err, fulfillment.ErrInsufficientStock),
		errors.Is(err, fulfillment.ErrUnknownStatus),
		errors.Is(err, fulfillment.ErrInvalidStatusTransition):
		httperr.Respond(c, httperr.Validation(err))
	default:
		httperr.Respond(c, err)
	}
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, httperr.Validation(errors.New("invalid order id")))
		return
	}

	var order models.Order
	if err := h.db.WithContext(c.Request.Context()).Preload("MenuItem").First(&order, id).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	success(c, http.StatusOK, serializeOrder(&order))
}

// Update edits the free-text order fields only. Status moves through
// UpdateStatus and order_date is immutable.
func (h *OrderHandler) Update(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, httperr.Validation(errors.New("invalid order id")))
		return
	}

	var order models.Order
	if err := h.db.WithContext(c.Request.Context()).Preload("MenuItem").First(&order, id).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation(err))
		return
	}

	updates := map[string]interface{}{}
	if req.CustomerName != nil {
		updates["customer_name"] = *req.CustomerName
		order.CustomerName = req.CustomerName
	}
	if req.SpecialInstructions != nil {
		updates["special_instructions"] = *req.SpecialInstructions
		order.SpecialInstructions = req.SpecialInstructions
	}
	if len(updates) > 0 {
		if err := h.db.WithContext(c.Request.Context()).Model(&order).Updates(updates).Error; err != nil {
			httperr.Respond(c, err)
			return
		}
	}

	success(c, http.StatusOK, serializeOrder(&order))
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, httperr.Validation(errors.New("invalid order id")))
		return
	}

	var order models.Order
	if err := h.db.WithContext(c.Request.Context()).First(&order, id).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&order).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.reports.InvalidateOrderCaches(c.Request.Context(), order.OrderDate)
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) Pending(c *gin.Context) {
	orders, err := h.reports.PendingOrders(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	success(c, http.StatusOK, serializeOrders(orders))
}

// UpdateStatus moves the order along the status machine; completing an order
// deducts recipe quantities scaled by the order quantity.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, httperr.Validation(errors.New("invalid order id")))
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation(err))
		return
	}

	order, err := h.fulfillment.UpdateStatus(c.Request.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		h.respondFulfillmentError(c, err)
		return
	}

	if order.Status == models.OrderStatusCompleted {
		h.reports.InvalidateIngredientCaches(c.Request.Context())
	}
	h.reports.InvalidateOrderCaches(c.Request.Context(), order.OrderDate)
	success(c, http.StatusOK, serializeOrder(order))
}

// DailySales reports completed-order revenue for today's calendar date.
func (h *OrderHandler) DailySales(c *gin.Context) {
	today := time.Now()
	total, err := h.reports.DailySales(c.Request.Context(), today)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	success(c, http.StatusOK, gin.H{
		"date":        today.Format(dateLayout),
		"total_sales": total,
	})
}
