package handler

import (
	appinventory "github.com/farmstock/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// StockItemHandler handles the stock item endpoints
type StockItemHandler struct {
	BaseHandler
	service *appinventory.StockItemService
}

// NewStockItemHandler creates a new stock item handler
func NewStockItemHandler(service *appinventory.StockItemService) *StockItemHandler {
	return &StockItemHandler{service: service}
}

// Create handles POST /stock/items
func (h *StockItemHandler) Create(c *gin.Context) {
	var req appinventory.CreateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	item, err := h.service.CreateStockItem(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// List handles GET /stock/items
func (h *StockItemHandler) List(c *gin.Context) {
	var filter appinventory.StockItemListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.service.ListStockItems(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, result)
}

// LowStock handles GET /stock/items/low-stock
func (h *StockItemHandler) LowStock(c *gin.Context) {
	var filter appinventory.StockItemListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}
	filter.BelowMinimum = true

	result, err := h.service.ListStockItems(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, result)
}

// Get handles GET /stock/items/:id
func (h *StockItemHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.service.GetStockItem(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Update handles PATCH /stock/items/:id
func (h *StockItemHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req appinventory.UpdateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	item, err := h.service.UpdateStockItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Restock handles POST /stock/items/:id/restock
func (h *StockItemHandler) Restock(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req appinventory.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	item, err := h.service.Restock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete handles DELETE /stock/items/:id
func (h *StockItemHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteStockItem(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
