package handler

import (
	apppartner "github.com/farmstock/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// StoreHandler handles the store endpoints
type StoreHandler struct {
	BaseHandler
	service *apppartner.StoreService
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(service *apppartner.StoreService) *StoreHandler {
	return &StoreHandler{service: service}
}

// Create handles POST /stores
func (h *StoreHandler) Create(c *gin.Context) {
	var req apppartner.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	store, err := h.service.CreateStore(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, store)
}

// List handles GET /stores
func (h *StoreHandler) List(c *gin.Context) {
	var filter apppartner.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.service.ListStores(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, result)
}

// Get handles GET /stores/:id
func (h *StoreHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	store, err := h.service.GetStore(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, store)
}

// Update handles PATCH /stores/:id
func (h *StoreHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req apppartner.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	store, err := h.service.UpdateStore(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, store)
}

// Delete handles DELETE /stores/:id
func (h *StoreHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteStore(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
