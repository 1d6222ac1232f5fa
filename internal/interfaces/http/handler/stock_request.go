package handler

import (
	apprequisition "github.com/farmstock/backend/internal/application/requisition"
	"github.com/gin-gonic/gin"
)

// StockRequestHandler handles the stock requisition endpoints
type StockRequestHandler struct {
	BaseHandler
	service *apprequisition.StockRequestService
}

// NewStockRequestHandler creates a new stock request handler
func NewStockRequestHandler(service *apprequisition.StockRequestService) *StockRequestHandler {
	return &StockRequestHandler{service: service}
}

// Create handles POST /stock-requests
func (h *StockRequestHandler) Create(c *gin.Context) {
	requester, ok := h.currentActor(c)
	if !ok {
		return
	}

	var req apprequisition.CreateStockRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.service.CreateRequest(c.Request.Context(), requester, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List handles GET /stock-requests
func (h *StockRequestHandler) List(c *gin.Context) {
	var filter apprequisition.StockRequestListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.service.ListRequests(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, result)
}

// Get handles GET /stock-requests/:id
func (h *StockRequestHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetRequest(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetByNumber handles GET /stock-requests/by-number/:number
func (h *StockRequestHandler) GetByNumber(c *gin.Context) {
	result, err := h.service.GetRequestByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Approve handles PATCH /stock-requests/:id/approve and
// PATCH /stock-requests/:id/modify-approve. Both accept the same payload;
// a plain approval simply carries no modifications.
func (h *StockRequestHandler) Approve(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req apprequisition.ApproveStockRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.service.ApproveRequest(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Reject handles PATCH /stock-requests/:id/reject
func (h *StockRequestHandler) Reject(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req apprequisition.RejectStockRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.service.RejectRequest(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Close handles PATCH /stock-requests/:id/close
func (h *StockRequestHandler) Close(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.CloseRequest(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// IssueMaterials handles POST /stock-requests/issue-materials
func (h *StockRequestHandler) IssueMaterials(c *gin.Context) {
	var req apprequisition.IssueMaterialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.service.IssueMaterials(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ReceiveMaterials handles POST /stock-requests/receive-materials
func (h *StockRequestHandler) ReceiveMaterials(c *gin.Context) {
	var req apprequisition.ReceiveMaterialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.service.ReceiveMaterials(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete handles DELETE /stock-requests/:id
func (h *StockRequestHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteRequest(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
