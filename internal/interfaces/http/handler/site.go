package handler

import (
	apppartner "github.com/farmstock/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// SiteHandler handles the site endpoints
type SiteHandler struct {
	BaseHandler
	service *apppartner.SiteService
}

// NewSiteHandler creates a new site handler
func NewSiteHandler(service *apppartner.SiteService) *SiteHandler {
	return &SiteHandler{service: service}
}

// Create handles POST /sites
func (h *SiteHandler) Create(c *gin.Context) {
	var req apppartner.CreateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	site, err := h.service.CreateSite(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, site)
}

// List handles GET /sites
func (h *SiteHandler) List(c *gin.Context) {
	var filter apppartner.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.service.ListSites(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, result)
}

// Get handles GET /sites/:id
func (h *SiteHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	site, err := h.service.GetSite(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, site)
}

// Update handles PATCH /sites/:id
func (h *SiteHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req apppartner.UpdateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	site, err := h.service.UpdateSite(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, site)
}

// Delete handles DELETE /sites/:id
func (h *SiteHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteSite(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
