package handler

import (
	appmedication "github.com/farmstock/backend/internal/application/medication"
	"github.com/gin-gonic/gin"
)

// MedicationRecordHandler handles the medication record endpoints
type MedicationRecordHandler struct {
	BaseHandler
	service *appmedication.RecordService
}

// NewMedicationRecordHandler creates a new medication record handler
func NewMedicationRecordHandler(service *appmedication.RecordService) *MedicationRecordHandler {
	return &MedicationRecordHandler{service: service}
}

// Create handles POST /medication-records
func (h *MedicationRecordHandler) Create(c *gin.Context) {
	administeredBy, ok := h.currentActor(c)
	if !ok {
		return
	}

	var req appmedication.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	record, err := h.service.CreateRecord(c.Request.Context(), administeredBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, record)
}

// List handles GET /medication-records
func (h *MedicationRecordHandler) List(c *gin.Context) {
	var filter appmedication.RecordListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.service.ListRecords(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, result)
}

// Get handles GET /medication-records/:id
func (h *MedicationRecordHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	record, err := h.service.GetRecord(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// Update handles PATCH /medication-records/:id
func (h *MedicationRecordHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req appmedication.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	record, err := h.service.UpdateRecord(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// Delete handles DELETE /medication-records/:id
func (h *MedicationRecordHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteRecord(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
