package handler

import (
	appevent "github.com/farmstock/backend/internal/application/event"
	"github.com/gin-gonic/gin"
)

// OutboxHandler exposes dead letter inspection and replay for operators
type OutboxHandler struct {
	BaseHandler
	service *appevent.OutboxService
}

// NewOutboxHandler creates a new outbox handler
func NewOutboxHandler(service *appevent.OutboxService) *OutboxHandler {
	return &OutboxHandler{service: service}
}

// ListDeadLetters handles GET /outbox/dead-letters
func (h *OutboxHandler) ListDeadLetters(c *gin.Context) {
	var filter appevent.OutboxFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.service.GetDeadLetterEntries(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, result)
}

// Get handles GET /outbox/entries/:id
func (h *OutboxHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	entry, err := h.service.GetEntry(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// RetryDeadLetter handles POST /outbox/dead-letters/:id/retry
func (h *OutboxHandler) RetryDeadLetter(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	entry, err := h.service.RetryDeadEntry(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// RetryAllDeadLetters handles POST /outbox/dead-letters/retry-all
func (h *OutboxHandler) RetryAllDeadLetters(c *gin.Context) {
	count, err := h.service.RetryAllDeadEntries(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"retried": count})
}

// Stats handles GET /outbox/stats
func (h *OutboxHandler) Stats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
