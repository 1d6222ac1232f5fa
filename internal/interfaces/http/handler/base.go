package handler

import (
	"errors"
	"net/http"

	"github.com/farmstock/backend/internal/domain/shared"
	"github.com/farmstock/backend/internal/domain/shared/valueobject"
	"github.com/farmstock/backend/internal/infrastructure/logger"
	"github.com/farmstock/backend/internal/interfaces/http/dto"
	"github.com/farmstock/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides common response helpers for HTTP handlers
type BaseHandler struct{}

// Success writes a 200 response with the given payload
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta writes a 200 response with pagination metadata
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Paginated writes a 200 response from a paginated result
func Paginated[T any](h *BaseHandler, c *gin.Context, result *shared.Paginated[T]) {
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Created writes a 201 response with the given payload
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent writes a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 response for malformed input, unpacking validator
// errors into per-field details when present
func (h *BaseHandler) BadRequest(c *gin.Context, err error) {
	requestID := h.requestID(c)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]dto.ValidationDetail, 0, len(validationErrs))
		for _, fe := range validationErrs {
			details = append(details, dto.ValidationDetail{
				Field:   fe.Field(),
				Message: fe.Tag(),
			})
		}
		c.JSON(http.StatusBadRequest,
			dto.NewValidationErrorResponse("request validation failed", requestID, details))
		return
	}

	c.JSON(http.StatusBadRequest,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeBadRequest, err.Error(), requestID))
}

// Unauthorized writes a 401 response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, h.requestID(c)))
}

// HandleError maps an error to an HTTP response. Domain errors keep their
// original code in the body while the status comes from the normalized code.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	requestID := h.requestID(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(dto.NormalizeErrorCode(domainErr.Code))
		c.JSON(status, dto.NewErrorResponseWithRequestID(domainErr.Code, domainErr.Message, requestID))
		return
	}

	logger.GetGinLogger(c).Error("unhandled error", zap.Error(err))
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "internal server error", requestID))
}

func (h *BaseHandler) requestID(c *gin.Context) string {
	return c.GetString("X-Request-ID")
}

// parseUUIDParam parses a UUID path parameter, writing a 400 response on failure
func (h *BaseHandler) parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeInvalidInput, "invalid "+name+" parameter", h.requestID(c)))
		return uuid.Nil, false
	}
	return id, true
}

// currentActor builds the acting user from the validated JWT claims
func (h *BaseHandler) currentActor(c *gin.Context) (valueobject.Actor, bool) {
	userID, ok := middleware.GetJWTUserID(c)
	if !ok {
		h.Unauthorized(c, "authentication required")
		return valueobject.Actor{}, false
	}
	role, ok := middleware.GetJWTRole(c)
	if !ok {
		h.Unauthorized(c, "authentication required")
		return valueobject.Actor{}, false
	}
	actor, err := valueobject.NewActor(valueobject.ActorKind(role), userID)
	if err != nil {
		h.Unauthorized(c, "invalid token claims")
		return valueobject.Actor{}, false
	}
	return actor, true
}
