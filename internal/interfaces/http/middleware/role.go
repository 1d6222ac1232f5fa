package middleware

import (
	"net/http"

	"github.com/farmstock/backend/internal/domain/identity"
	"github.com/farmstock/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RequireRoles returns a middleware that rejects requests whose authenticated
// role is not in the allowed set. It must run after JWTAuthMiddleware.
func RequireRoles(roles ...identity.UserRole) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[string(role)] = struct{}{}
	}

	return func(c *gin.Context) {
		role, ok := GetJWTRole(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized,
					"authentication required", c.GetString(requestIDHeader)))
			return
		}
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden,
					"insufficient permissions", c.GetString(requestIDHeader)))
			return
		}
		c.Next()
	}
}

// RequireAdmin restricts a route to administrators
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(identity.UserRoleAdmin)
}
