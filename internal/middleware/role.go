package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"silab/internal/domain"
	"silab/internal/pkg/response"
)

// Require gates a route group behind a capability check, e.g.
// Require(domain.Role.CanApproveBookings).
func Require(capability func(domain.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := RoleOf(c)
		if role == "" {
			response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}
		if !capability(role) {
			response.AbortError(c, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
			return
		}
		c.Next()
	}
}
