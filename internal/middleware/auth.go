package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"silab/internal/domain"
	jwtsvc "silab/internal/pkg/jwt"
	"silab/internal/pkg/response"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxName   = "user_name"
)

// Auth validates the bearer token and stores the claims on the context.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing Authorization header")
			return
		}
		if !strings.HasPrefix(h, "Bearer ") {
			response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid Authorization header")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Set(ctxName, claims.Name)

		c.Next()
	}
}

// UserID returns the authenticated user id stored by Auth.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(ctxUserID)
}

// RoleOf returns the authenticated role stored by Auth.
func RoleOf(c *gin.Context) domain.Role {
	if v, ok := c.Get(ctxRole); ok {
		if r, ok := v.(domain.Role); ok {
			return r
		}
	}
	return ""
}

// UserName returns the display name from the token claims.
func UserName(c *gin.Context) string {
	return c.GetString(ctxName)
}
