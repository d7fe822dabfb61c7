package middleware

import (
	"github.com/gin-gonic/gin"
)

// contextKey is a private type for context keys set by middleware. Using a
// custom type prevents collisions with other packages.
type contextKey string

const (
	// userIDKey stores the authenticated user's numeric ID.
	userIDKey = contextKey("userID")
	// roleKey stores the authenticated user's role claim.
	roleKey = contextKey("role")
	// loggerCtxKey stores the request-scoped logger.
	loggerCtxKey = contextKey("logger")
)

// GetUserIDFromContext retrieves the authenticated user ID set by
// AuthMiddleware. It returns the ID and whether it was found.
func GetUserIDFromContext(c *gin.Context) (int64, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		if id, ok := v.(int64); ok {
			return id, true
		}
		return 0, false
	}
	if v := c.Request.Context().Value(userIDKey); v != nil {
		if id, ok := v.(int64); ok {
			return id, true
		}
	}
	return 0, false
}

// GetRoleFromContext retrieves the role claim set by AuthMiddleware.
func GetRoleFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(roleKey)); exists {
		if role, ok := v.(string); ok {
			return role, true
		}
		return "", false
	}
	if v := c.Request.Context().Value(roleKey); v != nil {
		if role, ok := v.(string); ok {
			return role, true
		}
	}
	return "", false
}
