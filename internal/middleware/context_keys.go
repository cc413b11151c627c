package middleware

import (
	"context"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey    = contextKey("userID")
	userEmailKey = contextKey("userEmail")
	tenancyKey   = contextKey("tenancy")
)

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetUserEmailFromContext retrieves the authenticated user's email, if the token carried one.
func GetUserEmailFromContext(c *gin.Context) string {
	email, _ := c.Request.Context().Value(userEmailKey).(string)
	return email
}

// WithTenancy returns a copy of ctx carrying the resolved tenancy context.
func WithTenancy(ctx context.Context, tc domain.TenancyContext) context.Context {
	return context.WithValue(ctx, tenancyKey, tc)
}

// GetTenancyFromContext retrieves the tenancy context set by TenancyMiddleware.
func GetTenancyFromContext(c *gin.Context) (domain.TenancyContext, bool) {
	tc, ok := c.Request.Context().Value(tenancyKey).(domain.TenancyContext)
	return tc, ok
}
