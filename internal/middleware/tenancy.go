package middleware

import (
	"context"
	"log/slog"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// OrganizationParam is the route parameter holding the selected organization.
const OrganizationParam = "organization_id"

// TenancyResolver resolves a user's membership in an organization.
type TenancyResolver interface {
	Resolve(ctx context.Context, userID, organizationID string) (domain.TenancyContext, error)
}

// TenancyMiddleware resolves the (user, organization) pair for routes under
// /organizations/:organization_id and stores it in the request context.
func TenancyMiddleware(resolver TenancyResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		userID, _ := GetUserIDFromContext(c)
		orgID := c.Param(OrganizationParam)

		tc, err := resolver.Resolve(c.Request.Context(), userID, orgID)
		if err != nil {
			logger.Warn("Tenancy resolution failed", slog.String("organization_id", orgID), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(apperrors.StatusOf(err), gin.H{"error": err.Error(), "kind": apperrors.KindOf(err)})
			return
		}

		ctx := WithTenancy(c.Request.Context(), tc)
		ctx = WithLogger(ctx, logger.With(slog.String("organization_id", tc.OrganizationID)))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
