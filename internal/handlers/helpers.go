package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	"github.com/SscSPs/property_ledger_app/internal/dto"
	"github.com/SscSPs/property_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// now is the clock used for "today" in handlers that default a date.
var now = time.Now

func today() time.Time {
	return domain.DateOf(now().UTC())
}

// respondError writes the {"error", "kind"} body for err. Backend failures
// are logged with their cause and reported with the generic message only.
func respondError(c *gin.Context, err error, msg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.StatusOf(err)
	kind := apperrors.KindOf(err)

	if status >= http.StatusInternalServerError && kind != "setup_required" {
		logger.Error(msg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": msg, "kind": kind})
		return
	}
	logger.Warn(msg, slog.String("kind", kind), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error(), "kind": kind})
}

// respondBindError reports a request that failed binding or tag validation.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error(), "kind": "validation"})
}

// tenancyFrom returns the context resolved by TenancyMiddleware. A missing
// context is reported as unauthenticated.
func tenancyFrom(c *gin.Context) (domain.TenancyContext, bool) {
	tc, ok := middleware.GetTenancyFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Tenancy context not found")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "kind": "unauthenticated"})
		return domain.TenancyContext{}, false
	}
	return tc, true
}

// bindWindow reads the start_date / end_date query parameters. It writes the
// error response itself and reports false when the window is invalid.
func bindWindow(c *gin.Context) (domain.DateWindow, bool) {
	var params dto.WindowParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return domain.DateWindow{}, false
	}
	window, err := params.ToWindow()
	if err != nil {
		respondError(c, err, "Invalid date range")
		return domain.DateWindow{}, false
	}
	return window, true
}
