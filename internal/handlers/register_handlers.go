package handlers

import (
	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/property_ledger_app/internal/middleware"
	"github.com/SscSPs/property_ledger_app/internal/platform/config"
	"github.com/SscSPs/property_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Probes are the dependencies checked by GET /health. Redis may be nil.
type Probes struct {
	DB    Pinger
	Redis *redis.Client
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	probes Probes,
	analytics *utils.PosthogClientWrapper,
) {
	health := &healthHandler{db: probes.DB, redis: probes.Redis}
	r.GET("/health", health.health)

	setupAPIV1Routes(r, cfg, services, analytics)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	analytics *utils.PosthogClientWrapper,
) {
	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
		middleware.PosthogMiddleware(analytics),
	)
	RegisterOrganizationAPI(v1, services)
}

// RegisterOrganizationAPI registers the organization routes and every route
// nested under a single organization on rg.
func RegisterOrganizationAPI(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	org := registerOrganizationRoutes(rg, services.Tenancy)

	registerPropertyRoutes(org, services.Property, services.Summary)
	registerLedgerRoutes(org, services.Ledger, services.Category)
	registerBudgetRoutes(org, services.Budget)
	registerRecurringRoutes(org, services.Recurring)
	registerPendingRoutes(org, services.Pending)
	registerReminderRoutes(org, services.Reminder)
	registerReportingRoutes(org, services.Reporting)
}
