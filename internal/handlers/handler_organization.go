package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/property_ledger_app/internal/dto"
	"github.com/SscSPs/property_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// organizationHandler handles HTTP requests related to organizations and their members.
type organizationHandler struct {
	tenancyService portssvc.TenancySvcFacade
}

func newOrganizationHandler(ts portssvc.TenancySvcFacade) *organizationHandler {
	return &organizationHandler{
		tenancyService: ts,
	}
}

// registerOrganizationRoutes registers the top-level organization routes and
// returns the group for a single organization, guarded by TenancyMiddleware.
func registerOrganizationRoutes(rg *gin.RouterGroup, tenancyService portssvc.TenancySvcFacade) *gin.RouterGroup {
	h := newOrganizationHandler(tenancyService)

	organizations := rg.Group("/organizations")
	{
		organizations.POST("", h.createOrganization)
		organizations.GET("", h.listOrganizations)
	}

	organizationSpecific := rg.Group("/organizations/:"+middleware.OrganizationParam, middleware.TenancyMiddleware(tenancyService))
	{
		organizationSpecific.POST("/members", h.addMember)
	}
	return organizationSpecific
}

// createOrganization creates an organization owned by the caller.
// @Summary Create an organization
// @Description Creates an organization and makes the caller its owner.
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   organization body dto.CreateOrganizationRequest true "Organization details"
// @Success 201 {object} domain.Organization
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create organization"
// @Security BearerAuth
// @Router /api/v1/organizations [post]
func (h *organizationHandler) createOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "kind": "unauthenticated"})
		return
	}

	org, err := h.tenancyService.CreateOrganization(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		respondError(c, err, "Failed to create organization")
		return
	}

	logger.Info("Organization created", slog.String("organization_id", org.OrganizationID))
	c.JSON(http.StatusCreated, org)
}

// listOrganizations lists the organizations the caller belongs to.
// @Summary List organizations of the current user
// @Description Lists the organizations the caller belongs to with the caller's role.
// @Tags organizations
// @Produce  json
// @Success 200 {object} dto.ListOrganizationsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list organizations"
// @Security BearerAuth
// @Router /api/v1/organizations [get]
func (h *organizationHandler) listOrganizations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "kind": "unauthenticated"})
		return
	}

	memberships, err := h.tenancyService.ListMemberships(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list organizations")
		return
	}
	c.JSON(http.StatusOK, dto.ListOrganizationsResponse{Organizations: memberships})
}

// addMember adds a user to the organization or changes their role.
// @Summary Add a member to an organization
// @Description Adds a user to the organization or changes their role (requires admin; granting owner requires owner).
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   member body dto.AddMemberRequest true "User ID and role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 500 {object} map[string]string "Failed to add member"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/members [post]
func (h *organizationHandler) addMember(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.tenancyService.AddMember(c.Request.Context(), tc, req.UserID, req.Role); err != nil {
		respondError(c, err, "Failed to add member")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Member added",
		slog.String("target_user_id", req.UserID), slog.String("role", string(req.Role)))
	c.Status(http.StatusNoContent)
}
