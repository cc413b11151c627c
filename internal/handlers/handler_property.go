package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/property_ledger_app/internal/dto"
	"github.com/SscSPs/property_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// propertyHandler handles HTTP requests related to properties and their summaries.
type propertyHandler struct {
	propertyService portssvc.PropertySvcFacade
	summaryService  portssvc.SummarySvc
}

func newPropertyHandler(ps portssvc.PropertySvcFacade, ss portssvc.SummarySvc) *propertyHandler {
	return &propertyHandler{
		propertyService: ps,
		summaryService:  ss,
	}
}

func registerPropertyRoutes(rg *gin.RouterGroup, propertyService portssvc.PropertySvcFacade, summaryService portssvc.SummarySvc) {
	h := newPropertyHandler(propertyService, summaryService)

	properties := rg.Group("/properties")
	{
		properties.POST("", h.createProperty)
		properties.GET("", h.listProperties)
		properties.GET("/:property_id", h.getProperty)
		properties.PUT("/:property_id", h.updateProperty)
		properties.DELETE("/:property_id", h.deleteProperty)
		properties.GET("/:property_id/summary", h.getPropertySummary)
	}
	rg.GET("/summary", h.getOrganizationSummary)
}

// createProperty godoc
// @Summary Create a property
// @Description Requires admin.
// @Tags properties
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   property body dto.PropertyRequest true "Property details"
// @Success 201 {object} domain.Property
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 500 {object} map[string]string "Failed to create property"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/properties [post]
func (h *propertyHandler) createProperty(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	var req dto.PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respondError(c, err, "Invalid property")
		return
	}

	property, err := h.propertyService.CreateProperty(c.Request.Context(), tc, in)
	if err != nil {
		respondError(c, err, "Failed to create property")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Property created", slog.String("property_id", property.PropertyID))
	c.JSON(http.StatusCreated, property)
}

// listProperties godoc
// @Summary List properties
// @Tags properties
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {object} dto.ListPropertiesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 500 {object} map[string]string "Failed to list properties"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/properties [get]
func (h *propertyHandler) listProperties(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	properties, err := h.propertyService.ListProperties(c.Request.Context(), tc)
	if err != nil {
		respondError(c, err, "Failed to list properties")
		return
	}
	c.JSON(http.StatusOK, dto.ListPropertiesResponse{Properties: properties})
}

// getProperty godoc
// @Summary Get a property
// @Tags properties
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   property_id path string true "Property ID"
// @Success 200 {object} domain.Property
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Property not found"
// @Failure 500 {object} map[string]string "Failed to retrieve property"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/properties/{property_id} [get]
func (h *propertyHandler) getProperty(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	property, err := h.propertyService.GetProperty(c.Request.Context(), tc, c.Param("property_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve property")
		return
	}
	c.JSON(http.StatusOK, property)
}

// updateProperty godoc
// @Summary Update a property
// @Description Requires admin.
// @Tags properties
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   property_id path string true "Property ID"
// @Param   property body dto.PropertyRequest true "Property details"
// @Success 200 {object} domain.Property
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Property not found"
// @Failure 500 {object} map[string]string "Failed to update property"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/properties/{property_id} [put]
func (h *propertyHandler) updateProperty(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	var req dto.PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respondError(c, err, "Invalid property")
		return
	}

	property, err := h.propertyService.UpdateProperty(c.Request.Context(), tc, c.Param("property_id"), in)
	if err != nil {
		respondError(c, err, "Failed to update property")
		return
	}
	c.JSON(http.StatusOK, property)
}

// deleteProperty removes the property together with its ledger, templates,
// pendings, reminders and budgets.
// @Summary Delete a property
// @Description Requires admin. Ledger rows, templates, pendings, reminders and budgets of the property are removed with it.
// @Tags properties
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   property_id path string true "Property ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Property not found"
// @Failure 500 {object} map[string]string "Failed to delete property"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/properties/{property_id} [delete]
func (h *propertyHandler) deleteProperty(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	propertyID := c.Param("property_id")
	if err := h.propertyService.DeleteProperty(c.Request.Context(), tc, propertyID); err != nil {
		respondError(c, err, "Failed to delete property")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Property deleted", slog.String("property_id", propertyID))
	c.Status(http.StatusNoContent)
}

// getPropertySummary godoc
// @Summary Summarize a property
// @Description Total income, total expenses, net income and ROI (net / income) over an optional window.
// @Tags properties
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   property_id path string true "Property ID"
// @Param   start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} domain.FinancialSummary
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Property not found"
// @Failure 500 {object} map[string]string "Failed to summarize property"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/properties/{property_id}/summary [get]
func (h *propertyHandler) getPropertySummary(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	window, ok := bindWindow(c)
	if !ok {
		return
	}

	summary, err := h.summaryService.Summarize(c.Request.Context(), tc, c.Param("property_id"), window)
	if err != nil {
		respondError(c, err, "Failed to summarize property")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getOrganizationSummary godoc
// @Summary Summarize the organization
// @Tags properties
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} domain.FinancialSummary
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 500 {object} map[string]string "Failed to summarize organization"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/summary [get]
func (h *propertyHandler) getOrganizationSummary(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	window, ok := bindWindow(c)
	if !ok {
		return
	}

	summary, err := h.summaryService.SummarizeOrganization(c.Request.Context(), tc, window)
	if err != nil {
		respondError(c, err, "Failed to summarize organization")
		return
	}
	c.JSON(http.StatusOK, summary)
}
