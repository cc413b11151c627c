package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/property_ledger_app/internal/dto"
	"github.com/SscSPs/property_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// recurringHandler handles HTTP requests related to recurring templates.
type recurringHandler struct {
	recurringService portssvc.RecurringSvcFacade
}

func newRecurringHandler(rs portssvc.RecurringSvcFacade) *recurringHandler {
	return &recurringHandler{
		recurringService: rs,
	}
}

func registerRecurringRoutes(rg *gin.RouterGroup, recurringService portssvc.RecurringSvcFacade) {
	h := newRecurringHandler(recurringService)

	recurring := rg.Group("/recurring")
	{
		recurring.POST("", h.createRecurring)
		recurring.GET("", h.listRecurring)
		recurring.POST("/expand", h.expandRecurring)
		recurring.GET("/:recurring_id", h.getRecurring)
		recurring.PUT("/:recurring_id", h.updateRecurring)
		recurring.DELETE("/:recurring_id", h.deleteRecurring)
		recurring.POST("/:recurring_id/deactivate", h.deactivateRecurring)
		recurring.POST("/:recurring_id/reactivate", h.reactivateRecurring)
	}
}

// createRecurring godoc
// @Summary Create a recurring transaction
// @Tags recurring
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   recurring body dto.RecurringRequest true "Template details"
// @Success 201 {object} domain.RecurringTransaction
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 500 {object} map[string]string "Failed to create recurring transaction"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/recurring [post]
func (h *recurringHandler) createRecurring(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	var req dto.RecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respondError(c, err, "Invalid recurring transaction")
		return
	}

	recurring, err := h.recurringService.CreateRecurring(c.Request.Context(), tc, in)
	if err != nil {
		respondError(c, err, "Failed to create recurring transaction")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Recurring transaction created",
		slog.String("recurring_transaction_id", recurring.RecurringTransactionID))
	c.JSON(http.StatusCreated, recurring)
}

// listRecurring godoc
// @Summary List recurring transactions
// @Tags recurring
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   include_inactive query bool false "Include deactivated templates"
// @Success 200 {object} dto.ListRecurringResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 500 {object} map[string]string "Failed to list recurring transactions"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/recurring [get]
func (h *recurringHandler) listRecurring(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	var params dto.ListRecurringParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	recurring, err := h.recurringService.ListRecurring(c.Request.Context(), tc, !params.IncludeInactive)
	if err != nil {
		respondError(c, err, "Failed to list recurring transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListRecurringResponse{Recurring: recurring})
}

// getRecurring godoc
// @Summary Get a recurring transaction
// @Tags recurring
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   recurring_id path string true "Recurring transaction ID"
// @Success 200 {object} domain.RecurringTransaction
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Recurring transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve recurring transaction"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/recurring/{recurring_id} [get]
func (h *recurringHandler) getRecurring(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	recurring, err := h.recurringService.GetRecurring(c.Request.Context(), tc, c.Param("recurring_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve recurring transaction")
		return
	}
	c.JSON(http.StatusOK, recurring)
}

// updateRecurring godoc
// @Summary Update a recurring transaction
// @Tags recurring
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   recurring_id path string true "Recurring transaction ID"
// @Param   recurring body dto.RecurringRequest true "Template details"
// @Success 200 {object} domain.RecurringTransaction
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Recurring transaction not found"
// @Failure 500 {object} map[string]string "Failed to update recurring transaction"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/recurring/{recurring_id} [put]
func (h *recurringHandler) updateRecurring(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	var req dto.RecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respondError(c, err, "Invalid recurring transaction")
		return
	}

	recurring, err := h.recurringService.UpdateRecurring(c.Request.Context(), tc, c.Param("recurring_id"), in)
	if err != nil {
		respondError(c, err, "Failed to update recurring transaction")
		return
	}
	c.JSON(http.StatusOK, recurring)
}

// deleteRecurring godoc
// @Summary Delete a recurring transaction
// @Description Pending transactions generated from the template are kept.
// @Tags recurring
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   recurring_id path string true "Recurring transaction ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Recurring transaction not found"
// @Failure 500 {object} map[string]string "Failed to delete recurring transaction"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/recurring/{recurring_id} [delete]
func (h *recurringHandler) deleteRecurring(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	if err := h.recurringService.DeleteRecurring(c.Request.Context(), tc, c.Param("recurring_id")); err != nil {
		respondError(c, err, "Failed to delete recurring transaction")
		return
	}
	c.Status(http.StatusNoContent)
}

// deactivateRecurring godoc
// @Summary Deactivate a recurring transaction
// @Tags recurring
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   recurring_id path string true "Recurring transaction ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Recurring transaction not found"
// @Failure 500 {object} map[string]string "Failed to deactivate recurring transaction"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/recurring/{recurring_id}/deactivate [post]
func (h *recurringHandler) deactivateRecurring(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	if err := h.recurringService.DeactivateRecurring(c.Request.Context(), tc, c.Param("recurring_id")); err != nil {
		respondError(c, err, "Failed to deactivate recurring transaction")
		return
	}
	c.Status(http.StatusNoContent)
}

// reactivateRecurring godoc
// @Summary Reactivate a recurring transaction
// @Description Missed periods are not backfilled.
// @Tags recurring
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   recurring_id path string true "Recurring transaction ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Recurring transaction not found"
// @Failure 500 {object} map[string]string "Failed to reactivate recurring transaction"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/recurring/{recurring_id}/reactivate [post]
func (h *recurringHandler) reactivateRecurring(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	if err := h.recurringService.ReactivateRecurring(c.Request.Context(), tc, c.Param("recurring_id")); err != nil {
		respondError(c, err, "Failed to reactivate recurring transaction")
		return
	}
	c.Status(http.StatusNoContent)
}

// expandRecurring runs one expansion pass for the organization as of today.
// @Summary Generate pending transactions
// @Description Materializes the current period of every active template as a pending transaction, skipping periods already generated or recorded.
// @Tags recurring
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {object} domain.ExpansionResult
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 500 {object} map[string]string "Failed to expand recurring transactions"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/recurring/expand [post]
func (h *recurringHandler) expandRecurring(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	result, err := h.recurringService.ExpandPending(c.Request.Context(), tc, today())
	if err != nil {
		respondError(c, err, "Failed to expand recurring transactions")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Recurring expansion completed",
		slog.Int("created", result.Created), slog.Int("skipped", result.Skipped), slog.Int("failed", result.Failed))
	c.JSON(http.StatusOK, result)
}
