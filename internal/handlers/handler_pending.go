package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/property_ledger_app/internal/dto"
	"github.com/SscSPs/property_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// pendingHandler handles the pending confirmation workflow.
type pendingHandler struct {
	pendingService portssvc.PendingSvcFacade
}

func newPendingHandler(ps portssvc.PendingSvcFacade) *pendingHandler {
	return &pendingHandler{
		pendingService: ps,
	}
}

func registerPendingRoutes(rg *gin.RouterGroup, pendingService portssvc.PendingSvcFacade) {
	h := newPendingHandler(pendingService)

	pending := rg.Group("/pending")
	{
		pending.GET("", h.listPending)
		pending.GET("/:pending_id", h.getPending)
		pending.PATCH("/:pending_id", h.editPending)
		pending.DELETE("/:pending_id", h.discardPending)
		pending.POST("/:pending_id/confirm", h.confirmPending)
	}
}

// listPending godoc
// @Summary List pending transactions
// @Tags pending
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   type query string false "income or expense"
// @Success 200 {object} dto.ListPendingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 500 {object} map[string]string "Failed to list pending transactions"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/pending [get]
func (h *pendingHandler) listPending(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	var params dto.ListPendingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	pending, err := h.pendingService.ListPending(c.Request.Context(), tc, params.Type)
	if err != nil {
		respondError(c, err, "Failed to list pending transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListPendingResponse{Pending: pending})
}

// getPending godoc
// @Summary Get a pending transaction
// @Tags pending
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   pending_id path string true "Pending transaction ID"
// @Success 200 {object} domain.PendingTransaction
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Pending transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve pending transaction"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/pending/{pending_id} [get]
func (h *pendingHandler) getPending(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	pending, err := h.pendingService.GetPending(c.Request.Context(), tc, c.Param("pending_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve pending transaction")
		return
	}
	c.JSON(http.StatusOK, pending)
}

// editPending godoc
// @Summary Edit a pending transaction
// @Tags pending
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   pending_id path string true "Pending transaction ID"
// @Param   patch body dto.PatchPendingRequest true "Fields to change"
// @Success 200 {object} domain.PendingTransaction
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Pending transaction not found"
// @Failure 500 {object} map[string]string "Failed to edit pending transaction"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/pending/{pending_id} [patch]
func (h *pendingHandler) editPending(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	var req dto.PatchPendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		respondError(c, err, "Invalid pending transaction")
		return
	}

	pending, err := h.pendingService.EditPending(c.Request.Context(), tc, c.Param("pending_id"), patch)
	if err != nil {
		respondError(c, err, "Failed to edit pending transaction")
		return
	}
	c.JSON(http.StatusOK, pending)
}

// discardPending godoc
// @Summary Discard a pending transaction
// @Tags pending
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   pending_id path string true "Pending transaction ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Pending transaction not found"
// @Failure 500 {object} map[string]string "Failed to discard pending transaction"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/pending/{pending_id} [delete]
func (h *pendingHandler) discardPending(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	if err := h.pendingService.DiscardPending(c.Request.Context(), tc, c.Param("pending_id")); err != nil {
		respondError(c, err, "Failed to discard pending transaction")
		return
	}
	c.Status(http.StatusNoContent)
}

// confirmPending realizes the pending as an income or expense.
// @Summary Confirm a pending transaction
// @Description Records the income or expense and removes the pending row. Confirming rent also marks the month's rent as recorded.
// @Tags pending
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   pending_id path string true "Pending transaction ID"
// @Success 200 {object} portssvc.ConfirmResult
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Pending transaction not found"
// @Failure 500 {object} map[string]string "Failed to confirm pending transaction"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/pending/{pending_id}/confirm [post]
func (h *pendingHandler) confirmPending(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	pendingID := c.Param("pending_id")
	result, err := h.pendingService.ConfirmPending(c.Request.Context(), tc, pendingID)
	if err != nil {
		respondError(c, err, "Failed to confirm pending transaction")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Pending transaction confirmed",
		slog.String("pending_transaction_id", pendingID),
		slog.String("transaction_type", string(result.TransactionType)),
		slog.Bool("already_realized", result.AlreadyRealized))
	c.JSON(http.StatusOK, result)
}
