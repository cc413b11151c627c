package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/property_ledger_app/internal/dto"
	"github.com/SscSPs/property_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// budgetHandler handles HTTP requests related to budgets, their lines and their analysis.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{
		budgetService: bs,
	}
}

func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("", h.listBudgets)
		budgets.GET("/:budget_id", h.getBudget)
		budgets.PUT("/:budget_id", h.updateBudget)
		budgets.DELETE("/:budget_id", h.deleteBudget)
		budgets.GET("/:budget_id/analysis", h.analyzeBudget)

		lines := budgets.Group("/:budget_id/lines")
		{
			lines.POST("", h.createLine)
			lines.GET("", h.listLines)
			lines.PUT("/:line_id", h.updateLine)
			lines.DELETE("/:line_id", h.deleteLine)
		}
	}
}

// createBudget godoc
// @Summary Create a budget
// @Description The end date defaults to the end of the period when omitted.
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   budget body dto.BudgetRequest true "Budget details"
// @Success 201 {object} domain.Budget
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 500 {object} map[string]string "Failed to create budget"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/budgets [post]
func (h *budgetHandler) createBudget(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	var req dto.BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respondError(c, err, "Invalid budget")
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), tc, in)
	if err != nil {
		respondError(c, err, "Failed to create budget")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Budget created", slog.String("budget_id", budget.BudgetID))
	c.JSON(http.StatusCreated, budget)
}

// listBudgets godoc
// @Summary List budgets
// @Tags budgets
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   property_id query string false "Only this property"
// @Success 200 {object} dto.ListBudgetsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 500 {object} map[string]string "Failed to list budgets"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/budgets [get]
func (h *budgetHandler) listBudgets(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	var params dto.ListBudgetsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), tc, params.PropertyID)
	if err != nil {
		respondError(c, err, "Failed to list budgets")
		return
	}
	c.JSON(http.StatusOK, dto.ListBudgetsResponse{Budgets: budgets})
}

// getBudget godoc
// @Summary Get a budget
// @Tags budgets
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   budget_id path string true "Budget ID"
// @Success 200 {object} domain.Budget
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 500 {object} map[string]string "Failed to retrieve budget"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/budgets/{budget_id} [get]
func (h *budgetHandler) getBudget(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	budget, err := h.budgetService.GetBudget(c.Request.Context(), tc, c.Param("budget_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve budget")
		return
	}
	c.JSON(http.StatusOK, budget)
}

// updateBudget godoc
// @Summary Update a budget
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   budget_id path string true "Budget ID"
// @Param   budget body dto.BudgetRequest true "Budget details"
// @Success 200 {object} domain.Budget
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 500 {object} map[string]string "Failed to update budget"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/budgets/{budget_id} [put]
func (h *budgetHandler) updateBudget(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	var req dto.BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respondError(c, err, "Invalid budget")
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), tc, c.Param("budget_id"), in)
	if err != nil {
		respondError(c, err, "Failed to update budget")
		return
	}
	c.JSON(http.StatusOK, budget)
}

// deleteBudget godoc
// @Summary Delete a budget
// @Description Budget lines are removed with the budget.
// @Tags budgets
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   budget_id path string true "Budget ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 500 {object} map[string]string "Failed to delete budget"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/budgets/{budget_id} [delete]
func (h *budgetHandler) deleteBudget(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	if err := h.budgetService.DeleteBudget(c.Request.Context(), tc, c.Param("budget_id")); err != nil {
		respondError(c, err, "Failed to delete budget")
		return
	}
	c.Status(http.StatusNoContent)
}

// analyzeBudget compares the budget against realized expenses. Without a
// date range the budget's own window is used.
// @Summary Analyze a budget
// @Description Compares planned amounts with actual expenses by category over the budget window.
// @Tags budgets
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   budget_id path string true "Budget ID"
// @Param   start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} domain.BudgetAnalysis
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 500 {object} map[string]string "Failed to analyze budget"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/budgets/{budget_id}/analysis [get]
func (h *budgetHandler) analyzeBudget(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	window, ok := bindWindow(c)
	if !ok {
		return
	}

	analysis, err := h.budgetService.Analyze(c.Request.Context(), tc, c.Param("budget_id"), window)
	if err != nil {
		respondError(c, err, "Failed to analyze budget")
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// createLine godoc
// @Summary Add a budget line
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   budget_id path string true "Budget ID"
// @Param   line body dto.BudgetLineRequest true "Budget line details"
// @Success 201 {object} domain.BudgetLine
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 500 {object} map[string]string "Failed to create budget line"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/budgets/{budget_id}/lines [post]
func (h *budgetHandler) createLine(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	var req dto.BudgetLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	line, err := h.budgetService.CreateBudgetLine(c.Request.Context(), tc, c.Param("budget_id"), req.ToInput())
	if err != nil {
		respondError(c, err, "Failed to create budget line")
		return
	}
	c.JSON(http.StatusCreated, line)
}

// listLines godoc
// @Summary List budget lines
// @Tags budgets
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   budget_id path string true "Budget ID"
// @Success 200 {object} dto.ListBudgetLinesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 500 {object} map[string]string "Failed to list budget lines"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/budgets/{budget_id}/lines [get]
func (h *budgetHandler) listLines(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	lines, err := h.budgetService.ListBudgetLines(c.Request.Context(), tc, c.Param("budget_id"))
	if err != nil {
		respondError(c, err, "Failed to list budget lines")
		return
	}
	c.JSON(http.StatusOK, dto.ListBudgetLinesResponse{Lines: lines})
}

// updateLine godoc
// @Summary Update a budget line
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   budget_id path string true "Budget ID"
// @Param   line_id path string true "Budget line ID"
// @Param   line body dto.BudgetLineRequest true "Budget line details"
// @Success 200 {object} domain.BudgetLine
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Budget line not found"
// @Failure 500 {object} map[string]string "Failed to update budget line"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/budgets/{budget_id}/lines/{line_id} [put]
func (h *budgetHandler) updateLine(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	var req dto.BudgetLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	line, err := h.budgetService.UpdateBudgetLine(c.Request.Context(), tc, c.Param("budget_id"), c.Param("line_id"), req.ToInput())
	if err != nil {
		respondError(c, err, "Failed to update budget line")
		return
	}
	c.JSON(http.StatusOK, line)
}

// deleteLine godoc
// @Summary Delete a budget line
// @Tags budgets
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   budget_id path string true "Budget ID"
// @Param   line_id path string true "Budget line ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Budget line not found"
// @Failure 500 {object} map[string]string "Failed to delete budget line"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/budgets/{budget_id}/lines/{line_id} [delete]
func (h *budgetHandler) deleteLine(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	if err := h.budgetService.DeleteBudgetLine(c.Request.Context(), tc, c.Param("budget_id"), c.Param("line_id")); err != nil {
		respondError(c, err, "Failed to delete budget line")
		return
	}
	c.Status(http.StatusNoContent)
}
