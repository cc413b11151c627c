package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/property_ledger_app/internal/dto"
	"github.com/SscSPs/property_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for realized incomes and expenses.
type ledgerHandler struct {
	ledgerService   portssvc.LedgerSvcFacade
	categoryService portssvc.CategorySvc
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade, cs portssvc.CategorySvc) *ledgerHandler {
	return &ledgerHandler{
		ledgerService:   ls,
		categoryService: cs,
	}
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, categoryService portssvc.CategorySvc) {
	h := newLedgerHandler(ledgerService, categoryService)

	incomes := rg.Group("/incomes")
	{
		incomes.POST("", h.createIncome)
		incomes.GET("", h.listIncomes)
		incomes.GET("/:income_id", h.getIncome)
		incomes.PUT("/:income_id", h.updateIncome)
		incomes.DELETE("/:income_id", h.deleteIncome)
	}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:expense_id", h.getExpense)
		expenses.PUT("/:expense_id", h.updateExpense)
		expenses.DELETE("/:expense_id", h.deleteExpense)
	}

	rg.GET("/categories", h.listCategories)
}

// createIncome godoc
// @Summary Record an income
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   income body dto.IncomeRequest true "Income details"
// @Success 201 {object} domain.Income
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 500 {object} map[string]string "Failed to record income"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/incomes [post]
func (h *ledgerHandler) createIncome(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	var req dto.IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respondError(c, err, "Invalid income")
		return
	}

	income, err := h.ledgerService.CreateIncome(c.Request.Context(), tc, in)
	if err != nil {
		respondError(c, err, "Failed to record income")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Income recorded",
		slog.String("income_id", income.IncomeID), slog.String("property_id", income.PropertyID))
	c.JSON(http.StatusCreated, income)
}

// listIncomes returns one page of incomes, newest first.
// @Summary List incomes
// @Description Newest first, keyset paginated.
// @Tags ledger
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   property_id query string false "Only this property"
// @Param   limit query int false "Page size (1-100, default 20)"
// @Param   next_token query string false "Token from the previous page"
// @Success 200 {object} portssvc.IncomePage
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 500 {object} map[string]string "Failed to list incomes"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/incomes [get]
func (h *ledgerHandler) listIncomes(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	var params dto.ListLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.ledgerService.ListIncomes(c.Request.Context(), tc, portssvc.LedgerPageParams{
		PropertyID: params.PropertyID,
		Limit:      params.Limit,
		NextToken:  params.NextToken,
	})
	if err != nil {
		respondError(c, err, "Failed to list incomes")
		return
	}
	c.JSON(http.StatusOK, page)
}

// getIncome godoc
// @Summary Get an income
// @Tags ledger
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   income_id path string true "Income ID"
// @Success 200 {object} domain.Income
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Income not found"
// @Failure 500 {object} map[string]string "Failed to retrieve income"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/incomes/{income_id} [get]
func (h *ledgerHandler) getIncome(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	income, err := h.ledgerService.GetIncome(c.Request.Context(), tc, c.Param("income_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve income")
		return
	}
	c.JSON(http.StatusOK, income)
}

// updateIncome godoc
// @Summary Update an income
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   income_id path string true "Income ID"
// @Param   income body dto.IncomeRequest true "Income details"
// @Success 200 {object} domain.Income
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Income not found"
// @Failure 500 {object} map[string]string "Failed to update income"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/incomes/{income_id} [put]
func (h *ledgerHandler) updateIncome(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	var req dto.IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respondError(c, err, "Invalid income")
		return
	}

	income, err := h.ledgerService.UpdateIncome(c.Request.Context(), tc, c.Param("income_id"), in)
	if err != nil {
		respondError(c, err, "Failed to update income")
		return
	}
	c.JSON(http.StatusOK, income)
}

// deleteIncome godoc
// @Summary Delete an income
// @Tags ledger
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   income_id path string true "Income ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Income not found"
// @Failure 500 {object} map[string]string "Failed to delete income"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/incomes/{income_id} [delete]
func (h *ledgerHandler) deleteIncome(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	if err := h.ledgerService.DeleteIncome(c.Request.Context(), tc, c.Param("income_id")); err != nil {
		respondError(c, err, "Failed to delete income")
		return
	}
	c.Status(http.StatusNoContent)
}

// createExpense godoc
// @Summary Record an expense
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   expense body dto.ExpenseRequest true "Expense details"
// @Success 201 {object} domain.Expense
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 500 {object} map[string]string "Failed to record expense"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/expenses [post]
func (h *ledgerHandler) createExpense(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	var req dto.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respondError(c, err, "Invalid expense")
		return
	}

	expense, err := h.ledgerService.CreateExpense(c.Request.Context(), tc, in)
	if err != nil {
		respondError(c, err, "Failed to record expense")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Expense recorded",
		slog.String("expense_id", expense.ExpenseID), slog.String("property_id", expense.PropertyID))
	c.JSON(http.StatusCreated, expense)
}

// listExpenses returns one page of expenses, newest first.
// @Summary List expenses
// @Description Newest first, keyset paginated.
// @Tags ledger
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   property_id query string false "Only this property"
// @Param   limit query int false "Page size (1-100, default 20)"
// @Param   next_token query string false "Token from the previous page"
// @Success 200 {object} portssvc.ExpensePage
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 500 {object} map[string]string "Failed to list expenses"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/expenses [get]
func (h *ledgerHandler) listExpenses(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	var params dto.ListLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.ledgerService.ListExpenses(c.Request.Context(), tc, portssvc.LedgerPageParams{
		PropertyID: params.PropertyID,
		Limit:      params.Limit,
		NextToken:  params.NextToken,
	})
	if err != nil {
		respondError(c, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, page)
}

// getExpense godoc
// @Summary Get an expense
// @Tags ledger
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   expense_id path string true "Expense ID"
// @Success 200 {object} domain.Expense
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 500 {object} map[string]string "Failed to retrieve expense"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/expenses/{expense_id} [get]
func (h *ledgerHandler) getExpense(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	expense, err := h.ledgerService.GetExpense(c.Request.Context(), tc, c.Param("expense_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve expense")
		return
	}
	c.JSON(http.StatusOK, expense)
}

// updateExpense godoc
// @Summary Update an expense
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   expense_id path string true "Expense ID"
// @Param   expense body dto.ExpenseRequest true "Expense details"
// @Success 200 {object} domain.Expense
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 500 {object} map[string]string "Failed to update expense"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/expenses/{expense_id} [put]
func (h *ledgerHandler) updateExpense(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	var req dto.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respondError(c, err, "Invalid expense")
		return
	}

	expense, err := h.ledgerService.UpdateExpense(c.Request.Context(), tc, c.Param("expense_id"), in)
	if err != nil {
		respondError(c, err, "Failed to update expense")
		return
	}
	c.JSON(http.StatusOK, expense)
}

// deleteExpense godoc
// @Summary Delete an expense
// @Tags ledger
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   expense_id path string true "Expense ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 500 {object} map[string]string "Failed to delete expense"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/expenses/{expense_id} [delete]
func (h *ledgerHandler) deleteExpense(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	if err := h.ledgerService.DeleteExpense(c.Request.Context(), tc, c.Param("expense_id")); err != nil {
		respondError(c, err, "Failed to delete expense")
		return
	}
	c.Status(http.StatusNoContent)
}

// listCategories returns the shared category vocabulary, optionally filtered by type.
// @Summary List categories
// @Tags ledger
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   type query string false "income or expense"
// @Success 200 {object} dto.ListCategoriesResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 500 {object} map[string]string "Failed to list categories"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/categories [get]
func (h *ledgerHandler) listCategories(c *gin.Context) {
	var params dto.ListCategoriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	categories, err := h.categoryService.ListCategories(c.Request.Context(), params.Type)
	if err != nil {
		respondError(c, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, dto.ListCategoriesResponse{Categories: categories})
}
