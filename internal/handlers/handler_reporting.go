package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/property_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

func newReportingHandler(rs portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
		reports.GET("/transactions", h.getTransactions)
		reports.GET("/property-performance", h.getPropertyPerformance)
	}
}

// getProfitAndLoss totals income and expenses per category over the window.
// A window covering one full calendar year also carries a monthly series.
// @Summary Profit and loss report
// @Description Totals by category; a full calendar year also gets a monthly series.
// @Tags reports
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} domain.ProfitAndLoss
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 500 {object} map[string]string "Failed to build profit and loss report"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	window, ok := bindWindow(c)
	if !ok {
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), tc, window)
	if err != nil {
		respondError(c, err, "Failed to generate profit and loss report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getTransactions godoc
// @Summary Transaction report
// @Tags reports
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Param   property_id query string false "Only this property"
// @Param   type query string false "income, expense or all (default)"
// @Success 200 {object} domain.TransactionReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 500 {object} map[string]string "Failed to build transaction report"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/reports/transactions [get]
func (h *reportingHandler) getTransactions(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	var params dto.TransactionReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	filter, err := params.ToFilter()
	if err != nil {
		respondError(c, err, "Invalid report filter")
		return
	}

	report, err := h.reportingService.Transactions(c.Request.Context(), tc, filter)
	if err != nil {
		respondError(c, err, "Failed to generate transaction report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getPropertyPerformance godoc
// @Summary Property performance report
// @Description Income, expenses, net and ROI against purchase price per property.
// @Tags reports
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Param   property_id query string false "Only this property"
// @Success 200 {object} dto.PropertyPerformanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 500 {object} map[string]string "Failed to build property performance report"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/reports/property-performance [get]
func (h *reportingHandler) getPropertyPerformance(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	var params dto.PropertyPerformanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	window, err := params.ToWindow()
	if err != nil {
		respondError(c, err, "Invalid date range")
		return
	}

	performance, err := h.reportingService.PropertyPerformance(c.Request.Context(), tc, window, params.PropertyID)
	if err != nil {
		respondError(c, err, "Failed to generate property performance report")
		return
	}
	c.JSON(http.StatusOK, dto.PropertyPerformanceResponse{Properties: performance})
}
