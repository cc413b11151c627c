package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/property_ledger_app/internal/dto"
	"github.com/SscSPs/property_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reminderHandler handles HTTP requests related to rent reminders.
type reminderHandler struct {
	reminderService portssvc.RentReminderSvcFacade
}

func newReminderHandler(rs portssvc.RentReminderSvcFacade) *reminderHandler {
	return &reminderHandler{
		reminderService: rs,
	}
}

func registerReminderRoutes(rg *gin.RouterGroup, reminderService portssvc.RentReminderSvcFacade) {
	h := newReminderHandler(reminderService)

	reminders := rg.Group("/reminders")
	{
		reminders.GET("", h.listReminders)
		reminders.POST("/bootstrap", h.bootstrapReminders)
		reminders.POST("/record", h.recordRent)
	}
}

// listReminders godoc
// @Summary List rent reminders
// @Tags reminders
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   month query string false "Month (YYYY-MM), defaults to the current month"
// @Success 200 {object} dto.ListRemindersResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 500 {object} map[string]string "Failed to list reminders"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/reminders [get]
func (h *reminderHandler) listReminders(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	var params dto.ListRemindersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	month, err := params.ToMonth(today())
	if err != nil {
		respondError(c, err, "Invalid month")
		return
	}

	reminders, err := h.reminderService.ListReminders(c.Request.Context(), tc, month)
	if err != nil {
		respondError(c, err, "Failed to list rent reminders")
		return
	}
	c.JSON(http.StatusOK, dto.ListRemindersResponse{Reminders: reminders})
}

// bootstrapReminders creates the current month's reminder for every property
// that does not have one yet.
// @Summary Create this month's rent reminders
// @Description Creates a reminder for every property with rent and no reminder this month.
// @Tags reminders
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {object} dto.BootstrapRemindersResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 500 {object} map[string]string "Failed to create reminders"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/reminders/bootstrap [post]
func (h *reminderHandler) bootstrapReminders(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	day := today()
	created, err := h.reminderService.CreateMonthlyReminders(c.Request.Context(), tc, day)
	if err != nil {
		respondError(c, err, "Failed to create rent reminders")
		return
	}

	month := domain.MonthKeyOf(day).String()
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Rent reminders bootstrapped",
		slog.String("month", month), slog.Int("created", created))
	c.JSON(http.StatusOK, dto.BootstrapRemindersResponse{Month: month, Created: created})
}

// recordRent closes the reminder of one property and month.
// @Summary Mark rent as recorded
// @Tags reminders
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   record body dto.RecordRentRequest true "Property and month"
// @Success 200 {object} domain.RentReminder
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member or insufficient role"
// @Failure 404 {object} map[string]string "Property not found"
// @Failure 500 {object} map[string]string "Failed to record rent"
// @Security BearerAuth
// @Router /api/v1/organizations/{organization_id}/reminders/record [post]
func (h *reminderHandler) recordRent(c *gin.Context) {
	tc, ok := tenancyFrom(c)
	if !ok {
		return
	}
	var req dto.RecordRentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	month, err := req.ToMonth()
	if err != nil {
		respondError(c, err, "Invalid month")
		return
	}

	reminder, err := h.reminderService.MarkRentRecorded(c.Request.Context(), tc, req.PropertyID, month)
	if err != nil {
		respondError(c, err, "Failed to record rent")
		return
	}
	c.JSON(http.StatusOK, reminder)
}
