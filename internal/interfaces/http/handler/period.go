package handler

import (
	apptenancy "github.com/bizsuite/backend/internal/application/tenancy"
	"github.com/bizsuite/backend/internal/domain/tenancy"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PeriodHandler handles accounting period HTTP requests. All operations
// run against the session's current tenant.
type PeriodHandler struct {
	BaseHandler
	sessionService *apptenancy.SessionService
}

// NewPeriodHandler creates a new period handler
func NewPeriodHandler(sessionService *apptenancy.SessionService) *PeriodHandler {
	return &PeriodHandler{
		sessionService: sessionService,
	}
}

// List godoc
// @Summary      List periods
// @Description  List the accounting periods of the session's current tenant, newest start date first
// @Tags         periods
// @Produce      json
// @Success      200 {object} dto.Response{data=[]tenancy.PeriodDTO}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /periods [get]
func (h *PeriodHandler) List(c *gin.Context) {
	principalID, err := getPrincipalID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	periods, err := h.sessionService.ListPeriods(c.Request.Context(), principalID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, periods)
}

// Create godoc
// @Summary      Create a period
// @Description  Create an accounting period for the session's current tenant. The date range must not overlap any existing period; the new period starts inactive and open.
// @Tags         periods
// @Accept       json
// @Produce      json
// @Param        request body CreatePeriodRequest true "Period creation request"
// @Success      201 {object} dto.Response{data=tenancy.PeriodDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /periods [post]
func (h *PeriodHandler) Create(c *gin.Context) {
	principalID, err := getPrincipalID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	input := apptenancy.CreatePeriodInput{
		Name:      req.Name,
		StartDate: parseDate(req.StartDate),
		EndDate:   parseDate(req.EndDate),
		Type:      periodType(req.Type),
	}

	period, err := h.sessionService.CreatePeriod(c.Request.Context(), principalID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, period)
}

// Update godoc
// @Summary      Update a period
// @Description  Update an open period's name, range and type. Closed periods are immutable.
// @Tags         periods
// @Accept       json
// @Produce      json
// @Param        id path string true "Period ID" format(uuid)
// @Param        request body UpdatePeriodRequest true "Period update request"
// @Success      200 {object} dto.Response{data=tenancy.PeriodDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /periods/{id} [put]
func (h *PeriodHandler) Update(c *gin.Context) {
	principalID, err := getPrincipalID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid period ID")
		return
	}

	var req UpdatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	input := apptenancy.UpdatePeriodInput{
		ID:        id,
		Name:      req.Name,
		StartDate: parseDate(req.StartDate),
		EndDate:   parseDate(req.EndDate),
		Type:      periodType(req.Type),
	}

	period, err := h.sessionService.UpdatePeriod(c.Request.Context(), principalID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, period)
}

// Delete godoc
// @Summary      Delete a period
// @Description  Delete an open, inactive period. Active and closed periods cannot be deleted.
// @Tags         periods
// @Produce      json
// @Param        id path string true "Period ID" format(uuid)
// @Success      204 "No Content"
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /periods/{id} [delete]
func (h *PeriodHandler) Delete(c *gin.Context) {
	principalID, err := getPrincipalID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid period ID")
		return
	}

	if err := h.sessionService.DeletePeriod(c.Request.Context(), principalID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Activate godoc
// @Summary      Activate a period
// @Description  Make a period the tenant's active one, deactivating any other
// @Tags         periods
// @Produce      json
// @Param        id path string true "Period ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]tenancy.PeriodDTO}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /periods/{id}/activate [post]
func (h *PeriodHandler) Activate(c *gin.Context) {
	principalID, err := getPrincipalID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid period ID")
		return
	}

	if err := h.sessionService.ActivatePeriod(c.Request.Context(), principalID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	periods, err := h.sessionService.ListPeriods(c.Request.Context(), principalID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, periods)
}

// Close godoc
// @Summary      Close a period
// @Description  Finalize a period. Closed periods reject further mutation until reopened; the active period cannot be closed.
// @Tags         periods
// @Produce      json
// @Param        id path string true "Period ID" format(uuid)
// @Success      200 {object} dto.Response{data=tenancy.PeriodDTO}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /periods/{id}/close [post]
func (h *PeriodHandler) Close(c *gin.Context) {
	principalID, err := getPrincipalID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid period ID")
		return
	}

	period, err := h.sessionService.ClosePeriod(c.Request.Context(), principalID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, period)
}

// Reopen godoc
// @Summary      Reopen a period
// @Description  Revert a closed period to the open state
// @Tags         periods
// @Produce      json
// @Param        id path string true "Period ID" format(uuid)
// @Success      200 {object} dto.Response{data=tenancy.PeriodDTO}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /periods/{id}/reopen [post]
func (h *PeriodHandler) Reopen(c *gin.Context) {
	principalID, err := getPrincipalID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid period ID")
		return
	}

	period, err := h.sessionService.ReopenPeriod(c.Request.Context(), principalID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, period)
}

// periodType maps the request field to the domain type, defaulting to
// fiscal_year when absent
func periodType(raw string) tenancy.PeriodType {
	if raw == "" {
		return tenancy.PeriodTypeFiscalYear
	}
	return tenancy.PeriodType(raw)
}
