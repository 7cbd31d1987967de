package handler

import (
	"time"

	apptenancy "github.com/bizsuite/backend/internal/application/tenancy"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHandler handles session scope HTTP requests
type SessionHandler struct {
	BaseHandler
	sessionService *apptenancy.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *apptenancy.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// Bootstrap godoc
// @Summary      Bootstrap the session
// @Description  Load accessible tenants, restore the persisted scope and select the working tenant and period
// @Tags         session
// @Produce      json
// @Success      200 {object} dto.Response{data=tenancy.SessionDTO}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /session/bootstrap [post]
func (h *SessionHandler) Bootstrap(c *gin.Context) {
	principalID, err := getPrincipalID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	session, err := h.sessionService.Bootstrap(c.Request.Context(), principalID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// CurrentScope godoc
// @Summary      Get the current scope
// @Description  Return the (tenant, period) pair the session currently operates in
// @Tags         session
// @Produce      json
// @Success      200 {object} dto.Response{data=tenancy.ScopeDTO}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /session/scope [get]
func (h *SessionHandler) CurrentScope(c *gin.Context) {
	principalID, err := getPrincipalID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	scope, err := h.sessionService.CurrentScope(c.Request.Context(), principalID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, scope)
}

// SwitchTenant godoc
// @Summary      Switch the working tenant
// @Description  Change the session's tenant. Protected tenants require a credential in the request body; without one the call fails with CHALLENGE_REQUIRED.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request body SwitchTenantRequest true "Tenant switch request"
// @Success      200 {object} dto.Response{data=tenancy.SessionDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      428 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /session/tenant [put]
func (h *SessionHandler) SwitchTenant(c *gin.Context) {
	principalID, err := getPrincipalID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SwitchTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	tenantID := uuid.MustParse(req.TenantID)

	var session *apptenancy.SessionDTO
	if req.Secret != nil {
		session, err = h.sessionService.SwitchTenantWithCredential(c.Request.Context(), principalID, tenantID, *req.Secret)
	} else {
		session, err = h.sessionService.SwitchTenant(c.Request.Context(), principalID, tenantID)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// SwitchPeriod godoc
// @Summary      Switch the working period
// @Description  Change the session's period to another member of the loaded period set
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request body SwitchPeriodRequest true "Period switch request"
// @Success      200 {object} dto.Response{data=tenancy.ScopeDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /session/period [put]
func (h *SessionHandler) SwitchPeriod(c *gin.Context) {
	principalID, err := getPrincipalID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SwitchPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	scope, err := h.sessionService.SwitchPeriod(c.Request.Context(), principalID, uuid.MustParse(req.PeriodID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, scope)
}

// Logout godoc
// @Summary      Discard the session
// @Description  Drop the in-memory session. The persisted scope survives and seeds the next bootstrap.
// @Tags         session
// @Produce      json
// @Success      204 "No Content"
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /session [delete]
func (h *SessionHandler) Logout(c *gin.Context) {
	principalID, err := getPrincipalID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	h.sessionService.Logout(c.Request.Context(), principalID)
	h.NoContent(c)
}

// parseDate parses a yyyy-mm-dd request field. Binding has already
// validated the format.
func parseDate(raw string) time.Time {
	t, _ := time.Parse("2006-01-02", raw)
	return t
}
